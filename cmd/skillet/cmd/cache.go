package cmd

import (
	"fmt"
	"time"

	"github.com/skilletlabs/skillet/internal/core"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the repository cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove checkouts not used recently",
	Long: `Remove materialized checkouts whose last use is older than --max-age.
Bare repository mirrors are kept, so offline installs of cached
repositories keep working; evicted checkouts are rebuilt from the
mirror on demand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		maxAge, _ := cmd.Flags().GetDuration("max-age")

		removed, err := core.NewCache(cfg.CacheRoot()).Evict(maxAge)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d checkout(s).\n", removed)
		return nil
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove the entire cache, mirrors included",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := core.NewCache(cfg.CacheRoot()).PurgeAll(); err != nil {
			return err
		}
		fmt.Println("Cache purged.")
		return nil
	},
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache location",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Println(cfg.CacheRoot())
		return nil
	},
}

func init() {
	cacheCleanCmd.Flags().Duration("max-age", 30*24*time.Hour, "Remove checkouts unused for this long")
	cacheCmd.AddCommand(cacheCleanCmd, cachePurgeCmd, cachePathCmd)
	rootCmd.AddCommand(cacheCmd)
}
