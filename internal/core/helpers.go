package core

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const gitTimeout = 60 * time.Second

// excludedCopyEntries are files/dirs never copied into a destination.
var excludedCopyEntries = map[string]bool{
	".git": true,
}

var sanitizeRegexp = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// runWithTimeout runs a command and returns its combined output.
// The process is killed if it exceeds the timeout. On timeout the
// message is returned as the output as well, so callers that classify
// failures from command output see the timeout.
func runWithTimeout(cmd *exec.Cmd, timeout time.Duration) (string, error) {
	done := make(chan struct{})
	var output []byte
	var cmdErr error

	go func() {
		output, cmdErr = cmd.CombinedOutput()
		close(done)
	}()

	select {
	case <-done:
		return string(output), cmdErr
	case <-time.After(timeout):
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		msg := fmt.Sprintf("command timed out after %s", timeout)
		return msg, fmt.Errorf("%s", msg)
	}
}

// copyDirectory copies the contents of src to dst, excluding .git and
// entries starting with an underscore.
func copyDirectory(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		baseName := filepath.Base(path)
		if rel != "." {
			if excludedCopyEntries[baseName] || strings.HasPrefix(baseName, "_") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		dstPath := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(dstPath, 0o755)
		}

		return copyFile(path, dstPath)
	})
}

// copyFile copies a single file from src to dst, preserving mode.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer func() { _ = dstFile.Close() }()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

// sanitizeName normalizes a skill name for use as a directory name.
func sanitizeName(name string) string {
	name = strings.ToLower(name)
	name = sanitizeRegexp.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if len(name) > 255 {
		name = name[:255]
	}
	if name == "" {
		name = "unnamed-skill"
	}
	return name
}

// swapDir promotes newDir into place at dst. If dst already exists it
// is moved aside first and removed after the swap, so a concurrent
// reader sees a complete tree, never a partially written one. rename
// cannot replace a non-empty directory, so there is a brief window
// between the two renames where dst does not exist.
func swapDir(newDir, dst string) error {
	old := ""
	if _, err := os.Lstat(dst); err == nil {
		old = dst + ".old-" + randSuffix()
		if err := os.Rename(dst, old); err != nil {
			return fmt.Errorf("moving previous directory aside: %w", err)
		}
	}

	if err := os.Rename(newDir, dst); err != nil {
		if old != "" {
			// Best effort: put the previous directory back.
			_ = os.Rename(old, dst)
		}
		return fmt.Errorf("promoting new directory: %w", err)
	}

	if old != "" {
		_ = os.RemoveAll(old)
	}
	return nil
}

// randSuffix returns a short random hex string for temp directory names.
func randSuffix() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// dirExists returns true if the path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// expandPath expands ~ to the home directory and $VAR to env values.
func expandPath(p string) string {
	if strings.Contains(p, "$") {
		p = os.ExpandEnv(p)
	}

	if strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		p = filepath.Join(home, p[2:])
	} else if p == "~" {
		home, _ := os.UserHomeDir()
		p = home
	}

	return p
}
