package core

// AgentAll is the sentinel agent name that expands to every agent
// detected at the requested scope.
const AgentAll = "all"

// ResolveTargets expands the requested agents and scope into concrete
// install targets, one per agent.
//
// Explicit names are resolved strictly; an unknown name fails the whole
// resolution. The sentinel "all" expands to the agents detected at the
// requested scope (read-only existence probes, nothing is created), and
// falls back to defaultAgent when no agent is detected. An empty request
// resolves defaultAgent alone.
func ResolveTargets(names []string, scope Scope, projectRoot, defaultAgent string) ([]InstallTarget, error) {
	if defaultAgent == "" {
		defaultAgent = DefaultAgentName
	}

	agents, err := selectAgents(names, scope, projectRoot, defaultAgent)
	if err != nil {
		return nil, err
	}

	targets := make([]InstallTarget, 0, len(agents))
	for _, agent := range agents {
		targets = append(targets, InstallTarget{
			Agent:    agent,
			Scope:    scope,
			Dir:      SkillsDirFor(agent, scope, projectRoot),
			Features: agent.Features,
		})
	}
	return targets, nil
}

func selectAgents(names []string, scope Scope, projectRoot, defaultAgent string) ([]AgentDef, error) {
	if len(names) == 0 {
		agent, err := AgentByName(defaultAgent)
		if err != nil {
			return nil, err
		}
		return []AgentDef{agent}, nil
	}

	if len(names) == 1 && names[0] == AgentAll {
		detected := detectAgents(scope, projectRoot)
		if len(detected) > 0 {
			return detected, nil
		}
		agent, err := AgentByName(defaultAgent)
		if err != nil {
			return nil, err
		}
		return []AgentDef{agent}, nil
	}

	seen := make(map[string]bool)
	var agents []AgentDef
	for _, name := range names {
		agent, err := AgentByName(name)
		if err != nil {
			return nil, err
		}
		if seen[agent.Name] {
			continue
		}
		seen[agent.Name] = true
		agents = append(agents, agent)
	}
	return agents, nil
}

// detectAgents probes for agents present at the given scope.
func detectAgents(scope Scope, projectRoot string) []AgentDef {
	var detected []AgentDef
	for _, agent := range agentTable {
		if scope == ScopeGlobal {
			if DetectedGlobal(agent) {
				detected = append(detected, agent)
			}
			continue
		}
		if DetectedProject(agent, projectRoot) {
			detected = append(detected, agent)
		}
	}
	return detected
}
