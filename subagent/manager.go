package subagent

import "sync"

// Manager is a registry of sub-agents keyed by ID, with capability-based
// lookup. Safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	agents map[string]SubAgent
	order  []string
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		agents: make(map[string]SubAgent),
	}
}

// Register adds an agent. Re-registering an ID replaces the previous agent
// while keeping its original position in registration order.
func (m *Manager) Register(agent SubAgent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := agent.ID()
	if _, exists := m.agents[id]; !exists {
		m.order = append(m.order, id)
	}
	m.agents[id] = agent
}

// Unregister removes an agent by ID. Removing an unknown ID is a no-op.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.agents[id]; !exists {
		return
	}
	delete(m.agents, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Get returns the agent with the given ID, or false if not registered.
func (m *Manager) Get(id string) (SubAgent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	agent, ok := m.agents[id]
	return agent, ok
}

// MatchCapability returns agents whose capabilities match at least one of
// the constraints, in registration order. Empty constraints match every
// registered agent (broadcast).
func (m *Manager) MatchCapability(constraints []string) []SubAgent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]SubAgent, 0, len(m.order))
	for _, id := range m.order {
		agent := m.agents[id]
		if len(constraints) == 0 || agentMatches(agent, constraints) {
			matched = append(matched, agent)
		}
	}
	return matched
}

func agentMatches(agent SubAgent, constraints []string) bool {
	for _, constraint := range constraints {
		for _, cap := range agent.Capabilities() {
			if cap.Matches(constraint) {
				return true
			}
		}
	}
	return false
}

// AgentNames returns the names of all registered agents in registration order.
func (m *Manager) AgentNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.order))
	for _, id := range m.order {
		names = append(names, m.agents[id].Name())
	}
	return names
}

// Len returns the number of registered agents.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.agents)
}

// IsEmpty reports whether no agents are registered.
func (m *Manager) IsEmpty() bool {
	return m.Len() == 0
}
