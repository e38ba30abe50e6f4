// Package service provides business logic services for the geoscout automation engine.
package service

import "sync"

// ClaimRegistry tracks which tracked searches currently have an execution in
// flight. Both the scheduler loop and manual run-now requests must claim an id
// before executing, which serializes executions per tracked search: at most
// one in-flight execution per id, enforced in one inspectable place instead of
// ad-hoc flags at call sites.
type ClaimRegistry struct {
	mu      sync.Mutex
	running map[string]struct{}
}

// NewClaimRegistry creates an empty ClaimRegistry.
func NewClaimRegistry() *ClaimRegistry {
	return &ClaimRegistry{running: make(map[string]struct{})}
}

// Claim atomically marks the id as running. Returns false when an execution
// is already in flight for it.
func (c *ClaimRegistry) Claim(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.running[id]; ok {
		return false
	}
	c.running[id] = struct{}{}
	return true
}

// Release returns the id to the idle state. Safe to call for ids that were
// never claimed.
func (c *ClaimRegistry) Release(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.running, id)
}

// IsRunning reports whether an execution is in flight for the id.
func (c *ClaimRegistry) IsRunning(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.running[id]
	return ok
}

// InFlight returns the number of currently claimed ids.
func (c *ClaimRegistry) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.running)
}
