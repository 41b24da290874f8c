// Package session keeps process-wide authentication presence and maps it to
// the view a path may show. The upload workflow never depends on it.
package session

import (
	"sync"

	log "github.com/go-pkgz/lgr"
)

// Identity of signed in user
type Identity struct {
	UID   string
	Email string
}

// Provider reports identity changes. Subscribe calls fn with the current
// identity (nil when signed out) and on every change until unsubscribed.
type Provider interface {
	Subscribe(fn func(*Identity)) (unsubscribe func())
}

var state struct {
	mu          sync.RWMutex
	identity    *Identity
	resolved    bool
	unsubscribe func()
}

// Init subscribes to provider, replaces earlier subscription
func Init(p Provider) {
	Teardown()
	unsubscribe := p.Subscribe(func(id *Identity) {
		state.mu.Lock()
		state.identity = id
		state.resolved = true
		state.mu.Unlock()
		if id != nil {
			log.Printf("[DEBUG] signed in as %s", id.Email)
		} else {
			log.Printf("[DEBUG] signed out")
		}
	})

	state.mu.Lock()
	state.unsubscribe = unsubscribe
	state.mu.Unlock()
}

// Teardown unsubscribes and forgets identity
func Teardown() {
	state.mu.Lock()
	unsubscribe := state.unsubscribe
	state.unsubscribe = nil
	state.identity = nil
	state.resolved = false
	state.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// IsAuthenticated reports identity presence
func IsAuthenticated() bool {
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.identity != nil
}

// Current identity, nil if signed out
func Current() *Identity {
	state.mu.RLock()
	defer state.mu.RUnlock()
	if state.identity == nil {
		return nil
	}
	id := *state.identity
	return &id
}

// Resolved reports whether provider has answered at least once
func Resolved() bool {
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.resolved
}
