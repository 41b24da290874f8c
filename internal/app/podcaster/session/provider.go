package session

import "sync"

// StaticProvider holds identity set in process, used by the terminal host
type StaticProvider struct {
	mu       sync.Mutex
	identity *Identity
	subs     map[int]func(*Identity)
	next     int
}

// NewStaticProvider with initial identity, nil means signed out
func NewStaticProvider(id *Identity) *StaticProvider {
	return &StaticProvider{identity: id, subs: map[int]func(*Identity){}}
}

// Subscribe implements Provider
func (p *StaticProvider) Subscribe(fn func(*Identity)) func() {
	p.mu.Lock()
	key := p.next
	p.next++
	p.subs[key] = fn
	id := p.identity
	p.mu.Unlock()

	fn(id)
	return func() {
		p.mu.Lock()
		delete(p.subs, key)
		p.mu.Unlock()
	}
}

// Set identity and notify subscribers
func (p *StaticProvider) Set(id *Identity) {
	p.mu.Lock()
	p.identity = id
	subs := make([]func(*Identity), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(id)
	}
}

// Subscribers count
func (p *StaticProvider) Subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}
