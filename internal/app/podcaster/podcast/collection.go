package podcast

import "sync"

// Collection keeps items most-recent-first
type Collection struct {
	mu    sync.RWMutex
	items []Item
}

// Prepend item to the head of collection
func (c *Collection) Prepend(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]Item{item}, c.items...)
}

// PrependWith builds item from current size and prepends it in one step
func (c *Collection) PrependWith(build func(size int) Item) Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	item := build(len(c.items))
	c.items = append([]Item{item}, c.items...)
	return item
}

// All items in display order, copy
func (c *Collection) All() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make([]Item, len(c.items))
	copy(res, c.items)
	return res
}

// Len of collection
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
