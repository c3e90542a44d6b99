// internal/cache/lru.go
//
// Tiny LRU cache used by the web layer to hold per-visitor form sessions.
// No external deps; good for a few thousand entries.  An optional eviction
// hook lets owners release resources (timers) when an entry ages out.
package cache

import "container/list"

// LRU is a non-generic least-recently-used cache.
// Keys must be comparable; values can be any.  Not safe for concurrent use;
// callers wrap it in their own lock.
type LRU struct {
	cap     int
	ll      *list.List
	dict    map[any]*list.Element
	onEvict func(key, val any)
}

type pair struct {
	key any
	val any
}

// New returns an LRU with the given capacity.  Panics on cap < 1.
func New(capacity int) *LRU {
	if capacity < 1 {
		panic("cache: capacity must be ≥1")
	}
	return &LRU{
		cap:  capacity,
		ll:   list.New(),
		dict: make(map[any]*list.Element, capacity),
	}
}

// OnEvict installs fn, called once for every entry dropped by capacity or
// removed explicitly.  Pass nil to clear.
func (c *LRU) OnEvict(fn func(key, val any)) { c.onEvict = fn }

// Get retrieves a value or nil and marks it MRU.
func (c *LRU) Get(key any) (val any, ok bool) {
	if ele, hit := c.dict[key]; hit {
		c.ll.MoveToFront(ele)
		return ele.Value.(pair).val, true
	}
	return nil, false
}

// Add inserts or updates a value, evicting the LRU entry when over capacity.
func (c *LRU) Add(key, val any) {
	if ele, hit := c.dict[key]; hit {
		ele.Value = pair{key, val}
		c.ll.MoveToFront(ele)
		return
	}
	ele := c.ll.PushFront(pair{key, val})
	c.dict[key] = ele
	if c.ll.Len() > c.cap {
		c.removeElement(c.ll.Back())
	}
}

// Remove drops key if present, firing the eviction hook.
func (c *LRU) Remove(key any) {
	if ele, hit := c.dict[key]; hit {
		c.removeElement(ele)
	}
}

// Len reports current size.
func (c *LRU) Len() int { return c.ll.Len() }

func (c *LRU) removeElement(ele *list.Element) {
	p := ele.Value.(pair)
	c.ll.Remove(ele)
	delete(c.dict, p.key)
	if c.onEvict != nil {
		c.onEvict(p.key, p.val)
	}
}
