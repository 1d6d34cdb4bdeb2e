// Package cache provides the bounded in-memory store of previously generated
// dishes that tier 1 pads its response from.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mealforge/v1/internal/domain/dish"
	"github.com/mealforge/v1/internal/ports/outbound"
)

// defaultTTL is how long a generated dish stays servable.
const defaultTTL = 6 * time.Hour

// DishCache is a thread-safe bounded cache with LRU eviction. Keys are
// lowercase dish names, so re-adding a dish refreshes it instead of
// duplicating it.
type DishCache struct {
	mu      sync.Mutex
	items   map[string]*cacheItem
	lru     *lruList
	maxSize int
	ttl     time.Duration
}

type cacheItem struct {
	dish      *dish.Dish
	expiresAt time.Time
	node      *lruNode
}

// lruList is a doubly-linked list with sentinel head/tail for LRU tracking.
type lruList struct {
	head *lruNode
	tail *lruNode
}

type lruNode struct {
	key  string
	prev *lruNode
	next *lruNode
}

func newLRUList() *lruList {
	l := &lruList{head: &lruNode{}, tail: &lruNode{}}
	l.head.next = l.tail
	l.tail.prev = l.head
	return l
}

// NewDishCache creates a cache holding at most maxSize dishes.
func NewDishCache(maxSize int) *DishCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &DishCache{
		items:   make(map[string]*cacheItem),
		lru:     newLRUList(),
		maxSize: maxSize,
		ttl:     defaultTTL,
	}
}

// Add stores a generated dish, refreshing it if already present.
func (c *DishCache) Add(ctx context.Context, d *dish.Dish) error {
	if d == nil || d.Name == "" {
		return nil
	}
	key := strings.ToLower(d.Name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.items[key]; ok {
		item.dish = d
		item.expiresAt = time.Now().Add(c.ttl)
		c.moveToFront(item.node)
		return nil
	}

	node := &lruNode{key: key}
	c.items[key] = &cacheItem{dish: d, expiresAt: time.Now().Add(c.ttl), node: node}
	c.addToFront(node)

	for len(c.items) > c.maxSize {
		oldest := c.lru.tail.prev
		if oldest == c.lru.head {
			break
		}
		c.remove(oldest.key)
	}
	return nil
}

// TakeRecent returns up to limit unexpired dishes, most recently used first,
// skipping any whose key appears in exclude. Returned dishes stay cached;
// tier 1 reuse is the point of this store.
func (c *DishCache) TakeRecent(ctx context.Context, limit int, exclude map[string]bool) ([]*dish.Dish, error) {
	if limit <= 0 {
		return nil, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var out []*dish.Dish
	for node := c.lru.head.next; node != c.lru.tail && len(out) < limit; node = node.next {
		item := c.items[node.key]
		if item == nil {
			continue
		}
		if now.After(item.expiresAt) {
			stale := node
			node = node.prev
			c.remove(stale.key)
			continue
		}
		if exclude[node.key] {
			continue
		}
		out = append(out, item.dish)
	}
	return out, nil
}

// Size returns the current entry count.
func (c *DishCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear drops every entry.
func (c *DishCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*cacheItem)
	c.lru = newLRUList()
}

// remove assumes the caller holds the lock.
func (c *DishCache) remove(key string) {
	if item, ok := c.items[key]; ok {
		delete(c.items, key)
		c.unlink(item.node)
	}
}

func (c *DishCache) addToFront(node *lruNode) {
	node.prev = c.lru.head
	node.next = c.lru.head.next
	c.lru.head.next.prev = node
	c.lru.head.next = node
}

func (c *DishCache) unlink(node *lruNode) {
	node.prev.next = node.next
	node.next.prev = node.prev
}

func (c *DishCache) moveToFront(node *lruNode) {
	c.unlink(node)
	c.addToFront(node)
}

var _ outbound.DishCache = (*DishCache)(nil)
