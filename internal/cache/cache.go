// Package cache holds rendered previews so scrolling back over a file does
// not re-highlight it.
package cache

import (
	"container/list"
	"fmt"
	"time"
)

type LRUCache struct {
	size      int
	evictList *list.List
	items     map[string]*list.Element
}

type entry struct {
	key   string
	value string
}

func NewLRUCache(size int) *LRUCache {
	if size < 1 {
		size = 1
	}
	return &LRUCache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}
}

// Key identifies a rendering of path; a change of size, mtime or width
// yields a different key.
func Key(path string, size int64, modTime time.Time, width int) string {
	return fmt.Sprintf("%s\x00%d\x00%d\x00%d", path, size, modTime.UnixNano(), width)
}

func (c *LRUCache) Get(key string) (value string, ok bool) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		return ele.Value.(*entry).value, true
	}
	return
}

func (c *LRUCache) Put(key, value string) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		ele.Value.(*entry).value = value
		return
	}

	ele := c.evictList.PushFront(&entry{key, value})
	c.items[key] = ele

	if c.evictList.Len() > c.size {
		c.removeOldest()
	}
}

func (c *LRUCache) Len() int {
	return c.evictList.Len()
}

// Purge drops every entry.
func (c *LRUCache) Purge() {
	c.evictList.Init()
	c.items = make(map[string]*list.Element)
}

func (c *LRUCache) removeOldest() {
	ele := c.evictList.Back()
	if ele != nil {
		c.removeElement(ele)
	}
}

func (c *LRUCache) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry)
	delete(c.items, kv.key)
}
