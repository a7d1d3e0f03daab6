package services

import (
	"container/list"
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	key        string
	value      V
	expiration time.Time
}

// LRUCache é um cache LRU thread-safe com expiração por entrada
type LRUCache[V any] struct {
	capacity int
	mu       sync.Mutex
	items    map[string]*list.Element
	lruList  *list.List
	now      func() time.Time
}

// NewLRUCache cria um cache LRU com a capacidade especificada
func NewLRUCache[V any](capacity int) *LRUCache[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRUCache[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		lruList:  list.New(),
		now:      time.Now,
	}
}

// Get recupera um valor do cache; entradas expiradas são removidas
func (c *LRUCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	element, found := c.items[key]
	if !found {
		return zero, false
	}

	entry := element.Value.(*cacheEntry[V])
	if c.now().After(entry.expiration) {
		c.removeElement(element)
		return zero, false
	}

	c.lruList.MoveToBack(element)
	return entry.value, true
}

// Set adiciona ou atualiza um valor no cache
func (c *LRUCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiration := c.now().Add(ttl)

	if element, found := c.items[key]; found {
		c.lruList.MoveToBack(element)
		entry := element.Value.(*cacheEntry[V])
		entry.value = value
		entry.expiration = expiration
		return
	}

	// Cache cheio: remove o item menos recentemente usado
	if c.lruList.Len() >= c.capacity {
		if oldest := c.lruList.Front(); oldest != nil {
			c.removeElement(oldest)
		}
	}

	element := c.lruList.PushBack(&cacheEntry[V]{key: key, value: value, expiration: expiration})
	c.items[key] = element
}

// Clear limpa todo o cache
func (c *LRUCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.lruList.Init()
}

// Size retorna o número de itens no cache
func (c *LRUCache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lruList.Len()
}

// CleanupExpired remove todos os itens expirados e retorna quantos foram removidos
func (c *LRUCache[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0

	var next *list.Element
	for element := c.lruList.Front(); element != nil; element = next {
		next = element.Next()
		if now.After(element.Value.(*cacheEntry[V]).expiration) {
			c.removeElement(element)
			removed++
		}
	}

	return removed
}

// StartCleanupRoutine limpa periodicamente os itens expirados até o ticker ser parado
func (c *LRUCache[V]) StartCleanupRoutine(interval time.Duration) *time.Ticker {
	ticker := time.NewTicker(interval)

	go func() {
		for range ticker.C {
			c.CleanupExpired()
		}
	}()

	return ticker
}

// removeElement deve ser chamado com o lock
func (c *LRUCache[V]) removeElement(element *list.Element) {
	c.lruList.Remove(element)
	delete(c.items, element.Value.(*cacheEntry[V]).key)
}
