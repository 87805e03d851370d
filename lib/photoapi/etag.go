// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package photoapi

import (
	"container/list"
	"sync"

	"github.com/lightbox-labs/lightbox/lib/codec"
)

// defaultETagEntries bounds the ETag cache. Every (query, page) pair is
// a distinct URL, so an unbounded cache would grow with every search
// typed in a long session.
const defaultETagEntries = 256

type etagEntry struct {
	url    string
	etag   string
	body   []byte
	format codec.Format
}

// etagCache maps request URLs to the last ETag and body seen for them,
// evicting the least recently used entry when full. A 304 response is
// answered from the cache.
type etagCache struct {
	mutex    sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

func newETagCache(capacity int) *etagCache {
	if capacity <= 0 {
		capacity = defaultETagEntries
	}
	return &etagCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// lookup returns the cached entry for url.
func (cache *etagCache) lookup(url string) (etagEntry, bool) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	element, ok := cache.entries[url]
	if !ok {
		return etagEntry{}, false
	}
	cache.order.MoveToFront(element)
	return *element.Value.(*etagEntry), true
}

func (cache *etagCache) put(entry etagEntry) {
	if entry.etag == "" {
		return
	}
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	if element, ok := cache.entries[entry.url]; ok {
		element.Value = &entry
		cache.order.MoveToFront(element)
		return
	}
	cache.entries[entry.url] = cache.order.PushFront(&entry)
	for cache.order.Len() > cache.capacity {
		oldest := cache.order.Back()
		cache.order.Remove(oldest)
		delete(cache.entries, oldest.Value.(*etagEntry).url)
	}
}

func (cache *etagCache) len() int {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	return cache.order.Len()
}
