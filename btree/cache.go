// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package btree

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/jugadbase/jugadb/log"
	"github.com/jugadbase/jugadb/types"
)

// Cache holds loaded trees in memory for LifetimeThreshold seconds past
// their last touch, persisting an evicted tree back to disk via its
// OnEvict hook rather than discarding in-memory edits.
type Cache struct {
	dir string

	mu    sync.Mutex
	cache *ristretto.Cache
}

// NewCache opens a tree cache rooted at dir, where each table's index file
// is named "<table>.<column>.idx".
func NewCache(dir string) (*Cache, error) {

	rc, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 26,
		BufferItems: 64,
		OnEvict: func(item *ristretto.Item) {
			t, ok := item.Value.(*Tree)
			if !ok || t.path == "" {
				return
			}
			if err := Save(t, t.path); err != nil {
				log.WithField("path", t.path).Errorf("btree: failed to persist evicted index: %v", err)
			}
		},
	})
	if err != nil {
		return nil, err
	}

	return &Cache{dir: dir, cache: rc}, nil

}

// indexPath derives the on-disk index filename for a table/column pair.
func (c *Cache) indexPath(table, column string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s.%s.idx", table, column))
}

// Get returns the cached tree for table/column, loading it from disk (and
// pinning it in the cache with a LifetimeThreshold TTL) on a miss.
func (c *Cache) Get(table, column string, keyType types.Kind, varcharLen int) (*Tree, error) {

	c.mu.Lock()
	defer c.mu.Unlock()

	key := table + "." + column

	if v, ok := c.cache.Get(key); ok {
		return v.(*Tree), nil
	}

	path := c.indexPath(table, column)
	t, err := Load(path)
	if err != nil {
		t = New(0, keyType, varcharLen)
	}
	t.path = path

	c.cache.SetWithTTL(key, t, 1, time.Duration(LifetimeThreshold)*time.Second)
	c.cache.Wait()

	return t, nil

}

// Touch refreshes table/column's TTL after a mutating operation, so a busy
// index is not evicted mid-burst.
func (c *Cache) Touch(table, column string, t *Tree) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.SetWithTTL(table+"."+column, t, 1, time.Duration(LifetimeThreshold)*time.Second)
}

// Flush persists every tree in trees that has an on-disk path, for a
// clean shutdown.
func (c *Cache) Flush(trees map[string]*Tree) error {
	for key, t := range trees {
		if t.path == "" {
			continue
		}
		if err := Save(t, t.path); err != nil {
			return fmt.Errorf("flush index %s: %w", key, err)
		}
	}
	return nil
}
