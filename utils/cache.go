/*
 Copyright 2023 NanaFS Authors.

 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package utils

import (
	"time"

	"github.com/bluele/gcache"
)

// LRUPool is a size bounded cache whose entries also expire after a while.
type LRUPool struct {
	cache  gcache.Cache
	expire time.Duration
}

func (c *LRUPool) Put(key string, val interface{}) {
	if err := c.cache.SetWithExpire(key, val, c.expire); err != nil {
		c.cache.Remove(key)
	}
}

func (c *LRUPool) Get(key string) (interface{}, bool) {
	val, err := c.cache.Get(key)
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *LRUPool) Remove(key string) {
	c.cache.Remove(key)
}

func (c *LRUPool) Purge() {
	c.cache.Purge()
}

func (c *LRUPool) Len() int {
	return c.cache.Len(true)
}

func NewLRUPool(size int, expire time.Duration) *LRUPool {
	return &LRUPool{
		cache:  gcache.New(size).LRU().Expiration(expire).Build(),
		expire: expire,
	}
}
