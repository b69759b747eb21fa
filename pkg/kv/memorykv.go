// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kv

import (
	"bytes"
	"sync"

	"github.com/google/btree"

	"github.com/matrixorigin/orderedkey/pkg/tuplecodec"
)

const memoryKVDegree = 32

// MemoryKV keeps the keys in an in-memory btree, sorted by
// bytes.Compare over the encoded key.
type MemoryKV struct {
	sync.RWMutex
	tree *btree.BTree
}

var _ KVHandler = (*MemoryKV)(nil)

type memoryItem struct {
	key   tuplecodec.TupleKey
	value tuplecodec.TupleValue
}

func (m *memoryItem) Less(than btree.Item) bool {
	return bytes.Compare(m.key, than.(*memoryItem).key) < 0
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{tree: btree.New(memoryKVDegree)}
}

func (m *MemoryKV) Set(key tuplecodec.TupleKey, value tuplecodec.TupleValue) error {
	m.Lock()
	defer m.Unlock()
	if m.tree == nil {
		return ErrClosed
	}
	m.tree.ReplaceOrInsert(&memoryItem{key: key, value: value})
	return nil
}

func (m *MemoryKV) Get(key tuplecodec.TupleKey) (tuplecodec.TupleValue, error) {
	m.RLock()
	defer m.RUnlock()
	if m.tree == nil {
		return nil, ErrClosed
	}
	item := m.tree.Get(&memoryItem{key: key})
	if item == nil {
		return nil, nil
	}
	return item.(*memoryItem).value, nil
}

func (m *MemoryKV) Delete(key tuplecodec.TupleKey) error {
	m.Lock()
	defer m.Unlock()
	if m.tree == nil {
		return ErrClosed
	}
	m.tree.Delete(&memoryItem{key: key})
	return nil
}

func (m *MemoryKV) GetRange(startKey tuplecodec.TupleKey, endKey tuplecodec.TupleKey) ([]tuplecodec.TupleKey, []tuplecodec.TupleValue, error) {
	return m.scan(startKey, endKey, 0)
}

func (m *MemoryKV) GetWithPrefix(prefix tuplecodec.TupleKey, limit uint64) ([]tuplecodec.TupleKey, []tuplecodec.TupleValue, error) {
	return m.scan(prefix, SuccessorOfPrefix(prefix), limit)
}

func (m *MemoryKV) scan(startKey, endKey tuplecodec.TupleKey, limit uint64) ([]tuplecodec.TupleKey, []tuplecodec.TupleValue, error) {
	m.RLock()
	defer m.RUnlock()
	if m.tree == nil {
		return nil, nil, ErrClosed
	}

	var keys []tuplecodec.TupleKey
	var values []tuplecodec.TupleValue
	iter := func(item btree.Item) bool {
		if limit != 0 && uint64(len(keys)) >= limit {
			return false
		}
		mi := item.(*memoryItem)
		keys = append(keys, mi.key)
		values = append(values, mi.value)
		return true
	}
	if endKey == nil {
		m.tree.AscendGreaterOrEqual(&memoryItem{key: startKey}, iter)
	} else {
		m.tree.AscendRange(&memoryItem{key: startKey}, &memoryItem{key: endKey}, iter)
	}
	return keys, values, nil
}

func (m *MemoryKV) Close() error {
	m.Lock()
	defer m.Unlock()
	if m.tree == nil {
		return ErrClosed
	}
	m.tree.Clear(false)
	m.tree = nil
	return nil
}
