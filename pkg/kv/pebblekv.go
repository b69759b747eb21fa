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
	"github.com/cockroachdb/pebble"

	"github.com/matrixorigin/orderedkey/pkg/tuplecodec"
)

// PebbleKV keeps the keys in a pebble instance on disk.
type PebbleKV struct {
	db *pebble.DB
}

var _ KVHandler = (*PebbleKV)(nil)

func NewPebbleKV(dir string) (*PebbleKV, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &PebbleKV{db: db}, nil
}

func (p *PebbleKV) Set(key tuplecodec.TupleKey, value tuplecodec.TupleValue) error {
	return p.db.Set(key, value, nil)
}

func (p *PebbleKV) Get(key tuplecodec.TupleKey) (tuplecodec.TupleValue, error) {
	v, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r := make(tuplecodec.TupleValue, len(v))
	copy(r, v)
	closer.Close()
	return r, nil
}

func (p *PebbleKV) Delete(key tuplecodec.TupleKey) error {
	return p.db.Delete(key, nil)
}

func (p *PebbleKV) GetRange(startKey tuplecodec.TupleKey, endKey tuplecodec.TupleKey) ([]tuplecodec.TupleKey, []tuplecodec.TupleValue, error) {
	return p.scan(startKey, endKey, 0)
}

func (p *PebbleKV) GetWithPrefix(prefix tuplecodec.TupleKey, limit uint64) ([]tuplecodec.TupleKey, []tuplecodec.TupleValue, error) {
	return p.scan(prefix, SuccessorOfPrefix(prefix), limit)
}

func (p *PebbleKV) scan(startKey, endKey tuplecodec.TupleKey, limit uint64) ([]tuplecodec.TupleKey, []tuplecodec.TupleValue, error) {
	iter := p.db.NewIter(&pebble.IterOptions{
		LowerBound: startKey,
		UpperBound: endKey,
	})
	defer iter.Close()

	var keys []tuplecodec.TupleKey
	var values []tuplecodec.TupleValue
	for iter.First(); iter.Valid(); iter.Next() {
		if limit != 0 && uint64(len(keys)) >= limit {
			break
		}
		k := make(tuplecodec.TupleKey, len(iter.Key()))
		copy(k, iter.Key())
		v := make(tuplecodec.TupleValue, len(iter.Value()))
		copy(v, iter.Value())
		keys = append(keys, k)
		values = append(values, v)
	}
	return keys, values, nil
}

func (p *PebbleKV) Close() error {
	return p.db.Close()
}
