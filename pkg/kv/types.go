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

// Package kv stores encoded keys in sorted order. The stores never
// look inside a key; they rely on the codec's guarantee that byte
// order equals value order, so range scans visit records in value
// order.
package kv

import (
	"errors"

	"github.com/matrixorigin/orderedkey/pkg/tuplecodec"
)

var (
	ErrClosed = errors.New("the kv store is closed")
)

type KVHandler interface {
	// Set writes the key-value (overwrite)
	Set(key tuplecodec.TupleKey, value tuplecodec.TupleValue) error

	// Get gets the value of the key. A missing key yields a nil value
	// and no error.
	Get(key tuplecodec.TupleKey) (tuplecodec.TupleValue, error)

	// Delete removes the key
	Delete(key tuplecodec.TupleKey) error

	// GetRange gets the keys and values among the range [startKey,endKey)
	GetRange(startKey tuplecodec.TupleKey, endKey tuplecodec.TupleKey) ([]tuplecodec.TupleKey, []tuplecodec.TupleValue, error)

	// GetWithPrefix gets the keys and values of the prefix with limit.
	// A zero limit means no limit.
	GetWithPrefix(prefix tuplecodec.TupleKey, limit uint64) ([]tuplecodec.TupleKey, []tuplecodec.TupleValue, error)

	Close() error
}

// SuccessorOfPrefix returns the smallest key greater than every key
// that starts with prefix, or nil when no such key exists.
func SuccessorOfPrefix(prefix tuplecodec.TupleKey) tuplecodec.TupleKey {
	u := make(tuplecodec.TupleKey, len(prefix))
	copy(u, prefix)
	for i := len(u) - 1; i >= 0; i-- {
		if u[i] != 0xFF {
			u[i]++
			return u[:i+1]
		}
	}
	return nil
}
