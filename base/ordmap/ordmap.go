// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ordmap provides a map that keeps its keys in insertion
// order, with map speed lookup by key.
package ordmap

import (
	"fmt"
	"slices"
)

// KeyValue is one entry of a [Map].
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an ordered map. Order holds the entries in the order added;
// index maps each key to its position in Order.
type Map[K comparable, V any] struct {
	Order []KeyValue[K, V]
	index map[K]int
}

// New returns an empty map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{index: make(map[K]int)}
}

// Add sets the value of key, keeping the position of an existing key
// and appending a new one. It returns whether the key was new.
func (om *Map[K, V]) Add(key K, val V) bool {
	if om.index == nil {
		om.index = make(map[K]int)
	}
	if i, has := om.index[key]; has {
		om.Order[i].Value = val
		return false
	}
	om.index[key] = len(om.Order)
	om.Order = append(om.Order, KeyValue[K, V]{Key: key, Value: val})
	return true
}

// ValueByKeyTry returns the value of key and whether it is present.
func (om *Map[K, V]) ValueByKeyTry(key K) (V, bool) {
	i, ok := om.index[key]
	if !ok {
		var zv V
		return zv, false
	}
	return om.Order[i].Value, true
}

// Has returns whether key is present.
func (om *Map[K, V]) Has(key K) bool {
	_, ok := om.index[key]
	return ok
}

// KeyByIndex returns the key at position i.
func (om *Map[K, V]) KeyByIndex(i int) K { return om.Order[i].Key }

// ValueByIndex returns the value at position i.
func (om *Map[K, V]) ValueByIndex(i int) V { return om.Order[i].Value }

// Len returns the number of entries.
func (om *Map[K, V]) Len() int { return len(om.Order) }

// DeleteKey removes key, renumbering the entries after it.
// It returns whether the key was present.
func (om *Map[K, V]) DeleteKey(key K) bool {
	i, ok := om.index[key]
	if !ok {
		return false
	}
	delete(om.index, key)
	om.Order = slices.Delete(om.Order, i, i+1)
	for j := i; j < len(om.Order); j++ {
		om.index[om.Order[j].Key] = j
	}
	return true
}

// Keys returns the keys in order.
func (om *Map[K, V]) Keys() []K {
	keys := make([]K, len(om.Order))
	for i, kv := range om.Order {
		keys[i] = kv.Key
	}
	return keys
}

func (om *Map[K, V]) String() string {
	return fmt.Sprintf("%v", om.Order)
}
