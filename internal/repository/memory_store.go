package repository

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStore is an in-process Store for tests. Documents are kept as their BSON
// representation so filters, $set and $inc behave like the Mongo store for
// top-level equality matches.
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	docs    []bson.M
	uniques [][]string
}

// NewMemoryStore creates an empty store. Each unique entry is a set of field
// names that must be unique together, like a compound unique index.
func NewMemoryStore[T any](uniques ...[]string) *MemoryStore[T] {
	return &MemoryStore[T]{uniques: uniques}
}

func toM(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromM[T any](m bson.M) (*T, error) {
	raw, err := bson.Marshal(m)
	if err != nil {
		return nil, err
	}
	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func (s *MemoryStore[T]) conflicts(candidate bson.M, skip int) bool {
	for _, fields := range s.uniques {
		key := bson.M{}
		for _, f := range fields {
			v, ok := candidate[f]
			if !ok || v == nil {
				key = nil
				break
			}
			key[f] = v
		}
		if key == nil {
			continue
		}
		for i, d := range s.docs {
			if i != skip && matches(d, key) {
				return true
			}
		}
	}
	return false
}

func (s *MemoryStore[T]) index(filter bson.M) (int, error) {
	f, err := toM(filter)
	if err != nil {
		return -1, err
	}
	for i := len(s.docs) - 1; i >= 0; i-- {
		if matches(s.docs[i], f) {
			return i, nil
		}
	}
	return -1, nil
}

func (s *MemoryStore[T]) Find(_ context.Context, filter bson.M) ([]T, error) {
	f, err := toM(filter)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []T{}
	for i := len(s.docs) - 1; i >= 0; i-- {
		if !matches(s.docs[i], f) {
			continue
		}
		doc, err := fromM[T](s.docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	return out, nil
}

func (s *MemoryStore[T]) FindOne(_ context.Context, filter bson.M) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, err := s.index(filter)
	if err != nil {
		return nil, err
	}
	if i < 0 {
		return nil, ErrNotFound
	}
	return fromM[T](s.docs[i])
}

func (s *MemoryStore[T]) Insert(_ context.Context, doc *T) error {
	m, err := toM(doc)
	if err != nil {
		return err
	}
	if _, ok := m["_id"]; !ok {
		m["_id"] = bson.NewObjectID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.find(m["_id"]); dup {
		return ErrDuplicate
	}
	if s.conflicts(m, -1) {
		return ErrDuplicate
	}
	s.docs = append(s.docs, m)
	return nil
}

func (s *MemoryStore[T]) find(id any) (int, bool) {
	for i, d := range s.docs {
		if reflect.DeepEqual(d["_id"], id) {
			return i, true
		}
	}
	return -1, false
}

func (s *MemoryStore[T]) UpdateOne(_ context.Context, filter, set, inc bson.M) (*T, error) {
	setM, err := toM(set)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.index(filter)
	if err != nil {
		return nil, err
	}
	if i < 0 {
		return nil, ErrNotFound
	}

	next := bson.M{}
	for k, v := range s.docs[i] {
		next[k] = v
	}
	for k, v := range setM {
		next[k] = v
	}
	for k, v := range inc {
		n, err := addNumber(next[k], v)
		if err != nil {
			return nil, fmt.Errorf("$inc %s: %w", k, err)
		}
		next[k] = n
	}
	if s.conflicts(next, i) {
		return nil, ErrDuplicate
	}
	s.docs[i] = next
	return fromM[T](next)
}

func (s *MemoryStore[T]) DeleteOne(_ context.Context, filter bson.M) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.index(filter)
	if err != nil {
		return nil, err
	}
	if i < 0 {
		return nil, ErrNotFound
	}
	removed := s.docs[i]
	s.docs = append(s.docs[:i], s.docs[i+1:]...)
	return fromM[T](removed)
}

// Len reports how many documents are stored.
func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func addNumber(cur, delta any) (any, error) {
	d, ok := toInt64(delta)
	if !ok {
		return nil, fmt.Errorf("non-integer delta %T", delta)
	}
	if cur == nil {
		return d, nil
	}
	c, ok := toInt64(cur)
	if !ok {
		return nil, fmt.Errorf("non-integer field %T", cur)
	}
	return c + d, nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}
