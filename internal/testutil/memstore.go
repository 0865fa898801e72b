// Package testutil provides an in-memory record store for service tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/models"
)

type record map[string]json.RawMessage

// MemStore implements database.RecordStore in memory. Ids are max+1 per
// collection, updates are shallow merges, and missing ids yield
// database.ErrNotFound. Values round-trip through JSON so tests see the
// same shapes the HTTP layer does.
type MemStore struct {
	mu       sync.Mutex
	data     map[string]map[int64]record
	failures map[string]error
	Calls    []string
}

// NewMemStore creates an empty store
func NewMemStore() *MemStore {
	return &MemStore{
		data:     make(map[string]map[int64]record),
		failures: make(map[string]error),
	}
}

// FailWith makes every subsequent op on coll fail with a backend error
func (s *MemStore) FailWith(op, coll string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op+":"+coll] = err
}

// Clear removes an injected failure
func (s *MemStore) Clear(op, coll string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, op+":"+coll)
}

// Count returns how many records coll holds
func (s *MemStore) Count(coll string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data[coll])
}

// Writes returns how many create/update/delete calls hit coll
func (s *MemStore) Writes(coll string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.Calls {
		switch c {
		case "create:" + coll, "update:" + coll, "delete:" + coll:
			n++
		}
	}
	return n
}

func (s *MemStore) enter(op, coll string) error {
	s.Calls = append(s.Calls, op+":"+coll)
	if err, ok := s.failures[op+":"+coll]; ok {
		return &database.BackendError{Op: op, Collection: coll, Err: err}
	}
	return nil
}

func (s *MemStore) ids(coll string) []int64 {
	ids := make([]int64, 0, len(s.data[coll]))
	for id := range s.data[coll] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func decodeAll(recs []record, dest interface{}) error {
	buf := bytes.NewBufferString("[")
	for i, r := range recs {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := json.Marshal(r)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return json.Unmarshal(buf.Bytes(), dest)
}

// List implements database.RecordStore
func (s *MemStore) List(ctx context.Context, coll string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("list", coll); err != nil {
		return err
	}
	recs := make([]record, 0, len(s.data[coll]))
	for _, id := range s.ids(coll) {
		recs = append(recs, s.data[coll][id])
	}
	return decodeAll(recs, dest)
}

// Recent implements database.RecordStore
func (s *MemStore) Recent(ctx context.Context, coll string, limit int, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("recent", coll); err != nil {
		return err
	}
	ids := s.ids(coll)
	recs := make([]record, 0, limit)
	for i := len(ids) - 1; i >= 0 && len(recs) < limit; i-- {
		recs = append(recs, s.data[coll][ids[i]])
	}
	return decodeAll(recs, dest)
}

// Get implements database.RecordStore
func (s *MemStore) Get(ctx context.Context, coll string, id int64, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("get", coll); err != nil {
		return err
	}
	r, ok := s.data[coll][id]
	if !ok {
		return fmt.Errorf("%s %d: %w", coll, id, database.ErrNotFound)
	}
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dest)
}

// Create implements database.RecordStore
func (s *MemStore) Create(ctx context.Context, coll string, fields models.Fields) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("create", coll); err != nil {
		return 0, err
	}
	if len(fields) == 0 {
		return 0, database.ErrNoFields
	}
	if s.data[coll] == nil {
		s.data[coll] = make(map[int64]record)
	}
	var id int64 = 1
	if ids := s.ids(coll); len(ids) > 0 {
		id = ids[len(ids)-1] + 1
	}
	r := record{}
	if err := merge(r, fields); err != nil {
		return 0, err
	}
	r["id"] = json.RawMessage(fmt.Sprintf("%d", id))
	s.data[coll][id] = r
	return id, nil
}

// Update implements database.RecordStore
func (s *MemStore) Update(ctx context.Context, coll string, id int64, fields models.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("update", coll); err != nil {
		return err
	}
	if len(fields) == 0 {
		return database.ErrNoFields
	}
	r, ok := s.data[coll][id]
	if !ok {
		return fmt.Errorf("%s %d: %w", coll, id, database.ErrNotFound)
	}
	return merge(r, fields)
}

// Delete implements database.RecordStore
func (s *MemStore) Delete(ctx context.Context, coll string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("delete", coll); err != nil {
		return err
	}
	if _, ok := s.data[coll][id]; !ok {
		return fmt.Errorf("%s %d: %w", coll, id, database.ErrNotFound)
	}
	delete(s.data[coll], id)
	return nil
}

func merge(r record, fields models.Fields) error {
	for k, v := range fields {
		if k == "id" {
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("field %s: %w", k, err)
		}
		r[k] = b
	}
	return nil
}

var _ database.RecordStore = (*MemStore)(nil)
