package registry

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// MemoryStore is an in-process Store backed by maps. It is the reference
// implementation used by tests and single-node deployments; the Postgres store
// mirrors its semantics.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[common.Hash]Delegation
	// outgoing indexes the identities of enabled records per vault.
	outgoing map[common.Address]map[common.Hash]struct{}
}

// NewMemoryStore creates an empty in-memory delegation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:  make(map[common.Hash]Delegation),
		outgoing: make(map[common.Address]map[common.Hash]struct{}),
	}
}

// SetDelegation implements Store.
func (s *MemoryStore) SetDelegation(_ context.Context, d Delegation, enable bool) (common.Hash, error) {
	if err := Validate(d); err != nil {
		return common.Hash{}, err
	}

	id := d.Identity()
	d.Enabled = enable

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[id]; ok && !enable {
		// Revocation keeps the original record data, only the flag flips.
		existing.Enabled = false
		s.records[id] = existing
	} else {
		s.records[id] = d.clone()
	}

	if enable {
		if s.outgoing[d.From] == nil {
			s.outgoing[d.From] = make(map[common.Hash]struct{})
		}
		s.outgoing[d.From][id] = struct{}{}
	} else {
		delete(s.outgoing[d.From], id)
	}
	return id, nil
}

// ReadRecord implements Store.
func (s *MemoryStore) ReadRecord(_ context.Context, id common.Hash) (Delegation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.records[id]
	if !ok {
		return Delegation{Type: TypeNone}, nil
	}
	return d.clone(), nil
}

// OutgoingDelegations implements Store.
func (s *MemoryStore) OutgoingDelegations(_ context.Context, from common.Address) ([]Delegation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.outgoing[from]
	out := make([]Delegation, 0, len(ids))
	for id := range ids {
		out = append(out, s.records[id].clone())
	}
	return out, nil
}
