package portfolio

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var ErrLedgerNotFound = errors.New("portfolio not found")

// Registry maps portfolio IDs to ledgers for the API.
type Registry struct {
	mu      sync.RWMutex
	ledgers map[string]*Ledger
	opts    []Option
}

// NewRegistry creates an empty registry. opts are applied to every ledger it creates.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{ledgers: make(map[string]*Ledger), opts: opts}
}

func (r *Registry) Create(initialCash float64) (string, *Ledger, error) {
	l, err := NewLedger(initialCash, r.opts...)
	if err != nil {
		return "", nil, err
	}
	id := uuid.NewString()

	r.mu.Lock()
	r.ledgers[id] = l
	r.mu.Unlock()
	return id, l, nil
}

func (r *Registry) Get(id string) (*Ledger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.ledgers[id]
	if !ok {
		return nil, ErrLedgerNotFound
	}
	return l, nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ledgers[id]; !ok {
		return ErrLedgerNotFound
	}
	delete(r.ledgers, id)
	return nil
}

// IDs returns the registered IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.ledgers))
	for id := range r.ledgers {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
