package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/frontiermaps/starmap/pkg/core/starmap"
)

// Service is the reloadable wrapper around an Engine. It holds the active
// dataset generation behind an atomic pointer: a reload builds the new
// generation to completion, then swaps it in as a whole unit. In-flight
// queries keep the generation they started with; a failed reload leaves the
// previous generation in service.
type Service struct {
	current atomic.Pointer[Engine]
}

// NewService builds the initial generation from ds.
func NewService(ds starmap.Dataset) (*Service, error) {
	s := &Service{}
	if err := s.Load(ds); err != nil {
		return nil, err
	}
	return s, nil
}

// Load builds a new generation and atomically makes it current.
func (s *Service) Load(ds starmap.Dataset) error {
	eng, err := Open(ds)
	if err != nil {
		return fmt.Errorf("load dataset %q: %w", ds.Tag, err)
	}
	s.current.Store(eng)
	return nil
}

// Current returns the active generation. The returned handle stays valid
// even after a later Load.
func (s *Service) Current() *Engine { return s.current.Load() }
