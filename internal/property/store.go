package property

import (
	"fmt"
	"sync"
)

// Store is the in-memory listing store. Listings are ordered newest first
// and only ever grow by prepending.
type Store struct {
	mu       sync.RWMutex
	listings []Property
}

// NewStore creates a store holding seed, in order.
func NewStore(seed []Property) (*Store, error) {
	seen := make(map[string]bool, len(seed))
	listings := make([]Property, 0, len(seed))
	for _, p := range seed {
		if seen[p.ID] {
			return nil, fmt.Errorf("seeding %s: %w", p.ID, ErrDuplicateID)
		}
		seen[p.ID] = true
		listings = append(listings, p.clone())
	}
	return &Store{listings: listings}, nil
}

// All returns a copy of every listing.
func (s *Store) All() []Property {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Property, len(s.listings))
	for i, p := range s.listings {
		out[i] = p.clone()
	}
	return out
}

// Len returns the number of listings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings)
}

// Get returns the listing with the given ID.
func (s *Store) Get(id string) (Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return Property{}, fmt.Errorf("getting %s: %w", id, ErrNotFound)
	}
	return s.listings[i].clone(), nil
}

// Create prepends p.
func (s *Store) Create(p Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index(p.ID) >= 0 {
		return fmt.Errorf("creating %s: %w", p.ID, ErrDuplicateID)
	}
	s.listings = append([]Property{p.clone()}, s.listings...)
	return nil
}

// ByLandlord returns the listings owned by landlordID, newest first.
func (s *Store) ByLandlord(landlordID string) []Property {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Property{}
	for _, p := range s.listings {
		if p.LandlordID == landlordID {
			out = append(out, p.clone())
		}
	}
	return out
}

// MarkInterested bumps the interested counter of a listing and returns the
// new count.
func (s *Store) MarkInterested(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return 0, fmt.Errorf("marking %s: %w", id, ErrNotFound)
	}
	s.listings[i].InterestedCount++
	return s.listings[i].InterestedCount, nil
}

func (s *Store) index(id string) int {
	for i, p := range s.listings {
		if p.ID == id {
			return i
		}
	}
	return -1
}
