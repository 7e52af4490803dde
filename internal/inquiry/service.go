package inquiry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evcraddock/rentivo/internal/property"
	"github.com/evcraddock/rentivo/internal/session"
	"github.com/evcraddock/rentivo/internal/storage"
	"github.com/evcraddock/rentivo/internal/validation"
)

var (
	// ErrNoActiveSession is returned when nobody is signed in.
	ErrNoActiveSession = session.ErrNoActiveSession
	// ErrNoSelectedProperty is returned when no listing is selected.
	ErrNoSelectedProperty = errors.New("no selected property")
	// ErrInquiryNotFound is returned when no inquiry has the requested ID.
	ErrInquiryNotFound = errors.New("inquiry not found")
	// ErrNotReceiver is returned when someone other than the landlord
	// tries to decide an inquiry.
	ErrNotReceiver = errors.New("only the receiving landlord can update an inquiry")
	// ErrInvalidTransition is returned for any status change other than
	// PENDING to ACCEPTED or REJECTED.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrCorruptInquiries is returned when the stored inquiry list cannot
	// be decoded.
	ErrCorruptInquiries = errors.New("corrupt stored inquiries")
)

// Service is the inquiry store. Inquiries are kept most recent first and
// the full list is rewritten to local storage on every change.
type Service struct {
	store storage.Store
	now   func() time.Time

	mu    sync.RWMutex
	items []Inquiry
}

// NewService creates an empty inquiry store backed by store. A nil clock
// uses time.Now.
func NewService(store storage.Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now, items: []Inquiry{}}
}

// Load reads the stored list. A missing key leaves the store empty. A
// malformed value returns an error wrapping ErrCorruptInquiries and also
// leaves it empty.
func (s *Service) Load(ctx context.Context) error {
	var items []Inquiry
	ok, err := storage.GetJSON(ctx, s.store, storage.KeyInquiries, &items)
	if errors.Is(err, storage.ErrCorrupt) {
		return fmt.Errorf("loading inquiries: %w: %v", ErrCorruptInquiries, err)
	}
	if err != nil {
		return fmt.Errorf("loading inquiries: %w", err)
	}
	if !ok || items == nil {
		items = []Inquiry{}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Discard removes the stored list. Used to drop a value Load could not read.
func (s *Service) Discard(ctx context.Context) error {
	if err := s.store.Remove(ctx, storage.KeyInquiries); err != nil {
		return fmt.Errorf("discarding inquiries: %w", err)
	}
	return nil
}

// Submit records an inquiry from sender about selected. With no sender or
// no selected listing it returns a precondition error and the store is left
// unchanged.
func (s *Service) Submit(ctx context.Context, sender *session.User, selected *property.Property, req Request) (Inquiry, error) {
	if sender == nil {
		return Inquiry{}, ErrNoActiveSession
	}
	if selected == nil {
		return Inquiry{}, ErrNoSelectedProperty
	}

	req.Message = strings.TrimSpace(req.Message)
	if err := validation.Struct(req); err != nil {
		return Inquiry{}, err
	}

	inq := Inquiry{
		ID:            uuid.NewString(),
		PropertyID:    selected.ID,
		PropertyTitle: selected.Title,
		PropertyPhoto: selected.CoverPhoto(),
		SenderID:      sender.ID,
		SenderName:    sender.Name,
		SenderAvatar:  sender.Avatar,
		ReceiverID:    selected.LandlordID,
		Message:       req.Message,
		MoveInDate:    req.MoveInDate,
		Occupants:     req.Occupants,
		Status:        Pending,
		CreatedAt:     s.now().UnixMilli(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Inquiry, 0, len(s.items)+1)
	next = append(next, inq)
	next = append(next, s.items...)
	if err := s.save(ctx, next); err != nil {
		return Inquiry{}, err
	}
	s.items = next

	slog.Info("inquiry submitted", "id", inq.ID, "property", inq.PropertyID, "sender", inq.SenderID)
	return inq, nil
}

// UpdateStatus lets the receiving landlord accept or reject a pending
// inquiry.
func (s *Service) UpdateStatus(ctx context.Context, actor *session.User, id string, status Status) (Inquiry, error) {
	if actor == nil {
		return Inquiry{}, ErrNoActiveSession
	}
	if status != Accepted && status != Rejected {
		return Inquiry{}, fmt.Errorf("%w: to %q", ErrInvalidTransition, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Inquiry{}, fmt.Errorf("updating %s: %w", id, ErrInquiryNotFound)
	}
	cur := s.items[i]
	if cur.ReceiverID != actor.ID {
		return Inquiry{}, ErrNotReceiver
	}
	if cur.Status != Pending {
		return Inquiry{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, cur.Status, status)
	}

	cur.Status = status
	cur.UpdatedAt = s.now().UnixMilli()

	next := append([]Inquiry(nil), s.items...)
	next[i] = cur
	if err := s.save(ctx, next); err != nil {
		return Inquiry{}, err
	}
	s.items = next

	slog.Info("inquiry updated", "id", cur.ID, "status", cur.Status)
	return cur, nil
}

// Get returns the inquiry with the given ID.
func (s *Service) Get(id string) (Inquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return Inquiry{}, fmt.Errorf("getting %s: %w", id, ErrInquiryNotFound)
	}
	return s.items[i], nil
}

// List returns every inquiry, most recent first.
func (s *Service) List() []Inquiry {
	return s.where(func(Inquiry) bool { return true })
}

// Sent returns the inquiries userID sent.
func (s *Service) Sent(userID string) []Inquiry {
	return s.where(func(inq Inquiry) bool { return inq.SenderID == userID })
}

// Received returns the inquiries addressed to userID.
func (s *Service) Received(userID string) []Inquiry {
	return s.where(func(inq Inquiry) bool { return inq.ReceiverID == userID })
}

// Len returns the number of inquiries.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Service) where(keep func(Inquiry) bool) []Inquiry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Inquiry{}
	for _, inq := range s.items {
		if keep(inq) {
			out = append(out, inq)
		}
	}
	return out
}

func (s *Service) index(id string) int {
	for i, inq := range s.items {
		if inq.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) save(ctx context.Context, items []Inquiry) error {
	if err := storage.SetJSON(ctx, s.store, storage.KeyInquiries, items); err != nil {
		return fmt.Errorf("saving inquiries: %w", err)
	}
	return nil
}
