// Package app holds the application state shared by the CLI and the HTTP
// API: the listing store, the session, the inquiry store, the filter bar
// and the selected listing.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evcraddock/rentivo/internal/avatar"
	"github.com/evcraddock/rentivo/internal/genai"
	"github.com/evcraddock/rentivo/internal/inquiry"
	"github.com/evcraddock/rentivo/internal/property"
	"github.com/evcraddock/rentivo/internal/session"
	"github.com/evcraddock/rentivo/internal/storage"
)

var (
	// ErrNotLandlord is returned when a renter or anonymous user tries a
	// landlord-only operation.
	ErrNotLandlord = errors.New("only landlords can do this")
	// ErrNoActiveSession is returned when nobody is signed in.
	ErrNoActiveSession = session.ErrNoActiveSession
	// ErrNoSelectedProperty is returned when no listing is selected.
	ErrNoSelectedProperty = inquiry.ErrNoSelectedProperty
)

// Options configures New.
type Options struct {
	// Storage persists the session user and inquiries. Required.
	Storage storage.Store
	// Assistant answers AI requests. Nil answers every request with its
	// fallback.
	Assistant *genai.Assistant
	// Seed replaces the built-in mock listings when non-nil.
	Seed []property.Property
	// Now is the clock. Nil uses time.Now.
	Now func() time.Time
}

// App is the application state. It is safe for concurrent use.
type App struct {
	listings  *property.Store
	session   *session.Manager
	inquiries *inquiry.Service
	assistant *genai.Assistant
	now       func() time.Time

	mu       sync.Mutex
	filters  property.FilterState
	selected string
}

// New builds the application state and restores the stored session and
// inquiries. A corrupt stored value is logged, removed and ignored.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.Storage == nil {
		return nil, fmt.Errorf("storage is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	seed := opts.Seed
	if seed == nil {
		seed = property.SeedProperties(now())
	}
	listings, err := property.NewStore(seed)
	if err != nil {
		return nil, fmt.Errorf("seeding listings: %w", err)
	}
	assistant := opts.Assistant
	if assistant == nil {
		assistant = genai.NewAssistant(nil, "", "")
	}

	a := &App{
		listings:  listings,
		session:   session.NewManager(opts.Storage, now),
		inquiries: inquiry.NewService(opts.Storage, now),
		assistant: assistant,
		now:       now,
	}

	if err := a.session.Restore(ctx); err != nil {
		if !errors.Is(err, session.ErrCorruptSession) {
			return nil, err
		}
		slog.Warn("discarding stored session", "error", err)
		if err := a.session.Discard(ctx); err != nil {
			return nil, err
		}
	}
	if err := a.inquiries.Load(ctx); err != nil {
		if !errors.Is(err, inquiry.ErrCorruptInquiries) {
			return nil, err
		}
		slog.Warn("discarding stored inquiries", "error", err)
		if err := a.inquiries.Discard(ctx); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Dispatch applies a filter action and returns the new filter state.
func (a *App) Dispatch(action property.FilterAction) property.FilterState {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filters = property.Reduce(a.filters, action)
	return a.filters
}

// Filters returns the current filter state.
func (a *App) Filters() property.FilterState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filters
}

// Visible returns the listings that pass the current filters.
func (a *App) Visible() []property.Property {
	return property.Filter(a.listings.All(), a.Filters().Criteria)
}

// Search filters listings with c, ignoring the stored filter state.
func (a *App) Search(c property.Criteria) []property.Property {
	return property.Filter(a.listings.All(), c)
}

// Property returns one listing.
func (a *App) Property(id string) (property.Property, error) {
	return a.listings.Get(id)
}

// Select makes id the selected listing.
func (a *App) Select(id string) (property.Property, error) {
	p, err := a.listings.Get(id)
	if err != nil {
		return property.Property{}, err
	}
	a.mu.Lock()
	a.selected = id
	a.mu.Unlock()
	return p, nil
}

// ClearSelection deselects the current listing.
func (a *App) ClearSelection() {
	a.mu.Lock()
	a.selected = ""
	a.mu.Unlock()
}

// Selected returns the selected listing, or nil.
func (a *App) Selected() *property.Property {
	a.mu.Lock()
	id := a.selected
	a.mu.Unlock()

	if id == "" {
		return nil
	}
	p, err := a.listings.Get(id)
	if err != nil {
		return nil
	}
	return &p
}

// Login signs in as the demo user for role.
func (a *App) Login(ctx context.Context, role session.Role) (session.User, error) {
	return a.session.Login(ctx, role)
}

// Logout signs out and clears the selection.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.ClearSelection()
	return nil
}

// CurrentUser returns the signed-in user, or nil.
func (a *App) CurrentUser() *session.User {
	return a.session.Current()
}

// SessionState reports whether anyone is signed in.
func (a *App) SessionState() session.State {
	return a.session.State()
}

// UpdateProfile merges p into the signed-in user.
func (a *App) UpdateProfile(ctx context.Context, p session.Patch) (session.User, error) {
	return a.session.UpdateProfile(ctx, p)
}

// SetAvatar refines an uploaded photo and makes it the profile picture.
func (a *App) SetAvatar(ctx context.Context, r io.Reader) (session.User, error) {
	if a.session.Current() == nil {
		return session.User{}, ErrNoActiveSession
	}
	uri, err := avatar.Refine(r)
	if err != nil {
		return session.User{}, err
	}
	return a.session.UpdateProfile(ctx, session.Patch{Avatar: &uri})
}

// SubmitInquiry sends req about the selected listing from the signed-in
// user and counts the listing as one more lead.
func (a *App) SubmitInquiry(ctx context.Context, req inquiry.Request) (inquiry.Inquiry, error) {
	inq, err := a.inquiries.Submit(ctx, a.session.Current(), a.Selected(), req)
	if err != nil {
		return inquiry.Inquiry{}, err
	}
	if _, err := a.listings.MarkInterested(inq.PropertyID); err != nil {
		slog.Warn("counting lead", "property", inq.PropertyID, "error", err)
	}
	return inq, nil
}

// Inquiries returns every stored inquiry, most recent first.
func (a *App) Inquiries() []inquiry.Inquiry {
	return a.inquiries.List()
}

// Inbox returns the inquiries addressed to the signed-in user.
func (a *App) Inbox() ([]inquiry.Inquiry, error) {
	u := a.session.Current()
	if u == nil {
		return nil, ErrNoActiveSession
	}
	return a.inquiries.Received(u.ID), nil
}

// Outbox returns the inquiries the signed-in user sent.
func (a *App) Outbox() ([]inquiry.Inquiry, error) {
	u := a.session.Current()
	if u == nil {
		return nil, ErrNoActiveSession
	}
	return a.inquiries.Sent(u.ID), nil
}

// DecideInquiry accepts or rejects an inquiry addressed to the signed-in
// landlord.
func (a *App) DecideInquiry(ctx context.Context, id string, status inquiry.Status) (inquiry.Inquiry, error) {
	return a.inquiries.UpdateStatus(ctx, a.session.Current(), id, status)
}

// CreateListing builds d into a listing owned by the signed-in landlord
// and puts it at the top of the store.
func (a *App) CreateListing(ctx context.Context, d property.Draft) (property.Property, error) {
	u, err := a.landlord()
	if err != nil {
		return property.Property{}, err
	}

	p, err := d.Build(u.ID, uuid.NewString(), a.now())
	if err != nil {
		return property.Property{}, err
	}
	if err := a.listings.Create(p); err != nil {
		return property.Property{}, err
	}

	slog.InfoContext(ctx, "listing created", "id", p.ID, "landlord", u.ID, "title", p.Title)
	return p, nil
}

// Dashboard summarizes the signed-in landlord's listings and leads.
type Dashboard struct {
	Landlord        session.User        `json:"landlord"`
	Listings        []property.Property `json:"listings"`
	TotalInterested int                 `json:"totalInterested"`
	PendingInbox    int                 `json:"pendingInbox"`
}

// Dashboard returns the landlord view.
func (a *App) Dashboard() (Dashboard, error) {
	u, err := a.landlord()
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{Landlord: *u, Listings: a.listings.ByLandlord(u.ID)}
	for _, p := range d.Listings {
		d.TotalInterested += p.InterestedCount
	}
	for _, inq := range a.inquiries.Received(u.ID) {
		if inq.Status == inquiry.Pending {
			d.PendingInbox++
		}
	}
	return d, nil
}

func (a *App) landlord() (*session.User, error) {
	u := a.session.Current()
	if u == nil {
		return nil, ErrNoActiveSession
	}
	if !u.IsLandlord() {
		return nil, ErrNotLandlord
	}
	return u, nil
}
