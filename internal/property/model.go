// Package property provides the listing domain model, the in-memory listing
// store, the filter engine and the listing wizard.
package property

import "errors"

var (
	// ErrNotFound is returned when no listing has the requested ID.
	ErrNotFound = errors.New("property not found")
	// ErrDuplicateID is returned when a listing ID is already in the store.
	ErrDuplicateID = errors.New("property id already exists")
)

// Furnishing describes how a listing is furnished.
type Furnishing string

const (
	Furnished     Furnishing = "Furnished"
	SemiFurnished Furnishing = "Semi-furnished"
	Unfurnished   Furnishing = "Unfurnished"
)

// IsValid checks if a furnishing value is recognized.
func (f Furnishing) IsValid() bool {
	switch f {
	case Furnished, SemiFurnished, Unfurnished:
		return true
	}
	return false
}

// TenantPreference describes who a landlord wants to rent to.
type TenantPreference string

const (
	TenantBachelor TenantPreference = "Bachelor"
	TenantFamily   TenantPreference = "Family"
	TenantBoth     TenantPreference = "Both"
)

// IsValid checks if a tenant preference is recognized.
func (t TenantPreference) IsValid() bool {
	switch t {
	case TenantBachelor, TenantFamily, TenantBoth:
		return true
	}
	return false
}

// FoodPreference is the kitchen policy of a listing.
type FoodPreference string

const (
	FoodVeg    FoodPreference = "Veg Only"
	FoodNonVeg FoodPreference = "Veg/Non-Veg"
)

// IsValid checks if a food preference is recognized.
func (f FoodPreference) IsValid() bool {
	return f == FoodVeg || f == FoodNonVeg
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is where a listing is.
type Location struct {
	Country     string      `json:"country"`
	State       string      `json:"state"`
	District    string      `json:"district"`
	City        string      `json:"city"`
	Area        string      `json:"area"`
	Address     string      `json:"address"`
	Landmark    string      `json:"landmark"`
	HouseNumber string      `json:"houseNumber"`
	Coordinates Coordinates `json:"coordinates"`
}

// Review is a rating left on a listing or a user.
type Review struct {
	ID           string `json:"id"`
	AuthorID     string `json:"authorId"`
	AuthorName   string `json:"authorName"`
	AuthorAvatar string `json:"authorAvatar"`
	TargetID     string `json:"targetId"`
	Content      string `json:"content"`
	Rating       int    `json:"rating"`
	Timestamp    int64  `json:"timestamp"`
}

// Property is a rental listing. Timestamps are unix milliseconds.
type Property struct {
	ID              string           `json:"id"`
	LandlordID      string           `json:"landlordId"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Photos          []string         `json:"photos"`
	Videos          []string         `json:"videos"`
	Rent            int64            `json:"rent"`
	Deposit         int64            `json:"deposit"`
	Location        Location         `json:"location"`
	Furnishing      Furnishing       `json:"furnishing"`
	TenantType      TenantPreference `json:"tenantType"`
	FoodPreference  FoodPreference   `json:"foodPreference"`
	Facilities      []string         `json:"facilities"`
	CreatedAt       int64            `json:"createdAt"`
	InterestedCount int              `json:"interestedCount"`
	Reviews         []Review         `json:"reviews"`
}

// CoverPhoto returns the first photo, or "" when there is none.
func (p Property) CoverPhoto() string {
	if len(p.Photos) == 0 {
		return ""
	}
	return p.Photos[0]
}

// clone copies p so callers cannot reach the store's slices.
func (p Property) clone() Property {
	c := p
	c.Photos = append([]string(nil), p.Photos...)
	c.Videos = append([]string(nil), p.Videos...)
	c.Facilities = append([]string(nil), p.Facilities...)
	c.Reviews = append([]Review(nil), p.Reviews...)
	if c.Photos == nil {
		c.Photos = []string{}
	}
	if c.Videos == nil {
		c.Videos = []string{}
	}
	if c.Facilities == nil {
		c.Facilities = []string{}
	}
	if c.Reviews == nil {
		c.Reviews = []Review{}
	}
	return c
}
