package property

import (
	"fmt"
	"strings"
	"time"

	"github.com/evcraddock/rentivo/internal/validation"
)

// DefaultCoordinates is the map position given to new listings.
var DefaultCoordinates = Coordinates{Lat: 28, Lng: 77}

// Draft is a listing under construction. Fields are flat so each wizard
// step can validate its own subset.
type Draft struct {
	Title   string `json:"title" validate:"required,max=120"`
	Rent    int64  `json:"rent" validate:"gt=0"`
	Deposit int64  `json:"deposit" validate:"gte=0"`

	Country     string `json:"country" validate:"omitempty,oneof=India"`
	State       string `json:"state" validate:"required"`
	District    string `json:"district" validate:"required"`
	City        string `json:"city" validate:"required"`
	Area        string `json:"area" validate:"max=120"`
	Address     string `json:"address" validate:"max=200"`
	Landmark    string `json:"landmark" validate:"max=120"`
	HouseNumber string `json:"houseNumber" validate:"max=40"`

	Furnishing     Furnishing       `json:"furnishing" validate:"required,enum"`
	TenantType     TenantPreference `json:"tenantType" validate:"required,enum"`
	FoodPreference FoodPreference   `json:"foodPreference" validate:"required,enum"`
	Facilities     []string         `json:"facilities" validate:"dive,required"`

	Description string   `json:"description" validate:"max=2000"`
	Photos      []string `json:"photos" validate:"dive,url"`
	Videos      []string `json:"videos" validate:"dive,url"`
}

// NewDraft returns a draft with the same defaults the listing form starts
// with.
func NewDraft() Draft {
	return Draft{
		Country:        DefaultCountry,
		Furnishing:     Unfurnished,
		TenantType:     TenantBoth,
		FoodPreference: FoodNonVeg,
		Facilities:     []string{},
	}
}

// Validate checks the whole draft.
func (d Draft) Validate() error {
	if err := validation.Struct(d); err != nil {
		return err
	}
	if err := d.checkLocation(); err != nil {
		return err
	}
	return d.checkFacilities()
}

func (d Draft) checkLocation() error {
	if !IsKnownState(d.State) {
		return validation.NewError("state", "state")
	}
	if !DistrictInState(d.State, d.District) {
		return validation.NewError("district", "district_in_state")
	}
	return nil
}

func (d Draft) checkFacilities() error {
	for _, f := range d.Facilities {
		if !IsKnownFacility(f) {
			return validation.NewError("facilities", "facility")
		}
	}
	return nil
}

// Build validates d and turns it into a listing owned by landlordID.
func (d Draft) Build(landlordID, id string, now time.Time) (Property, error) {
	if strings.TrimSpace(landlordID) == "" {
		return Property{}, fmt.Errorf("building listing: %w", validation.NewError("landlordId", "required"))
	}
	if strings.TrimSpace(id) == "" {
		return Property{}, fmt.Errorf("building listing: %w", validation.NewError("id", "required"))
	}
	d.Title = strings.TrimSpace(d.Title)
	if err := d.Validate(); err != nil {
		return Property{}, fmt.Errorf("building listing: %w", err)
	}

	country := d.Country
	if country == "" {
		country = DefaultCountry
	}

	p := Property{
		ID:          id,
		LandlordID:  landlordID,
		Title:       d.Title,
		Description: strings.TrimSpace(d.Description),
		Photos:      d.Photos,
		Videos:      d.Videos,
		Rent:        d.Rent,
		Deposit:     d.Deposit,
		Location: Location{
			Country:     country,
			State:       d.State,
			District:    d.District,
			City:        d.City,
			Area:        d.Area,
			Address:     d.Address,
			Landmark:    d.Landmark,
			HouseNumber: d.HouseNumber,
			Coordinates: DefaultCoordinates,
		},
		Furnishing:      d.Furnishing,
		TenantType:      d.TenantType,
		FoodPreference:  d.FoodPreference,
		Facilities:      d.Facilities,
		CreatedAt:       now.UnixMilli(),
		InterestedCount: 0,
	}
	return p.clone(), nil
}
