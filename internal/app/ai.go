package app

import (
	"context"
	"strings"

	"github.com/evcraddock/rentivo/internal/genai"
	"github.com/evcraddock/rentivo/internal/property"
)

// Assistant returns the AI helper.
func (a *App) Assistant() *genai.Assistant {
	return a.assistant
}

// DescribeDraft writes listing copy for a draft. It satisfies
// property.DescribeFunc.
func (a *App) DescribeDraft(ctx context.Context, d property.Draft) string {
	return a.assistant.GenerateDescription(ctx, detailsOf(d.Title, d.Rent, d.City, d.State, d.Facilities, string(d.Furnishing), string(d.TenantType)))
}

// DescribeProperty writes fresh copy for an existing listing.
func (a *App) DescribeProperty(ctx context.Context, id string) (string, error) {
	p, err := a.listings.Get(id)
	if err != nil {
		return "", err
	}
	l := p.Location
	return a.assistant.GenerateDescription(ctx, detailsOf(p.Title, p.Rent, l.City, l.State, p.Facilities, string(p.Furnishing), string(p.TenantType))), nil
}

func detailsOf(title string, rent int64, city, state string, facilities []string, furnishing, tenant string) genai.Details {
	var loc []string
	for _, s := range []string{city, state} {
		if s != "" {
			loc = append(loc, s)
		}
	}
	return genai.Details{
		Title:      title,
		Rent:       rent,
		Location:   strings.Join(loc, ", "),
		Facilities: facilities,
		Furnishing: furnishing,
		TenantType: tenant,
	}
}

// Locations is the reference data behind the location pickers.
type Locations struct {
	Countries  []string            `json:"countries"`
	States     []string            `json:"states"`
	Districts  map[string][]string `json:"districts"`
	Areas      map[string][]string `json:"areas"`
	Facilities []string            `json:"facilities"`
}

// Locations returns the picker reference data.
func (a *App) Locations() Locations {
	loc := Locations{
		Countries:  append([]string{}, property.Countries...),
		States:     append([]string{}, property.States...),
		Districts:  map[string][]string{},
		Areas:      map[string][]string{},
		Facilities: append([]string{}, property.Facilities...),
	}
	for _, s := range property.States {
		ds := property.DistrictsFor(s)
		loc.Districts[s] = ds
		for _, d := range ds {
			if areas := property.AreasFor(d); len(areas) > 0 {
				loc.Areas[d] = areas
			}
		}
	}
	return loc
}
