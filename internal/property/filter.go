package property

import "strings"

// Criteria narrows the listing store. Empty fields match everything.
type Criteria struct {
	Query    string `json:"query"`
	State    string `json:"state"`
	District string `json:"district"`
}

// IsZero reports whether no criteria are set.
func (c Criteria) IsZero() bool {
	return c.Query == "" && c.State == "" && c.District == ""
}

// Matches reports whether p satisfies every criterion. The query is a
// case-insensitive substring of the title, city or area.
func (c Criteria) Matches(p Property) bool {
	if c.Query != "" {
		q := strings.ToLower(c.Query)
		if !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Location.City), q) &&
			!strings.Contains(strings.ToLower(p.Location.Area), q) {
			return false
		}
	}
	if c.State != "" && p.Location.State != c.State {
		return false
	}
	if c.District != "" && p.Location.District != c.District {
		return false
	}
	return true
}

// Filter returns the listings matching c, in source order. It never
// modifies listings and returns an empty slice when nothing matches.
func Filter(listings []Property, c Criteria) []Property {
	out := make([]Property, 0, len(listings))
	for _, p := range listings {
		if c.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// FilterState is the filter bar: a free-text query plus the cascading
// state and district pickers.
type FilterState struct {
	Criteria
}

// FilterAction is an update to a FilterState applied with Reduce.
type FilterAction interface {
	apply(FilterState) FilterState
}

// SetQuery replaces the free-text query.
type SetQuery struct {
	Query string
}

// SelectState picks a state. The district always resets with it.
type SelectState struct {
	State string
}

// SelectDistrict picks a district within the current state.
type SelectDistrict struct {
	District string
}

// ResetFilters clears every criterion.
type ResetFilters struct{}

func (a SetQuery) apply(s FilterState) FilterState {
	s.Query = a.Query
	return s
}

func (a SelectState) apply(s FilterState) FilterState {
	s.State = a.State
	s.District = ""
	return s
}

func (a SelectDistrict) apply(s FilterState) FilterState {
	s.District = a.District
	return s
}

func (ResetFilters) apply(FilterState) FilterState {
	return FilterState{}
}

// Reduce returns the state that results from applying a to s. A nil action
// leaves s unchanged.
func Reduce(s FilterState, a FilterAction) FilterState {
	if a == nil {
		return s
	}
	return a.apply(s)
}
