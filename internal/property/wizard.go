package property

import (
	"context"
	"errors"

	"github.com/evcraddock/rentivo/internal/validation"
)

// Wizard steps.
const (
	StepBasics = iota + 1
	StepLocation
	StepPreferences
	StepMedia
)

// LastStep is the final wizard step.
const LastStep = StepMedia

// ErrIncompleteDraft is returned when a description is requested before the
// title and city are known.
var ErrIncompleteDraft = errors.New("title and city are required for a description")

// stepFields are the Draft fields checked when leaving each step.
var stepFields = map[int][]string{
	StepBasics:      {"Title", "Rent", "Deposit"},
	StepLocation:    {"Country", "State", "District", "City", "Area", "Address", "Landmark", "HouseNumber"},
	StepPreferences: {"Furnishing", "TenantType", "FoodPreference", "Facilities"},
	StepMedia:       {"Description", "Photos", "Videos"},
}

// DescribeFunc writes marketing copy for a draft.
type DescribeFunc func(ctx context.Context, d Draft) string

// Wizard walks a landlord through building a Draft in four steps.
type Wizard struct {
	Draft Draft
	step  int
}

// NewWizard starts a wizard on the first step with a default draft.
func NewWizard() *Wizard {
	return &Wizard{Draft: NewDraft(), step: StepBasics}
}

// Step returns the current step, 1 through LastStep.
func (w *Wizard) Step() int {
	return w.step
}

// Next validates the current step and moves forward. On the last step it
// only validates.
func (w *Wizard) Next() error {
	if err := w.checkStep(w.step); err != nil {
		return err
	}
	if w.step < LastStep {
		w.step++
	}
	return nil
}

// Prev moves back one step, stopping at the first.
func (w *Wizard) Prev() {
	if w.step > StepBasics {
		w.step--
	}
}

func (w *Wizard) checkStep(step int) error {
	if err := validation.Partial(w.Draft, stepFields[step]...); err != nil {
		return err
	}
	switch step {
	case StepLocation:
		return w.Draft.checkLocation()
	case StepPreferences:
		return w.Draft.checkFacilities()
	}
	return nil
}

// SetState picks a state and clears the district and city below it.
func (w *Wizard) SetState(state string) {
	w.Draft.State = state
	w.Draft.District = ""
	w.Draft.City = ""
}

// SetDistrict picks a district and clears the city below it.
func (w *Wizard) SetDistrict(district string) {
	w.Draft.District = district
	w.Draft.City = ""
}

// SetCity picks the city or area name.
func (w *Wizard) SetCity(city string) {
	w.Draft.City = city
}

// ToggleFacility adds f if missing and removes it otherwise. It reports
// whether f is selected afterwards.
func (w *Wizard) ToggleFacility(f string) bool {
	for i, have := range w.Draft.Facilities {
		if have == f {
			w.Draft.Facilities = append(w.Draft.Facilities[:i:i], w.Draft.Facilities[i+1:]...)
			return false
		}
	}
	w.Draft.Facilities = append(w.Draft.Facilities, f)
	return true
}

// SuggestDescription replaces the draft description with generated copy.
func (w *Wizard) SuggestDescription(ctx context.Context, describe DescribeFunc) error {
	if w.Draft.Title == "" || w.Draft.City == "" {
		return ErrIncompleteDraft
	}
	w.Draft.Description = describe(ctx, w.Draft)
	return nil
}
