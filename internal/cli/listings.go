package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentivo/internal/app"
	"github.com/evcraddock/rentivo/internal/property"
)

func newListCmd() *cobra.Command {
	var c property.Criteria

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rental properties",
		Long:  "List listings, optionally filtered by a search query, state and district.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App, out io.Writer) error {
				return runList(a, out, c)
			})
		},
	}

	cmd.Flags().StringVarP(&c.Query, "query", "q", "", "match title, city or area (case-insensitive)")
	cmd.Flags().StringVar(&c.State, "state", "", "only listings in this state")
	cmd.Flags().StringVar(&c.District, "district", "", "only listings in this district")

	return cmd
}

func runList(a *app.App, out io.Writer, c property.Criteria) error {
	// Mirror the filter bar: picking a state resets the district.
	a.Dispatch(property.SetQuery{Query: c.Query})
	a.Dispatch(property.SelectState{State: c.State})
	a.Dispatch(property.SelectDistrict{District: c.District})

	props := a.Visible()
	if isJSON() {
		return printJSON(out, props)
	}
	return printPropertyTable(out, props)
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show property details",
		Long:  "Show full details for a listing, including its reviews.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App, out io.Writer) error {
				p, err := a.Property(args[0])
				if err != nil {
					return err
				}
				if isJSON() {
					return printJSON(out, p)
				}

				printPropertySummary(out, p)
				fmt.Fprintln(out)
				fmt.Fprintf(out, "Reviews (%d):\n", len(p.Reviews))
				printReviews(out, p.Reviews)
				return nil
			})
		},
	}
}

func newLocationsCmd() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List states, districts and facilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App, out io.Writer) error {
				loc := a.Locations()
				if isJSON() {
					return printJSON(out, loc)
				}

				if state != "" {
					if !property.IsKnownState(state) {
						return fmt.Errorf("unknown state: %s", state)
					}
					for _, d := range loc.Districts[state] {
						fmt.Fprintf(out, "%s\n", d)
						if areas := loc.Areas[d]; len(areas) > 0 {
							fmt.Fprintf(out, "  %s\n", strings.Join(areas, ", "))
						}
					}
					return nil
				}

				for _, s := range loc.States {
					fmt.Fprintf(out, "%s: %s\n", s, strings.Join(loc.Districts[s], ", "))
				}
				fmt.Fprintf(out, "\nFacilities: %s\n", strings.Join(loc.Facilities, ", "))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "show districts and areas of one state")

	return cmd
}

// createFlags are the listing wizard fields, grouped by step.
type createFlags struct {
	title, state, district, city   string
	area, address, landmark, house string
	furnishing, tenants, food      string
	description                    string
	rent, deposit                  int64
	facilities, photos             []string
	suggest                        bool
}

func newCreateCmd() *cobra.Command {
	var f createFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a listing (landlords only)",
		Long: "Walk a new listing through the four wizard steps and publish it. " +
			"Listings live for the lifetime of the process, so this is mostly useful for checking a draft.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App, out io.Writer) error {
				return runCreate(cmd, a, out, f)
			})
		},
	}

	cmd.Flags().StringVar(&f.title, "title", "", "listing title")
	cmd.Flags().Int64Var(&f.rent, "rent", 0, "monthly rent in rupees")
	cmd.Flags().Int64Var(&f.deposit, "deposit", 0, "security deposit in rupees")
	cmd.Flags().StringVar(&f.state, "state", "", "state")
	cmd.Flags().StringVar(&f.district, "district", "", "district")
	cmd.Flags().StringVar(&f.city, "city", "", "city")
	cmd.Flags().StringVar(&f.area, "area", "", "area or locality")
	cmd.Flags().StringVar(&f.address, "address", "", "street address")
	cmd.Flags().StringVar(&f.landmark, "landmark", "", "nearby landmark")
	cmd.Flags().StringVar(&f.house, "house-number", "", "house or flat number")
	cmd.Flags().StringVar(&f.furnishing, "furnishing", string(property.Unfurnished), "Furnished|Semi-furnished|Unfurnished")
	cmd.Flags().StringVar(&f.tenants, "tenants", string(property.TenantBoth), "Bachelor|Family|Both")
	cmd.Flags().StringVar(&f.food, "food", string(property.FoodNonVeg), "Veg Only|Veg/Non-Veg")
	cmd.Flags().StringSliceVar(&f.facilities, "facility", nil, "facility (repeatable)")
	cmd.Flags().StringVar(&f.description, "description", "", "listing description")
	cmd.Flags().BoolVar(&f.suggest, "suggest", false, "ask the AI helper to write the description")
	cmd.Flags().StringSliceVar(&f.photos, "photo", nil, "photo URL (repeatable)")

	return cmd
}

func runCreate(cmd *cobra.Command, a *app.App, out io.Writer, f createFlags) error {
	switch u := a.CurrentUser(); {
	case u == nil:
		return app.ErrNoActiveSession
	case !u.IsLandlord():
		return app.ErrNotLandlord
	}

	w := property.NewWizard()
	w.Draft.Title = f.title
	w.Draft.Rent = f.rent
	w.Draft.Deposit = f.deposit
	w.SetState(f.state)
	w.SetDistrict(f.district)
	w.SetCity(f.city)
	w.Draft.Area = f.area
	w.Draft.Address = f.address
	w.Draft.Landmark = f.landmark
	w.Draft.HouseNumber = f.house
	w.Draft.Furnishing = property.Furnishing(f.furnishing)
	w.Draft.TenantType = property.TenantPreference(f.tenants)
	w.Draft.FoodPreference = property.FoodPreference(f.food)
	for _, fac := range f.facilities {
		if !w.ToggleFacility(fac) {
			// Listed twice: toggle it back on.
			w.ToggleFacility(fac)
		}
	}
	w.Draft.Description = f.description
	w.Draft.Photos = append(w.Draft.Photos, f.photos...)

	if f.suggest {
		if err := w.SuggestDescription(cmd.Context(), a.DescribeDraft); err != nil {
			return err
		}
	}

	for {
		step := w.Step()
		if err := w.Next(); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
		if step == property.LastStep {
			break
		}
	}

	p, err := a.CreateListing(cmd.Context(), w.Draft)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(out, p)
	}
	fmt.Fprintf(out, "Listing %s published.\n\n", p.ID)
	printPropertySummary(out, p)
	return nil
}
