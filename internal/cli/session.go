package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentivo/internal/app"
	"github.com/evcraddock/rentivo/internal/session"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <landlord|renter>",
		Short: "Sign in as the demo landlord or renter",
		Long:  "Sign in with a role. There are no passwords: each role maps to one demo account, and the session is kept in local storage.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := session.ParseRole(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app.App, out io.Writer) error {
				u, err := a.Login(cmd.Context(), role)
				if err != nil {
					return err
				}
				if isJSON() {
					return printJSON(out, u)
				}
				fmt.Fprintf(out, "Logged in as %s (%s).\n", u.Name, u.Role.Label())
				return nil
			})
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App, out io.Writer) error {
				if a.CurrentUser() == nil {
					fmt.Fprintln(out, "Not logged in.")
					return nil
				}
				if err := a.Logout(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out, "Logged out.")
				return nil
			})
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App, out io.Writer) error {
				u := a.CurrentUser()
				if isJSON() {
					return printJSON(out, map[string]interface{}{"state": a.SessionState(), "user": u})
				}
				if u == nil {
					fmt.Fprintln(out, "Not logged in.")
					return nil
				}
				printUser(out, *u)
				return nil
			})
		},
	}
}

func newProfileCmd() *cobra.Command {
	var name, phone, bio, business, moveIn, duration string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the signed-in user's profile",
		Long:  "Change profile fields. Only the flags given are updated.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p session.Patch
			set := func(flag string, v *string, dst **string) {
				if cmd.Flags().Changed(flag) {
					*dst = v
				}
			}
			set("name", &name, &p.Name)
			set("phone", &phone, &p.Phone)
			set("bio", &bio, &p.Bio)
			set("business-name", &business, &p.BusinessName)
			set("move-in", &moveIn, &p.MoveInDate)
			set("duration", &duration, &p.Duration)

			return withApp(cmd, func(a *app.App, out io.Writer) error {
				u, err := a.UpdateProfile(cmd.Context(), p)
				if err != nil {
					return err
				}
				if isJSON() {
					return printJSON(out, u)
				}
				printUser(out, u)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&bio, "bio", "", "short bio")
	cmd.Flags().StringVar(&business, "business-name", "", "business name (landlords)")
	cmd.Flags().StringVar(&moveIn, "move-in", "", "preferred move-in date, YYYY-MM-DD (renters)")
	cmd.Flags().StringVar(&duration, "duration", "", "intended stay, e.g. \"11 months\" (renters)")

	return cmd
}

func newAvatarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avatar <image>",
		Short: "Set the profile picture from an image file",
		Long:  "Crop a JPEG, PNG or GIF to a centered square, scale it to 400x400 and save it as the profile picture.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening image: %w", err)
			}
			defer func() { _ = f.Close() }()

			return withApp(cmd, func(a *app.App, out io.Writer) error {
				u, err := a.SetAvatar(cmd.Context(), f)
				if err != nil {
					return err
				}
				if isJSON() {
					return printJSON(out, u)
				}
				fmt.Fprintf(out, "Avatar updated (%d bytes).\n", len(u.Avatar))
				return nil
			})
		},
	}
}
