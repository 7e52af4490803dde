package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentivo/internal/app"
	"github.com/evcraddock/rentivo/internal/inquiry"
)

func newInquireCmd() *cobra.Command {
	var req inquiry.Request

	cmd := &cobra.Command{
		Use:   "inquire <property-id>",
		Short: "Send an inquiry to a listing's landlord",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App, out io.Writer) error {
				if _, err := a.Select(args[0]); err != nil {
					return err
				}
				inq, err := a.SubmitInquiry(cmd.Context(), req)
				if err != nil {
					return err
				}
				if isJSON() {
					return printJSON(out, inq)
				}
				fmt.Fprintln(out, "Inquiry sent.")
				printInquiry(out, inq)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&req.Message, "message", "m", "", "message to the landlord (required)")
	cmd.Flags().StringVar(&req.MoveInDate, "move-in", "", "move-in date, YYYY-MM-DD")
	cmd.Flags().IntVar(&req.Occupants, "occupants", 0, "number of people moving in")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func newInquiriesCmd() *cobra.Command {
	var box string

	cmd := &cobra.Command{
		Use:   "inquiries",
		Short: "List inquiries",
		Long:  "List inquiries. --box sent and --box received need a signed-in user.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App, out io.Writer) error {
				var (
					items []inquiry.Inquiry
					err   error
				)
				switch box {
				case "all":
					items = a.Inquiries()
				case "sent":
					items, err = a.Outbox()
				case "received":
					items, err = a.Inbox()
				default:
					return fmt.Errorf("invalid box %q: must be all, sent or received", box)
				}
				if err != nil {
					return err
				}

				if isJSON() {
					return printJSON(out, items)
				}
				return printInquiryTable(out, items)
			})
		},
	}

	cmd.Flags().StringVar(&box, "box", "all", "which inquiries to list (all|sent|received)")

	return cmd
}

func newDecideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decide <inquiry-id> <accepted|rejected>",
		Short: "Accept or reject an inquiry you received",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, ok := inquiry.ParseStatus(args[1])
			if !ok || status == inquiry.Pending {
				return fmt.Errorf("invalid decision %q: must be accepted or rejected", args[1])
			}
			return withApp(cmd, func(a *app.App, out io.Writer) error {
				inq, err := a.DecideInquiry(cmd.Context(), args[0], status)
				if err != nil {
					return err
				}
				if isJSON() {
					return printJSON(out, inq)
				}
				fmt.Fprintf(out, "Inquiry %s %s.\n", inq.ID, strings.ToLower(inq.Status.Label()))
				return nil
			})
		},
	}
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the landlord dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App, out io.Writer) error {
				d, err := a.Dashboard()
				if err != nil {
					return err
				}
				if isJSON() {
					return printJSON(out, d)
				}
				return printDashboard(out, d)
			})
		},
	}
}
