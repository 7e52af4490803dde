package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/evcraddock/rentivo/internal/app"
	"github.com/evcraddock/rentivo/internal/inquiry"
	"github.com/evcraddock/rentivo/internal/property"
	"github.com/evcraddock/rentivo/internal/session"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPropertySummary prints a single listing in text format.
func printPropertySummary(w io.Writer, p property.Property) {
	l := p.Location
	fmt.Fprintf(w, "Property #%s\n", p.ID)
	fmt.Fprintf(w, "  Title:      %s\n", p.Title)
	fmt.Fprintf(w, "  Rent:       ₹%s/mo\n", formatRupees(p.Rent))
	fmt.Fprintf(w, "  Deposit:    ₹%s\n", formatRupees(p.Deposit))
	fmt.Fprintf(w, "  Location:   %s\n", joinNonEmpty(", ", l.HouseNumber, l.Address, l.Area, l.City, l.District, l.State))
	if l.Landmark != "" {
		fmt.Fprintf(w, "  Landmark:   %s\n", l.Landmark)
	}
	fmt.Fprintf(w, "  Furnishing: %s\n", p.Furnishing)
	fmt.Fprintf(w, "  Tenants:    %s\n", p.TenantType)
	fmt.Fprintf(w, "  Food:       %s\n", p.FoodPreference)
	if len(p.Facilities) > 0 {
		fmt.Fprintf(w, "  Facilities: %s\n", strings.Join(p.Facilities, ", "))
	}
	fmt.Fprintf(w, "  Interested: %d\n", p.InterestedCount)
	if p.Description != "" {
		fmt.Fprintf(w, "\n  %s\n", p.Description)
	}
}

// printReviews prints listing reviews in text format.
func printReviews(w io.Writer, reviews []property.Review) {
	if len(reviews) == 0 {
		fmt.Fprintln(w, "No reviews.")
		return
	}
	for _, r := range reviews {
		fmt.Fprintf(w, "[%s] %s %s\n  %s\n\n",
			formatMillis(r.Timestamp), r.AuthorName, formatRating(r.Rating), r.Content)
	}
}

// printPropertyTable prints a list of listings as a formatted table.
func printPropertyTable(out io.Writer, props []property.Property) error {
	if len(props) == 0 {
		fmt.Fprintln(out, "No properties found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tCITY\tRENT\tFURNISHING\tTENANTS\tLEADS"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t----\t----\t----------\t-------\t-----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range props {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t₹%s\t%s\t%s\t%d\n",
			p.ID, truncate(p.Title, 36), p.Location.City, formatRupees(p.Rent),
			p.Furnishing, p.TenantType, p.InterestedCount); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d properties\n", len(props))
	return nil
}

// printInquiryTable prints inquiries as a formatted table.
func printInquiryTable(out io.Writer, items []inquiry.Inquiry) error {
	if len(items) == 0 {
		fmt.Fprintln(out, "No inquiries.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tPROPERTY\tFROM\tSTATUS\tSENT\tMESSAGE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t--------\t----\t------\t----\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, inq := range items {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			inq.ID, truncate(inq.PropertyTitle, 30), inq.SenderName, inq.Status.Label(),
			formatMillis(inq.CreatedAt), truncate(inq.Message, 40)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

// printInquiry prints a single inquiry in text format.
func printInquiry(w io.Writer, inq inquiry.Inquiry) {
	fmt.Fprintf(w, "Inquiry %s (%s)\n", inq.ID, inq.Status.Label())
	fmt.Fprintf(w, "  Property: %s (#%s)\n", inq.PropertyTitle, inq.PropertyID)
	fmt.Fprintf(w, "  From:     %s\n", inq.SenderName)
	if inq.MoveInDate != "" {
		fmt.Fprintf(w, "  Move in:  %s\n", inq.MoveInDate)
	}
	if inq.Occupants > 0 {
		fmt.Fprintf(w, "  People:   %d\n", inq.Occupants)
	}
	fmt.Fprintf(w, "  Message:  %s\n", inq.Message)
}

// printUser prints a profile in text format.
func printUser(w io.Writer, u session.User) {
	fmt.Fprintf(w, "%s (%s)\n", u.Name, u.Role.Label())
	fmt.Fprintf(w, "  ID:       %s\n", u.ID)
	fmt.Fprintf(w, "  Email:    %s\n", u.Email)
	fmt.Fprintf(w, "  Phone:    %s\n", u.Phone)
	if u.BusinessName != "" {
		fmt.Fprintf(w, "  Business: %s\n", u.BusinessName)
	}
	if u.MoveInDate != "" {
		fmt.Fprintf(w, "  Move in:  %s\n", u.MoveInDate)
	}
	if u.Duration != "" {
		fmt.Fprintf(w, "  Duration: %s\n", u.Duration)
	}
	fmt.Fprintf(w, "  Rating:   %.1f (%d reviews)\n", u.Rating, u.ReviewsCount)
	if u.Bio != "" {
		fmt.Fprintf(w, "\n  %s\n", u.Bio)
	}
}

// printDashboard prints the landlord view in text format.
func printDashboard(w io.Writer, d app.Dashboard) error {
	fmt.Fprintf(w, "Dashboard for %s\n", d.Landlord.Name)
	fmt.Fprintf(w, "  Listings:        %d\n", len(d.Listings))
	fmt.Fprintf(w, "  Total interest:  %d\n", d.TotalInterested)
	fmt.Fprintf(w, "  Pending replies: %d\n\n", d.PendingInbox)
	return printPropertyTable(w, d.Listings)
}

// formatRupees groups digits the Indian way: 1,50,000.
func formatRupees(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%d", amount)

	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		parts = append([]string{head}, parts...)
		s = strings.Join(parts, ",") + "," + tail
	}

	if neg {
		return "-" + s
	}
	return s
}

// formatRating returns a star representation of a rating (1-5).
func formatRating(rating int) string {
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// formatMillis renders a unix millisecond timestamp as a local date.
func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
