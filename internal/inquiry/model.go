// Package inquiry provides the rental inquiry model and the inquiry store
// persisted to local storage.
package inquiry

import "strings"

// Status is where an inquiry stands with the landlord.
type Status string

const (
	Pending  Status = "PENDING"
	Accepted Status = "ACCEPTED"
	Rejected Status = "REJECTED"
)

// ValidStatuses is the set of allowed statuses.
var ValidStatuses = []Status{Pending, Accepted, Rejected}

// IsValid checks if a status is recognized.
func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label returns a human-readable label for the status.
func (s Status) Label() string {
	switch s {
	case Pending:
		return "Pending"
	case Accepted:
		return "Accepted"
	case Rejected:
		return "Rejected"
	default:
		return string(s)
	}
}

// ParseStatus accepts a status in any letter case.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.IsValid()
}

// Inquiry is a renter's message about a listing, addressed to its
// landlord. The property and sender fields are snapshots taken at submit
// time. Timestamps are unix milliseconds.
type Inquiry struct {
	ID            string `json:"id"`
	PropertyID    string `json:"propertyId"`
	PropertyTitle string `json:"propertyTitle"`
	PropertyPhoto string `json:"propertyPhoto"`
	SenderID      string `json:"senderId"`
	SenderName    string `json:"senderName"`
	SenderAvatar  string `json:"senderAvatar"`
	ReceiverID    string `json:"receiverId"`
	Message       string `json:"message"`
	MoveInDate    string `json:"moveInDate,omitempty"` // YYYY-MM-DD
	Occupants     int    `json:"occupants,omitempty"`
	Status        Status `json:"status"`
	CreatedAt     int64  `json:"createdAt"`
	UpdatedAt     int64  `json:"updatedAt,omitempty"`
}

// Request is what a renter fills in to send an inquiry.
type Request struct {
	Message    string `json:"message" validate:"required,max=2000"`
	MoveInDate string `json:"moveInDate" validate:"omitempty,datetime=2006-01-02"`
	Occupants  int    `json:"occupants" validate:"omitempty,min=1,max=20"`
}
