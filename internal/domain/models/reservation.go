package models

import (
	"database/sql"
	"encoding/json"
	"strings"
)

// Reservation statuses.
const (
	ReservationPending        = "pending"
	ReservationConfirmed      = "confirmed"
	ReservationCanceled       = "canceled"
	ReservationCanceledRefund = "canceledAndRefund"
)

// TripDetails is the embedded JSON blob tying a reservation to one
// segment: TripID is the business segment id, RecordID the trip row.
type TripDetails struct {
	RecordID int64  `json:"recordId"`
	TripID   string `json:"tripId"`
	Seats    int    `json:"seats"`
}

// Passenger belongs to exactly one reservation; rows cascade on delete.
type Passenger struct {
	ID            int64  `json:"id,omitempty"`
	ReservationID int64  `json:"reservationId,omitempty"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
}

// Reservation is a booked set of seats on one segment.
type Reservation struct {
	ID            int64           `json:"id"`
	TripDetails   json.RawMessage `json:"tripDetails"`
	Passengers    []Passenger     `json:"passengers"`
	ContactName   string          `json:"contactName"`
	ContactPhone  string          `json:"contactPhone"`
	ContactEmail  string          `json:"contactEmail"`
	Amount        float64         `json:"amount"`
	Advance       float64         `json:"advance"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus"`
	Status        string          `json:"status"`
	Checked       bool            `json:"checked"`
	CheckCount    int             `json:"checkCount"`
	CheckedBy     sql.NullString  `json:"-"`
	CheckedAt     sql.NullTime    `json:"-"`
}

// ParsedTripDetails decodes the embedded trip reference. A zero value
// comes back for missing/garbled blobs, which downstream code treats as
// a degraded reservation rather than dropping it.
func (r Reservation) ParsedTripDetails() TripDetails {
	var td TripDetails
	if len(r.TripDetails) == 0 {
		return td
	}
	if err := json.Unmarshal(r.TripDetails, &td); err != nil {
		var encoded string
		if err2 := json.Unmarshal(r.TripDetails, &encoded); err2 == nil {
			_ = json.Unmarshal([]byte(encoded), &td)
		}
	}
	return td
}

// IsChecked derives the boarding check-in state. The data accumulated
// four redundant ways of recording the same fact; any one counts.
func (r Reservation) IsChecked() bool {
	if r.Checked || r.CheckCount > 0 {
		return true
	}
	if r.CheckedBy.Valid && strings.TrimSpace(r.CheckedBy.String) != "" {
		return true
	}
	return r.CheckedAt.Valid
}

// ValidStatusTransition enforces pending -> confirmed -> {canceled,
// canceledAndRefund}. Cancellation straight from pending is allowed.
func ValidStatusTransition(from, to string) bool {
	switch from {
	case ReservationPending:
		return to == ReservationConfirmed || to == ReservationCanceled || to == ReservationCanceledRefund
	case ReservationConfirmed:
		return to == ReservationCanceled || to == ReservationCanceledRefund
	default:
		return false
	}
}
