package models

import (
	"database/sql"
	"encoding/json"
)

// Trip visibility states.
const (
	VisibilityDraft     = "draft"
	VisibilityPublished = "published"
	VisibilityCancelled = "cancelled"
)

// Segment is one sellable leg inside a trip's trip_data array. The
// segment order matches physical travel order; exactly one segment
// (conventionally the first) carries IsMainTrip.
type Segment struct {
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	DepartureDate  string  `json:"departureDate"`
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	Price          float64 `json:"price"`
	AvailableSeats int     `json:"availableSeats"`
	TripID         string  `json:"tripId"`
	IsMainTrip     bool    `json:"isMainTrip"`
}

// Trip is a physical vehicle departure. TripData holds the segment
// array as persisted; legacy one-row-per-segment trips instead carry
// ParentTripID and a flat AvailableSeats column.
type Trip struct {
	ID           int64           `json:"id"`
	RouteID      int64           `json:"routeId"`
	CompanyID    string          `json:"companyId"`
	VehicleID    int64           `json:"vehicleId"`
	DriverID     int64           `json:"driverId"`
	Visibility   string          `json:"visibility"`
	Capacity     int             `json:"capacity"`
	TripData     json.RawMessage `json:"tripData"`
	ParentTripID sql.NullInt64   `json:"-"`
	SeatColumn   sql.NullInt64   `json:"-"`
}

// IsLegacyRow reports whether this trip uses the old one-row-per-segment
// representation instead of an embedded segment array.
func (t Trip) IsLegacyRow() bool {
	return len(t.TripData) == 0 || string(t.TripData) == "null"
}

// TripView is the denormalized record handed to listing/search clients.
// ID is the business id: "<recordId>_<segmentIndex>" for expanded search
// results, the plain record id for optimized listings.
type TripView struct {
	ID             string  `json:"id"`
	RecordID       int64   `json:"recordId"`
	SegmentIndex   int     `json:"segmentIndex"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	DepartureDate  string  `json:"departureDate"`
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	Price          float64 `json:"price"`
	AvailableSeats int     `json:"availableSeats"`
	IsMainTrip     bool    `json:"isMainTrip"`
	Visibility     string  `json:"visibility"`
	Capacity       int     `json:"capacity"`

	RouteID          int64    `json:"routeId"`
	RouteOrigin      string   `json:"routeOrigin,omitempty"`
	RouteDestination string   `json:"routeDestination,omitempty"`
	RouteStops       []string `json:"routeStops,omitempty"`

	CompanyID   string `json:"companyId"`
	CompanyName string `json:"companyName,omitempty"`
	CompanyLogo string `json:"companyLogo,omitempty"`

	VehicleID      int64  `json:"vehicleId,omitempty"`
	VehicleSummary string `json:"vehicle,omitempty"`
	DriverID       int64  `json:"driverId,omitempty"`
	DriverName     string `json:"driver,omitempty"`
}
