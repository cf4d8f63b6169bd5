package services

import (
	"fmt"

	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
)

// GroupedReservation is one reservation resolved against its trip and
// segment for boarding/passenger views.
type GroupedReservation struct {
	ReservationID  int64              `json:"reservationId"`
	TripRecordID   int64              `json:"tripRecordId"`
	BusinessTripID string             `json:"tripId"`
	Label          string             `json:"label"`
	Origin         string             `json:"origin,omitempty"`
	Destination    string             `json:"destination,omitempty"`
	DepartureDate  string             `json:"departureDate,omitempty"`
	DepartureTime  string             `json:"departureTime,omitempty"`
	Seats          int                `json:"seats"`
	PassengerCount int                `json:"passengerCount"`
	Passengers     []models.Passenger `json:"passengers"`
	ContactName    string             `json:"contactName"`
	ContactPhone   string             `json:"contactPhone"`
	Amount         float64            `json:"amount"`
	Status         string             `json:"status"`
	Checked        bool               `json:"checked"`
}

// GroupReservations resolves each reservation to its trip/segment and
// produces one group per reservation, unchecked first.
//
// No reservation is ever dropped: a missing trip or stale segment id
// still yields a group with the reservation's own fields and a
// placeholder label, because hiding it would hide real passengers and
// revenue from operational views. A reservation with no passenger rows
// stays visible with count 0 so staff can chase the missing data.
func GroupReservations(reservations []models.Reservation, tripsByID map[int64]models.Trip, routesByID map[int64]models.Route) []GroupedReservation {
	groups := make([]GroupedReservation, 0, len(reservations))

	for _, res := range reservations {
		td := res.ParsedTripDetails()

		group := GroupedReservation{
			ReservationID:  res.ID,
			TripRecordID:   td.RecordID,
			BusinessTripID: td.TripID,
			Label:          fmt.Sprintf("Viaje Relacionado #%d", td.RecordID),
			Seats:          td.Seats,
			PassengerCount: len(res.Passengers),
			Passengers:     res.Passengers,
			ContactName:    res.ContactName,
			ContactPhone:   res.ContactPhone,
			Amount:         res.Amount,
			Status:         res.Status,
			Checked:        res.IsChecked(),
		}
		if group.Passengers == nil {
			group.Passengers = []models.Passenger{}
		}

		if trip, ok := tripsByID[td.RecordID]; ok {
			if seg, _, err := models.ResolveSegment(trip, td.TripID); err == nil {
				origin, destination := seg.Origin, seg.Destination
				if seg.IsMainTrip {
					// main leg reads as the whole route
					if route, ok := routesByID[trip.RouteID]; ok {
						origin, destination = route.Origin, route.Destination
					}
				}
				group.Origin = origin
				group.Destination = destination
				group.DepartureDate = seg.DepartureDate
				group.DepartureTime = seg.DepartureTime
				group.Label = origin + " - " + destination
			}
		}

		groups = append(groups, group)
	}

	return partitionUncheckedFirst(groups)
}

// partitionUncheckedFirst is a stable partition: unchecked groups keep
// their relative order ahead of checked ones.
func partitionUncheckedFirst(groups []GroupedReservation) []GroupedReservation {
	out := make([]GroupedReservation, 0, len(groups))
	for _, g := range groups {
		if !g.Checked {
			out = append(out, g)
		}
	}
	for _, g := range groups {
		if g.Checked {
			out = append(out, g)
		}
	}
	return out
}
