package services

import (
	"fmt"

	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/repositories"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/utils"
)

// AvailabilityService propagates seat deltas when reservations are
// created or canceled. Negative delta reserves seats, positive releases
// them.
type AvailabilityService struct {
	Trips     repositories.TripRepository
	RequestID string
}

// Adjust resolves the trip and applies the delta in whichever
// representation the row uses.
//
// Legacy rows (one row per segment, linked by parent_trip_id) get the
// delta on the parent row and every sibling in a single atomic UPDATE.
// Embedded-array rows get the delta only on the segment the reservation
// referenced, since each segment has independent inventory.
//
// A trip that cannot be resolved is a logged no-op: a missing trip must
// never block a reservation transition that already succeeded.
func (s AvailabilityService) Adjust(tripID int64, businessID string, delta int) error {
	trip, err := s.Trips.GetByID(tripID)
	if err != nil {
		if domain.IsNotFound(err) {
			utils.LogEvent(s.RequestID, "availability", "skip_missing_trip",
				fmt.Sprintf("trip_id=%d delta=%d", tripID, delta))
			return nil
		}
		return err
	}

	if trip.IsLegacyRow() {
		parentID := trip.ID
		if trip.ParentTripID.Valid {
			parentID = trip.ParentTripID.Int64
		}
		rows, err := s.Trips.AdjustLegacySeats(parentID, delta)
		if err != nil {
			return err
		}
		utils.LogEvent(s.RequestID, "availability", "adjust_legacy",
			fmt.Sprintf("parent_id=%d delta=%d rows=%d", parentID, delta, rows))
		return nil
	}

	_, index, err := models.SplitBusinessID(businessID)
	if err != nil {
		return err
	}
	if err := s.Trips.AdjustSegmentSeats(trip.ID, index, delta); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "availability", "adjust_segment",
		fmt.Sprintf("trip_id=%d segment=%d delta=%d", trip.ID, index, delta))
	return nil
}
