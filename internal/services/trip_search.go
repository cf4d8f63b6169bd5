package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/utils"
)

// SearchFilters mirrors the query shape clients already send. Zero
// values mean "no filter"; Visibility defaults to published-only unless
// IncludeAllVisibilities is set.
type SearchFilters struct {
	Origin                 string   `json:"origin"`
	Destination            string   `json:"destination"`
	Date                   string   `json:"date"`
	DateRange              []string `json:"dateRange"`
	Seats                  int      `json:"seats"`
	CompanyID              string   `json:"companyId"`
	CompanyIDs             []string `json:"companyIds"`
	DriverID               int64    `json:"driverId"`
	Visibility             string   `json:"visibility"`
	IncludeAllVisibilities bool     `json:"includeAllVisibilities"`
	OptimizedResponse      bool     `json:"optimizedResponse"`
}

// SearchLookups carries the denormalization maps, built once per call by
// the caller. Misses resolve to absent fields on the view, never errors.
type SearchLookups struct {
	RoutesByID      map[int64]models.Route
	OwnersByCompany map[string]models.User
	VehiclesByID    map[int64]models.Vehicle
	DriversByID     map[int64]models.User
}

// SearchTrips expands or collapses trips into client-facing views.
//
// Expanded mode flattens every segment that independently passes all
// filters into its own view (a rider searching "A to B" must match the
// leg they would ride, not the whole physical run). Optimized mode emits
// one representative view per trip, using the first segment, for listing
// screens where one row per departure is wanted.
//
// Trips whose trip_data fails to parse are skipped and logged; a search
// over many trips stays a total function over its input.
func SearchTrips(trips []models.Trip, lookups SearchLookups, filters SearchFilters, requestID string) []models.TripView {
	out := []models.TripView{}

	for _, trip := range trips {
		if !tripLevelMatch(trip, filters) {
			continue
		}

		segs, err := models.ParseSegments(trip)
		if err != nil {
			utils.LogEvent(requestID, "trips", "skip_malformed", fmt.Sprintf("trip_id=%d err=%v", trip.ID, err))
			continue
		}
		if len(segs) == 0 {
			continue
		}

		if filters.OptimizedResponse {
			if !anySegmentInDateRange(segs, filters.DateRange) {
				continue
			}
			view := buildView(trip, segs[0], 0, lookups)
			view.ID = strconv.FormatInt(trip.ID, 10)
			out = append(out, view)
			continue
		}

		for i, seg := range segs {
			if !segmentMatch(seg, filters) {
				continue
			}
			out = append(out, buildView(trip, seg, i, lookups))
		}
	}

	return out
}

// tripLevelMatch applies the filters that belong to the trip row itself:
// company, driver and visibility.
func tripLevelMatch(trip models.Trip, f SearchFilters) bool {
	if !f.IncludeAllVisibilities {
		want := f.Visibility
		if want == "" {
			want = models.VisibilityPublished
		}
		if trip.Visibility != want {
			return false
		}
	}

	if f.CompanyID != "" && trip.CompanyID != f.CompanyID {
		return false
	}
	if len(f.CompanyIDs) > 0 {
		found := false
		for _, id := range f.CompanyIDs {
			if trip.CompanyID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.DriverID != 0 && trip.DriverID != f.DriverID {
		return false
	}

	return true
}

// segmentMatch applies the per-segment filters used by expanded mode.
// Every supplied filter must hold on the segment alone.
func segmentMatch(seg models.Segment, f SearchFilters) bool {
	if !utils.ContainsFold(seg.Origin, f.Origin) {
		return false
	}
	if !utils.ContainsFold(seg.Destination, f.Destination) {
		return false
	}
	if strings.TrimSpace(f.Date) != "" && !utils.SameDay(seg.DepartureDate, f.Date) {
		return false
	}
	if len(f.DateRange) > 0 && !dayInRange(seg.DepartureDate, f.DateRange) {
		return false
	}
	if f.Seats > 0 && seg.AvailableSeats < f.Seats {
		return false
	}
	return true
}

// anySegmentInDateRange keeps a trip in optimized listings when any of
// its legs falls inside the requested window.
func anySegmentInDateRange(segs []models.Segment, dateRange []string) bool {
	if len(dateRange) == 0 {
		return true
	}
	for _, seg := range segs {
		if dayInRange(seg.DepartureDate, dateRange) {
			return true
		}
	}
	return false
}

func dayInRange(date string, dateRange []string) bool {
	day := utils.DayOf(date)
	if len(dateRange) == 1 {
		return day == utils.DayOf(dateRange[0])
	}
	start := utils.DayOf(dateRange[0])
	end := utils.DayOf(dateRange[len(dateRange)-1])
	if start > end {
		start, end = end, start
	}
	return day >= start && day <= end
}

func buildView(trip models.Trip, seg models.Segment, index int, lookups SearchLookups) models.TripView {
	view := models.TripView{
		ID:             models.ComposeBusinessID(trip.ID, index),
		RecordID:       trip.ID,
		SegmentIndex:   index,
		Origin:         seg.Origin,
		Destination:    seg.Destination,
		DepartureDate:  seg.DepartureDate,
		DepartureTime:  seg.DepartureTime,
		ArrivalTime:    seg.ArrivalTime,
		Price:          seg.Price,
		AvailableSeats: seg.AvailableSeats,
		IsMainTrip:     seg.IsMainTrip,
		Visibility:     trip.Visibility,
		Capacity:       trip.Capacity,
		RouteID:        trip.RouteID,
		CompanyID:      trip.CompanyID,
		VehicleID:      trip.VehicleID,
		DriverID:       trip.DriverID,
	}

	if route, ok := lookups.RoutesByID[trip.RouteID]; ok {
		view.RouteOrigin = route.Origin
		view.RouteDestination = route.Destination
		view.RouteStops = route.Stops
	}
	if owner, ok := lookups.OwnersByCompany[trip.CompanyID]; ok {
		view.CompanyName = owner.CompanyName
		view.CompanyLogo = owner.CompanyLogo
	}
	if vehicle, ok := lookups.VehiclesByID[trip.VehicleID]; ok {
		view.VehicleSummary = vehicle.Summary()
	}
	if driver, ok := lookups.DriversByID[trip.DriverID]; ok {
		view.DriverName = driver.Name
	}

	return view
}
