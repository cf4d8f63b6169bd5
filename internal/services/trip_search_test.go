package services

import (
	"encoding/json"
	"testing"

	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
)

func testTrip(t *testing.T, id int64, segs []models.Segment) models.Trip {
	t.Helper()
	raw, err := models.SerializeSegments(segs)
	if err != nil {
		t.Fatalf("serialize error: %v", err)
	}
	return models.Trip{
		ID:         id,
		RouteID:    1,
		CompanyID:  "comp-1",
		VehicleID:  5,
		DriverID:   9,
		Visibility: models.VisibilityPublished,
		Capacity:   12,
		TripData:   raw,
	}
}

func twoLegTrip(t *testing.T) models.Trip {
	t.Helper()
	return testTrip(t, 42, []models.Segment{
		{Origin: "CityA", Destination: "CityB", DepartureDate: "2025-05-28", DepartureTime: "08:00", Price: 100, AvailableSeats: 10, TripID: "42_0", IsMainTrip: true},
		{Origin: "CityB", Destination: "CityC", DepartureDate: "2025-05-28", DepartureTime: "10:15", Price: 80, AvailableSeats: 10, TripID: "42_1"},
	})
}

func testLookups() SearchLookups {
	return SearchLookups{
		RoutesByID: map[int64]models.Route{
			1: {ID: 1, Origin: "CityA", Destination: "CityC", Stops: []string{"CityB"}, CompanyID: "comp-1"},
		},
		OwnersByCompany: map[string]models.User{
			"comp-1": {ID: 3, Name: "Owner", Role: "owner", CompanyID: "comp-1", CompanyName: "Transportes Sol", CompanyLogo: "logo.png"},
		},
		VehiclesByID: map[int64]models.Vehicle{
			5: {ID: 5, Brand: "Toyota", Model: "Hiace", Plates: "ABC-123", Capacity: 12},
		},
		DriversByID: map[int64]models.User{
			9: {ID: 9, Name: "Pedro", Role: "driver"},
		},
	}
}

func TestExpandedCardinality(t *testing.T) {
	views := SearchTrips([]models.Trip{twoLegTrip(t)}, testLookups(), SearchFilters{}, "")
	if len(views) != 2 {
		t.Fatalf("expected 2 views for 2 segments, got %d", len(views))
	}
	if views[0].ID != "42_0" || views[1].ID != "42_1" {
		t.Fatalf("business ids mismatch: %s %s", views[0].ID, views[1].ID)
	}
}

func TestOptimizedCardinality(t *testing.T) {
	views := SearchTrips([]models.Trip{twoLegTrip(t)}, testLookups(), SearchFilters{OptimizedResponse: true}, "")
	if len(views) != 1 {
		t.Fatalf("expected 1 view in optimized mode, got %d", len(views))
	}
	v := views[0]
	if v.ID != "42" {
		t.Fatalf("optimized id should be record id, got %s", v.ID)
	}
	if v.Price != 100 || v.Origin != "CityA" || !v.IsMainTrip {
		t.Fatalf("optimized view should use first segment, got %+v", v)
	}
}

func TestSegmentFilterConjunction(t *testing.T) {
	trip := twoLegTrip(t)
	lookups := testLookups()

	views := SearchTrips([]models.Trip{trip}, lookups, SearchFilters{
		Origin:      "cityb",
		Destination: "CityC",
		Date:        "2025-05-28",
	}, "")
	if len(views) != 1 {
		t.Fatalf("expected exactly 1 matching segment, got %d", len(views))
	}
	if views[0].ID != "42_1" || views[0].Price != 80 {
		t.Fatalf("wrong segment matched: %+v", views[0])
	}

	// each failing filter alone must exclude the segment
	cases := []SearchFilters{
		{Origin: "Nowhere"},
		{Destination: "Nowhere"},
		{Origin: "CityB", Destination: "CityC", Date: "2025-05-29"},
		{Origin: "CityB", Destination: "CityC", Seats: 11},
	}
	for i, f := range cases {
		if got := SearchTrips([]models.Trip{trip}, lookups, f, ""); len(got) != 0 {
			t.Fatalf("case %d: expected no results, got %d", i, len(got))
		}
	}
}

func TestSeatFilter(t *testing.T) {
	trip := twoLegTrip(t)
	views := SearchTrips([]models.Trip{trip}, testLookups(), SearchFilters{Seats: 10}, "")
	if len(views) != 2 {
		t.Fatalf("availableSeats >= seats should match, got %d views", len(views))
	}
}

func TestVisibilityDefaultsToPublished(t *testing.T) {
	draft := twoLegTrip(t)
	draft.ID = 43
	draft.Visibility = models.VisibilityDraft

	views := SearchTrips([]models.Trip{twoLegTrip(t), draft}, testLookups(), SearchFilters{}, "")
	for _, v := range views {
		if v.RecordID == 43 {
			t.Fatalf("draft trip leaked into default search")
		}
	}

	all := SearchTrips([]models.Trip{twoLegTrip(t), draft}, testLookups(), SearchFilters{IncludeAllVisibilities: true}, "")
	if len(all) != 4 {
		t.Fatalf("includeAllVisibilities should surface draft segments, got %d", len(all))
	}
}

func TestCompanyAndDriverFilters(t *testing.T) {
	trip := twoLegTrip(t)
	other := twoLegTrip(t)
	other.ID = 50
	other.CompanyID = "comp-2"

	views := SearchTrips([]models.Trip{trip, other}, testLookups(), SearchFilters{CompanyIDs: []string{"comp-2"}}, "")
	if len(views) != 2 || views[0].RecordID != 50 {
		t.Fatalf("companyIds membership filter failed: %+v", views)
	}

	views = SearchTrips([]models.Trip{trip, other}, testLookups(), SearchFilters{DriverID: 7}, "")
	if len(views) != 0 {
		t.Fatalf("driver filter failed, got %d views", len(views))
	}
}

func TestMalformedTripSkipped(t *testing.T) {
	bad := models.Trip{ID: 99, Visibility: models.VisibilityPublished, TripData: json.RawMessage(`{"oops":true}`)}
	views := SearchTrips([]models.Trip{bad, twoLegTrip(t)}, testLookups(), SearchFilters{}, "")
	if len(views) != 2 {
		t.Fatalf("malformed trip should be skipped, not abort: got %d views", len(views))
	}
	for _, v := range views {
		if v.RecordID == 99 {
			t.Fatalf("malformed trip leaked into results")
		}
	}
}

func TestDenormalizedLookups(t *testing.T) {
	views := SearchTrips([]models.Trip{twoLegTrip(t)}, testLookups(), SearchFilters{}, "")
	v := views[0]
	if v.CompanyName != "Transportes Sol" || v.CompanyLogo != "logo.png" {
		t.Fatalf("company enrichment missing: %+v", v)
	}
	if v.VehicleSummary != "Toyota Hiace - ABC-123" {
		t.Fatalf("vehicle summary mismatch: %q", v.VehicleSummary)
	}
	if v.DriverName != "Pedro" {
		t.Fatalf("driver enrichment missing: %q", v.DriverName)
	}
	if v.RouteOrigin != "CityA" || v.RouteDestination != "CityC" {
		t.Fatalf("route enrichment missing: %+v", v)
	}
}

func TestLookupMissesAreNotErrors(t *testing.T) {
	views := SearchTrips([]models.Trip{twoLegTrip(t)}, SearchLookups{}, SearchFilters{}, "")
	if len(views) != 2 {
		t.Fatalf("empty lookups should not drop trips, got %d", len(views))
	}
	if views[0].CompanyName != "" || views[0].DriverName != "" {
		t.Fatalf("missing lookups should resolve to empty fields: %+v", views[0])
	}
}

func TestDateRangeOptimized(t *testing.T) {
	trip := twoLegTrip(t)
	views := SearchTrips([]models.Trip{trip}, testLookups(), SearchFilters{
		OptimizedResponse: true,
		DateRange:         []string{"2025-05-27", "2025-05-29"},
	}, "")
	if len(views) != 1 {
		t.Fatalf("trip inside range should match, got %d", len(views))
	}

	views = SearchTrips([]models.Trip{trip}, testLookups(), SearchFilters{
		OptimizedResponse: true,
		DateRange:         []string{"2025-06-01", "2025-06-02"},
	}, "")
	if len(views) != 0 {
		t.Fatalf("trip outside range should not match, got %d", len(views))
	}
}
