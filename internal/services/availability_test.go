package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/repositories"
)

func tripRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "route_id", "company_id", "vehicle_id", "driver_id",
		"visibility", "capacity", "trip_data", "parent_trip_id", "available_seats",
	})
}

func segmentsJSON(t *testing.T, seats ...int) string {
	t.Helper()
	segs := []models.Segment{
		{Origin: "CityA", Destination: "CityB", DepartureDate: "2025-05-28", AvailableSeats: seats[0], TripID: "42_0", IsMainTrip: true, Price: 100},
		{Origin: "CityB", Destination: "CityC", DepartureDate: "2025-05-28", AvailableSeats: seats[1], TripID: "42_1", Price: 80},
	}
	raw, err := models.SerializeSegments(segs)
	if err != nil {
		t.Fatalf("serialize error: %v", err)
	}
	return string(raw)
}

func TestAdjustLegacyPropagatesToFamily(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM trips WHERE id = \?`).WithArgs(int64(10)).
		WillReturnRows(tripRows().AddRow(10, 1, "comp-1", nil, nil, "published", 12, nil, 7, 5))
	mock.ExpectExec(`UPDATE trips SET available_seats = available_seats \+ \? WHERE id = \? OR parent_trip_id = \?`).
		WithArgs(-2, int64(7), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	svc := AvailabilityService{Trips: repositories.TripRepository{DB: db}}
	if err := svc.Adjust(10, "", -2); err != nil {
		t.Fatalf("adjust error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdjustLegacySelfParent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// legacy row without parent_trip_id acts as its own parent
	mock.ExpectQuery(`SELECT .+ FROM trips WHERE id = \?`).WithArgs(int64(10)).
		WillReturnRows(tripRows().AddRow(10, 1, "comp-1", nil, nil, "published", 12, nil, nil, 5))
	mock.ExpectExec(`UPDATE trips SET available_seats`).
		WithArgs(3, int64(10), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := AvailabilityService{Trips: repositories.TripRepository{DB: db}}
	if err := svc.Adjust(10, "", 3); err != nil {
		t.Fatalf("adjust error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdjustEmbeddedTargetsOneSegment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	before := segmentsJSON(t, 10, 10)
	after := segmentsJSON(t, 10, 8)

	mock.ExpectQuery(`SELECT .+ FROM trips WHERE id = \?`).WithArgs(int64(42)).
		WillReturnRows(tripRows().AddRow(42, 1, "comp-1", nil, nil, "published", 12, before, nil, nil))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT trip_data FROM trips WHERE id = \? FOR UPDATE`).WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"trip_data"}).AddRow(before))
	mock.ExpectExec(`UPDATE trips SET trip_data = \? WHERE id = \?`).
		WithArgs(after, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := AvailabilityService{Trips: repositories.TripRepository{DB: db}}
	if err := svc.Adjust(42, "42_1", -2); err != nil {
		t.Fatalf("adjust error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdjustConservation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	original := segmentsJSON(t, 10, 10)
	reserved := segmentsJSON(t, 7, 10)

	// reserve 3 seats on segment 0
	mock.ExpectQuery(`SELECT .+ FROM trips WHERE id = \?`).WithArgs(int64(42)).
		WillReturnRows(tripRows().AddRow(42, 1, "comp-1", nil, nil, "published", 12, original, nil, nil))
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"trip_data"}).AddRow(original))
	mock.ExpectExec(`UPDATE trips SET trip_data`).WithArgs(reserved, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// release them again
	mock.ExpectQuery(`SELECT .+ FROM trips WHERE id = \?`).WithArgs(int64(42)).
		WillReturnRows(tripRows().AddRow(42, 1, "comp-1", nil, nil, "published", 12, reserved, nil, nil))
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"trip_data"}).AddRow(reserved))
	mock.ExpectExec(`UPDATE trips SET trip_data`).WithArgs(original, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := AvailabilityService{Trips: repositories.TripRepository{DB: db}}
	if err := svc.Adjust(42, "42_0", -3); err != nil {
		t.Fatalf("reserve error: %v", err)
	}
	if err := svc.Adjust(42, "42_0", 3); err != nil {
		t.Fatalf("release error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("seats not conserved: %v", err)
	}
}

func TestAdjustMissingTripIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM trips WHERE id = \?`).WithArgs(int64(999)).
		WillReturnRows(tripRows())

	svc := AvailabilityService{Trips: repositories.TripRepository{DB: db}}
	if err := svc.Adjust(999, "999_0", -1); err != nil {
		t.Fatalf("missing trip must be a silent no-op, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdjustRejectsOversell(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	low := segmentsJSON(t, 1, 10)

	mock.ExpectQuery(`SELECT .+ FROM trips WHERE id = \?`).WithArgs(int64(42)).
		WillReturnRows(tripRows().AddRow(42, 1, "comp-1", nil, nil, "published", 12, low, nil, nil))
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"trip_data"}).AddRow(low))
	mock.ExpectRollback()

	svc := AvailabilityService{Trips: repositories.TripRepository{DB: db}}
	err = svc.Adjust(42, "42_0", -2)
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdjustStaleSegmentIndex(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	data := segmentsJSON(t, 10, 10)

	mock.ExpectQuery(`SELECT .+ FROM trips WHERE id = \?`).WithArgs(int64(42)).
		WillReturnRows(tripRows().AddRow(42, 1, "comp-1", nil, nil, "published", 12, data, nil, nil))
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"trip_data"}).AddRow(data))
	mock.ExpectRollback()

	svc := AvailabilityService{Trips: repositories.TripRepository{DB: db}}
	err = svc.Adjust(42, "42_5", -1)
	if !domain.IsSegmentNotFound(err) {
		t.Fatalf("expected SegmentNotFoundError, got %v", err)
	}
}
