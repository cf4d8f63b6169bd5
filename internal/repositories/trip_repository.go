package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"

	intconfig "github.com/BetanzosJefferson/routify2-alpha-sub003/internal/config"
	intdb "github.com/BetanzosJefferson/routify2-alpha-sub003/internal/db"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `id, route_id, company_id, vehicle_id, driver_id, visibility, capacity, trip_data, parent_trip_id, available_seats`

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var (
		t        models.Trip
		vehicle  sql.NullInt64
		driver   sql.NullInt64
		tripData sql.NullString
	)
	err := row.Scan(&t.ID, &t.RouteID, &t.CompanyID, &vehicle, &driver, &t.Visibility, &t.Capacity, &tripData, &t.ParentTripID, &t.SeatColumn)
	if err != nil {
		return t, err
	}
	t.VehicleID = vehicle.Int64
	t.DriverID = driver.Int64
	if tripData.Valid && strings.TrimSpace(tripData.String) != "" {
		t.TripData = json.RawMessage(tripData.String)
	}
	return t, nil
}

func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	row := r.db().QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
	t, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return t, err
	}
	return t, nil
}

// List returns trips, newest departure first, optionally scoped to a set
// of companies. Filtering beyond that happens in the search service.
func (r TripRepository) List(companyIDs []string) ([]models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips`
	args := []any{}
	if len(companyIDs) > 0 {
		ph := make([]string, len(companyIDs))
		for i, id := range companyIDs {
			ph[i] = "?"
			args = append(args, id)
		}
		query += ` WHERE company_id IN (` + strings.Join(ph, ",") + `)`
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) Create(t models.Trip) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO trips (route_id, company_id, vehicle_id, driver_id, visibility, capacity, trip_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`, t.RouteID, t.CompanyID, intdb.NullIfZero(t.VehicleID), intdb.NullIfZero(t.DriverID), t.Visibility, t.Capacity, string(t.TripData))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TripRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

// AdjustLegacySeats applies a seat delta to a legacy trip family in one
// atomic statement: the parent row plus every sibling sharing the
// parent_trip_id. Returns the number of rows touched.
func (r TripRepository) AdjustLegacySeats(parentID int64, delta int) (int64, error) {
	res, err := r.db().Exec(`
		UPDATE trips
		SET available_seats = available_seats + ?
		WHERE id = ? OR parent_trip_id = ?
	`, delta, parentID, parentID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// AdjustSegmentSeats applies a seat delta to one segment of an
// embedded-array trip. The read-modify-write runs under a row lock so
// concurrent reservations against the same trip serialize instead of
// losing updates; a decrement that would go negative is rejected.
func (r TripRepository) AdjustSegmentSeats(tripID int64, index int, delta int) error {
	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var raw sql.NullString
	err = tx.QueryRow(`SELECT trip_data FROM trips WHERE id = ? FOR UPDATE`, tripID).Scan(&raw)
	if err == sql.ErrNoRows {
		return domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return err
	}

	trip := models.Trip{ID: tripID}
	if raw.Valid {
		trip.TripData = json.RawMessage(raw.String)
	}
	segs, err := models.ParseSegments(trip)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(segs) {
		return domain.SegmentNotFoundError{BusinessID: models.ComposeBusinessID(tripID, index)}
	}

	next := segs[index].AvailableSeats + delta
	if next < 0 {
		return domain.ConflictError{Resource: "segment", Msg: "asientos insuficientes"}
	}
	segs[index].AvailableSeats = next

	updated, err := models.SerializeSegments(segs)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE trips SET trip_data = ? WHERE id = ?`, string(updated), tripID); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateTripData rewrites the segment array, used right after insert to
// stamp the composed business ids.
func (r TripRepository) UpdateTripData(tripID int64, raw json.RawMessage) error {
	res, err := r.db().Exec(`UPDATE trips SET trip_data = ? WHERE id = ?`, string(raw), tripID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

// CountByRoute is used to refuse deleting a route that trips reference.
func (r TripRepository) CountByRoute(routeID int64) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM trips WHERE route_id = ?`, routeID).Scan(&n)
	return n, err
}
