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

type ReservationRepository struct {
	DB *sql.DB
}

func (r ReservationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const reservationColumns = `id, trip_record_id, trip_details, contact_name, contact_phone, contact_email,
	amount, advance, payment_method, payment_status, status, checked, check_count, checked_by, checked_at`

func scanReservation(row interface{ Scan(...any) error }) (models.Reservation, error) {
	var (
		res         models.Reservation
		tripRecord  sql.NullInt64
		tripDetails sql.NullString
		phone       sql.NullString
		email       sql.NullString
		checked     sql.NullBool
	)
	err := row.Scan(&res.ID, &tripRecord, &tripDetails, &res.ContactName, &phone, &email,
		&res.Amount, &res.Advance, &res.PaymentMethod, &res.PaymentStatus, &res.Status,
		&checked, &res.CheckCount, &res.CheckedBy, &res.CheckedAt)
	if err != nil {
		return res, err
	}
	res.ContactPhone = phone.String
	res.ContactEmail = email.String
	res.Checked = checked.Bool
	if tripDetails.Valid && strings.TrimSpace(tripDetails.String) != "" {
		res.TripDetails = json.RawMessage(tripDetails.String)
	}
	return res, nil
}

func (r ReservationRepository) GetByID(id int64) (models.Reservation, error) {
	row := r.db().QueryRow(`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return res, domain.NotFoundError{Resource: "reservation"}
	}
	if err != nil {
		return res, err
	}
	return r.attachPassengers([]models.Reservation{res})[0], nil
}

// ListByTripRecord returns reservations tied to one trip row, boarding
// order (insertion order).
func (r ReservationRepository) ListByTripRecord(tripID int64) ([]models.Reservation, error) {
	return r.list(`WHERE trip_record_id = ?`, tripID)
}

func (r ReservationRepository) ListByStatus(status string) ([]models.Reservation, error) {
	if strings.TrimSpace(status) == "" {
		return r.list(``)
	}
	return r.list(`WHERE status = ?`, status)
}

func (r ReservationRepository) list(where string, args ...any) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations`
	if where != "" {
		query += ` ` + where
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}
	return r.attachPassengers(out), nil
}

// attachPassengers loads passenger rows for a batch of reservations with
// one query instead of one per reservation.
func (r ReservationRepository) attachPassengers(reservations []models.Reservation) []models.Reservation {
	if len(reservations) == 0 {
		return reservations
	}

	ph := make([]string, len(reservations))
	args := make([]any, len(reservations))
	index := map[int64]int{}
	for i, res := range reservations {
		ph[i] = "?"
		args[i] = res.ID
		index[res.ID] = i
		reservations[i].Passengers = []models.Passenger{}
	}

	rows, err := r.db().Query(`
		SELECT id, reservation_id, first_name, last_name
		FROM passengers
		WHERE reservation_id IN (`+strings.Join(ph, ",")+`)
		ORDER BY id ASC
	`, args...)
	if err != nil {
		return reservations
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.FirstName, &p.LastName); err != nil {
			return reservations
		}
		if i, ok := index[p.ReservationID]; ok {
			reservations[i].Passengers = append(reservations[i].Passengers, p)
		}
	}
	return reservations
}

// Create inserts the reservation and its passenger rows in one
// transaction; passengers never exist without their reservation.
func (r ReservationRepository) Create(res models.Reservation) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO reservations
			(trip_record_id, trip_details, contact_name, contact_phone, contact_email,
			 amount, advance, payment_method, payment_status, status, checked, check_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, NOW())
	`, res.ParsedTripDetails().RecordID, string(res.TripDetails), res.ContactName,
		intdb.NullIfEmpty(res.ContactPhone), intdb.NullIfEmpty(res.ContactEmail),
		res.Amount, res.Advance, res.PaymentMethod, res.PaymentStatus, res.Status)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, p := range res.Passengers {
		if _, err := tx.Exec(`
			INSERT INTO passengers (reservation_id, first_name, last_name)
			VALUES (?, ?, ?)
		`, id, p.FirstName, p.LastName); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r ReservationRepository) UpdateStatus(id int64, status string) error {
	res, err := r.db().Exec(`UPDATE reservations SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "reservation"}
	}
	return nil
}

// MarkChecked increments check_count and stamps who/when; repeated scans
// by boarding staff keep counting.
func (r ReservationRepository) MarkChecked(id int64, checkedBy string) error {
	res, err := r.db().Exec(`
		UPDATE reservations
		SET checked = 1, check_count = check_count + 1, checked_by = ?, checked_at = NOW()
		WHERE id = ?
	`, checkedBy, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "reservation"}
	}
	return nil
}

// Delete removes a reservation and its passenger rows together.
func (r ReservationRepository) Delete(id int64) error {
	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM passengers WHERE reservation_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "reservation"}
	}
	return tx.Commit()
}
