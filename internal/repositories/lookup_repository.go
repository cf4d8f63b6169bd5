package repositories

import (
	"database/sql"

	intconfig "github.com/BetanzosJefferson/routify2-alpha-sub003/internal/config"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
)

// LookupRepository builds the id->record maps the search engine consumes.
// Each map is loaded with a single query per call so enrichment stays
// O(trips + lookups) instead of O(trips x lookups).
type LookupRepository struct {
	DB *sql.DB
}

func (r LookupRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// OwnersByCompany maps company id to its "owner" user record, the
// source of the company display name and logo.
func (r LookupRepository) OwnersByCompany() (map[string]models.User, error) {
	rows, err := r.db().Query(`
		SELECT id, name, company_id, COALESCE(company_name,''), COALESCE(company_logo,'')
		FROM users
		WHERE role = 'owner'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.CompanyID, &u.CompanyName, &u.CompanyLogo); err != nil {
			return out, err
		}
		u.Role = "owner"
		out[u.CompanyID] = u
	}
	return out, rows.Err()
}

// DriversByID maps driver user id to record for assignment display.
func (r LookupRepository) DriversByID() (map[int64]models.User, error) {
	rows, err := r.db().Query(`
		SELECT id, name, COALESCE(phone,''), company_id
		FROM users
		WHERE role = 'driver'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Phone, &u.CompanyID); err != nil {
			return out, err
		}
		u.Role = "driver"
		out[u.ID] = u
	}
	return out, rows.Err()
}

func (r LookupRepository) VehiclesByID() (map[int64]models.Vehicle, error) {
	rows, err := r.db().Query(`
		SELECT id, company_id, plates, COALESCE(brand,''), COALESCE(model,''), capacity
		FROM vehicles
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.CompanyID, &v.Plates, &v.Brand, &v.Model, &v.Capacity); err != nil {
			return out, err
		}
		out[v.ID] = v
	}
	return out, rows.Err()
}
