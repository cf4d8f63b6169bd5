package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"

	intconfig "github.com/BetanzosJefferson/routify2-alpha-sub003/internal/config"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanRoute(row interface{ Scan(...any) error }) (models.Route, error) {
	var (
		route models.Route
		stops sql.NullString
	)
	if err := row.Scan(&route.ID, &route.Origin, &route.Destination, &stops, &route.CompanyID); err != nil {
		return route, err
	}
	route.Stops = []string{}
	if stops.Valid && strings.TrimSpace(stops.String) != "" {
		_ = json.Unmarshal([]byte(stops.String), &route.Stops)
	}
	return route, nil
}

func (r RouteRepository) GetByID(id int64) (models.Route, error) {
	row := r.db().QueryRow(`SELECT id, origin, destination, stops, company_id FROM routes WHERE id = ?`, id)
	route, err := scanRoute(row)
	if err == sql.ErrNoRows {
		return route, domain.NotFoundError{Resource: "route"}
	}
	return route, err
}

func (r RouteRepository) List() ([]models.Route, error) {
	rows, err := r.db().Query(`SELECT id, origin, destination, stops, company_id FROM routes ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return out, err
		}
		out = append(out, route)
	}
	return out, rows.Err()
}

// MapByID builds the lookup the search handlers pass into the engine.
func (r RouteRepository) MapByID() (map[int64]models.Route, error) {
	routes, err := r.List()
	if err != nil {
		return nil, err
	}
	out := make(map[int64]models.Route, len(routes))
	for _, route := range routes {
		out[route.ID] = route
	}
	return out, nil
}

func (r RouteRepository) Create(route models.Route) (int64, error) {
	stops, err := json.Marshal(route.Stops)
	if err != nil {
		return 0, err
	}
	res, err := r.db().Exec(`
		INSERT INTO routes (origin, destination, stops, company_id, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`, route.Origin, route.Destination, string(stops), route.CompanyID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RouteRepository) Update(route models.Route) error {
	stops, err := json.Marshal(route.Stops)
	if err != nil {
		return err
	}
	res, err := r.db().Exec(`
		UPDATE routes SET origin = ?, destination = ?, stops = ? WHERE id = ?
	`, route.Origin, route.Destination, string(stops), route.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}

func (r RouteRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}
