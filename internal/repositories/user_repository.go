package repositories

import (
	"database/sql"

	intconfig "github.com/BetanzosJefferson/routify2-alpha-sub003/internal/config"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByLogin resolves a user by email or username for authentication.
func (r UserRepository) GetByLogin(login string) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, username, email, COALESCE(phone,''), password_hash, role, status, company_id
		FROM users
		WHERE email = ? OR username = ?
	`, login, login).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.Status, &u.CompanyID)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

func (r UserRepository) Create(u models.User) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role, status, company_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, u.Name, u.Username, u.Email, u.Phone, u.PasswordHash, u.Role, u.Status, u.CompanyID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
