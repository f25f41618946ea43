package store

import (
	"database/sql"

	"howisyourday/models"
)

type userStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) UserStore {
	return &userStore{db: db}
}

func (s *userStore) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(`
		SELECT id, email, password_hash, display_name, is_admin, is_verified, created_at, updated_at
		FROM users WHERE email = $1
	`, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName,
		&u.IsAdmin, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userStore) Create(email, passwordHash string, displayName *string, isAdmin, isVerified bool) (*models.User, error) {
	u := models.User{
		Email:       email,
		DisplayName: displayName,
		IsAdmin:     isAdmin,
		IsVerified:  isVerified,
	}
	err := s.db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name, is_admin, is_verified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, email, passwordHash, displayName, isAdmin, isVerified,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
