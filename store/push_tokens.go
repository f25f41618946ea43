package store

import (
	"database/sql"
)

type pushTokenStore struct {
	db *sql.DB
}

func NewPushTokenStore(db *sql.DB) PushTokenStore {
	return &pushTokenStore{db: db}
}

// Register deduplicates by exact token match inside the database, so two
// concurrent registrations of the same token still produce a single row.
func (s *pushTokenStore) Register(token, platform string) (bool, error) {
	res, err := s.db.Exec(`
		INSERT INTO push_tokens (token, platform)
		VALUES ($1, $2)
		ON CONFLICT (token) DO NOTHING
	`, token, platform)
	if err != nil {
		return false, err
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

func (s *pushTokenStore) ListTokens() ([]string, error) {
	rows, err := s.db.Query("SELECT token FROM push_tokens ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
