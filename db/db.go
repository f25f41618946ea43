package db

import (
	"database/sql"
	"os"

	_ "github.com/lib/pq"
)

// Open connects to Postgres and verifies the connection.
func Open(connStr string) (*sql.DB, error) {
	d, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := d.Ping(); err != nil {
		d.Close()
		return nil, err
	}

	return d, nil
}

// Migrate applies schema.sql. The schema is written with IF NOT EXISTS so
// this is safe to run on every boot.
func Migrate(d *sql.DB, schemaPath string) error {
	sqlBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		return err
	}

	_, err = d.Exec(string(sqlBytes))
	return err
}
