package store

import (
	"database/sql"

	"howisyourday/models"
)

type subscriberStore struct {
	db *sql.DB
}

func NewSubscriberStore(db *sql.DB) SubscriberStore {
	return &subscriberStore{db: db}
}

const subscriberColumns = `id, email, confirmed, confirm_token, subscribed_at`

func scanSubscriber(row interface{ Scan(...interface{}) error }) (*models.Subscriber, error) {
	var s models.Subscriber
	err := row.Scan(&s.ID, &s.Email, &s.Confirmed, &s.ConfirmToken, &s.SubscribedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *subscriberStore) GetByEmail(email string) (*models.Subscriber, error) {
	return scanSubscriber(s.db.QueryRow(
		"SELECT "+subscriberColumns+" FROM subscribers WHERE email = $1", email))
}

func (s *subscriberStore) GetByToken(token string) (*models.Subscriber, error) {
	return scanSubscriber(s.db.QueryRow(
		"SELECT "+subscriberColumns+" FROM subscribers WHERE confirm_token = $1", token))
}

// Create relies on the unique index on email: a concurrent duplicate insert
// surfaces as ErrDuplicate instead of a second row.
func (s *subscriberStore) Create(email, confirmToken string) (*models.Subscriber, error) {
	sub := models.Subscriber{
		Email:        email,
		ConfirmToken: &confirmToken,
	}
	err := s.db.QueryRow(`
		INSERT INTO subscribers (email, confirm_token, confirmed)
		VALUES ($1, $2, FALSE)
		RETURNING id, subscribed_at
	`, email, confirmToken).Scan(&sub.ID, &sub.SubscribedAt)

	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *subscriberStore) Confirm(id int64) error {
	_, err := s.db.Exec("UPDATE subscribers SET confirmed = TRUE WHERE id = $1", id)
	return err
}

func (s *subscriberStore) List(confirmed *bool) ([]models.Subscriber, error) {
	query := "SELECT " + subscriberColumns + " FROM subscribers"
	args := []interface{}{}
	if confirmed != nil {
		query += " WHERE confirmed = $1"
		args = append(args, *confirmed)
	}
	query += " ORDER BY subscribed_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []models.Subscriber{}
	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

func (s *subscriberStore) ListConfirmedEmails() ([]string, error) {
	rows, err := s.db.Query("SELECT email FROM subscribers WHERE confirmed = TRUE")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
