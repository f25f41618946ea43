package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"howisyourday/models"
)

const uniqueViolation = "23505"

type postStore struct {
	db *sql.DB
}

func NewPostStore(db *sql.DB) PostStore {
	return &postStore{db: db}
}

const postColumns = `id, title, slug, excerpt, content, author_id, status, featured_image, tags, published_at, created_at, updated_at`

func scanPost(row interface{ Scan(...interface{}) error }) (*models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.AuthorID,
		&p.Status, &p.FeaturedImage, pq.Array(&p.Tags), &p.PublishedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *postStore) List(f PostFilter) ([]models.Post, int, error) {
	where := []string{}
	args := []interface{}{}

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Tag != "" {
		args = append(args, pq.Array([]string{f.Tag}))
		where = append(where, fmt.Sprintf("tags @> $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", len(args), len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM posts "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Published listings sort by publish date, admin listings by creation.
	order := "created_at DESC"
	if f.Status == models.StatusPublished {
		order = "published_at DESC"
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(
		"SELECT %s FROM posts %s ORDER BY %s LIMIT $%d OFFSET $%d",
		postColumns, whereClause, order, len(args)-1, len(args),
	)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *p)
	}

	return posts, total, rows.Err()
}

func (s *postStore) GetPublishedBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT p.id, p.title, p.slug, p.excerpt, p.content, p.author_id, p.status,
		       p.featured_image, p.tags, p.published_at, p.created_at, p.updated_at,
		       u.display_name
		FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		WHERE p.slug = $1 AND p.status = 'published'
	`, slug)

	var p models.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.AuthorID,
		&p.Status, &p.FeaturedImage, pq.Array(&p.Tags), &p.PublishedAt,
		&p.CreatedAt, &p.UpdatedAt, &p.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *postStore) GetByID(id int64) (*models.Post, error) {
	row := s.db.QueryRow("SELECT "+postColumns+" FROM posts WHERE id = $1", id)
	return scanPost(row)
}

// Create inserts the post, treating p.Slug as a base. The slug column carries
// a unique index; on a collision the insert is retried with base-1, base-2, ...
// so concurrent writers can never produce a duplicate.
func (s *postStore) Create(p *models.Post) error {
	base := p.Slug
	for attempt := 0; ; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = fmt.Sprintf("%s-%d", base, attempt)
		}

		err := s.db.QueryRow(`
			INSERT INTO posts (title, slug, excerpt, content, author_id, status, featured_image, tags, published_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, slug, created_at, updated_at
		`, p.Title, candidate, p.Excerpt, p.Content, p.AuthorID, p.Status,
			p.FeaturedImage, pq.Array(p.Tags), p.PublishedAt,
		).Scan(&p.ID, &p.Slug, &p.CreatedAt, &p.UpdatedAt)

		if isUniqueViolation(err) {
			continue
		}
		return err
	}
}

func (s *postStore) Update(id int64, u PostUpdate) (*models.Post, error) {
	set := []string{"updated_at = NOW()"}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if u.Title != nil {
		add("title", *u.Title)
	}
	if u.Excerpt != nil {
		add("excerpt", *u.Excerpt)
	}
	if u.Content != nil {
		add("content", *u.Content)
	}
	if u.FeaturedImage != nil {
		add("featured_image", *u.FeaturedImage)
	}
	if u.Tags != nil {
		add("tags", pq.Array(*u.Tags))
	}
	if u.Status != nil {
		add("status", *u.Status)
	}
	if u.PublishedAt != nil {
		add("published_at", *u.PublishedAt)
	}

	baseSlug := ""
	if u.Slug != nil {
		baseSlug = *u.Slug
	}

	for attempt := 0; ; attempt++ {
		setClause := set
		updateArgs := args

		if u.Slug != nil {
			candidate := baseSlug
			if attempt > 0 {
				candidate = fmt.Sprintf("%s-%d", baseSlug, attempt)
			}
			updateArgs = append(append([]interface{}{}, args...), candidate)
			setClause = append(append([]string{}, set...), fmt.Sprintf("slug = $%d", len(updateArgs)))
		}

		updateArgs = append(updateArgs, id)
		query := fmt.Sprintf(
			"UPDATE posts SET %s WHERE id = $%d RETURNING %s",
			strings.Join(setClause, ", "), len(updateArgs), postColumns,
		)

		p, err := scanPost(s.db.QueryRow(query, updateArgs...))
		if u.Slug != nil && isUniqueViolation(err) {
			continue
		}
		return p, err
	}
}

func (s *postStore) Delete(id int64) error {
	res, err := s.db.Exec("DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *postStore) TagCounts() ([]models.TagCount, error) {
	rows, err := s.db.Query(`
		SELECT t.tag, COUNT(*) AS count
		FROM posts, UNNEST(tags) AS t(tag)
		WHERE status = 'published'
		GROUP BY t.tag
		ORDER BY count DESC, t.tag ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.TagCount{}
	for rows.Next() {
		var tc models.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
