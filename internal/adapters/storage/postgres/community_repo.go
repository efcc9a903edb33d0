package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"petverse/internal/domain/community"
)

type CommunityRepo struct {
	db *sql.DB
}

func NewCommunityRepo(db *sql.DB) *CommunityRepo {
	return &CommunityRepo{db: db}
}

const postCols = `
	id, user_id, user_name, post_type, title, content,
	image_url, lost_report_id, created_at
`

func (r *CommunityRepo) Create(ctx context.Context, p community.Post) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO community_posts (`+postCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		p.ID,
		toNullString(p.UserID),
		p.UserName,
		string(p.Type),
		p.Title,
		p.Content,
		toNullString(p.ImageURL),
		toNullString(p.LostReportID),
		p.CreatedAt,
	)
	return err
}

func (r *CommunityRepo) GetByID(ctx context.Context, id string) (community.Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return community.Post{}, community.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+postCols+`
		FROM community_posts
		WHERE id = $1
	`, id)

	return scanPost(row)
}

func (r *CommunityRepo) List(ctx context.Context) ([]community.Post, error) {
	return r.list(ctx, `
		SELECT `+postCols+`
		FROM community_posts
		ORDER BY created_at DESC
	`)
}

func (r *CommunityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM community_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return community.ErrNotFound
	}
	return nil
}

func (r *CommunityRepo) DeleteByLostReport(ctx context.Context, lostReportID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM community_posts WHERE lost_report_id = $1`, lostReportID)
	return err
}

func (r *CommunityRepo) ListByLostReport(ctx context.Context, lostReportID string) ([]community.Post, error) {
	return r.list(ctx, `
		SELECT `+postCols+`
		FROM community_posts
		WHERE lost_report_id = $1
		ORDER BY created_at DESC
	`, lostReportID)
}

func (r *CommunityRepo) list(ctx context.Context, q string, args ...any) ([]community.Post, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]community.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPost(row rowScanner) (community.Post, error) {
	var p community.Post
	var typ string
	var userID, img, lostReport sql.NullString
	if err := row.Scan(
		&p.ID,
		&userID,
		&p.UserName,
		&typ,
		&p.Title,
		&p.Content,
		&img,
		&lostReport,
		&p.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return community.Post{}, community.ErrNotFound
		}
		return community.Post{}, err
	}
	p.UserID = fromNullString(userID)
	p.Type = community.PostType(typ)
	p.ImageURL = fromNullString(img)
	p.LostReportID = fromNullString(lostReport)
	return p, nil
}
