package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"petverse/internal/domain/lostfound"
)

type LostFoundRepo struct {
	db *sql.DB
}

func NewLostFoundRepo(db *sql.DB) *LostFoundRepo {
	return &LostFoundRepo{db: db}
}

const reportCols = `
	id, report_type, user_id, pet_name, pet_type, breed, color,
	location, lat, lng, report_date, description, image_url,
	contact_name, contact_phone, contact_email,
	status, matched_with, created_at, updated_at
`

func (r *LostFoundRepo) Create(ctx context.Context, rep lostfound.Report) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lost_found_reports (`+reportCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	`,
		rep.ID,
		string(rep.Type),
		rep.UserID,
		rep.PetName,
		toNullString(rep.PetType),
		toNullString(rep.Breed),
		toNullString(rep.Color),
		rep.Location,
		toNullFloat(rep.Lat),
		toNullFloat(rep.Lng),
		toNullString(rep.Date),
		toNullString(rep.Description),
		toNullString(rep.ImageURL),
		toNullString(rep.ContactName),
		toNullString(rep.ContactPhone),
		toNullString(rep.ContactEmail),
		string(rep.Status),
		toNullString(rep.MatchedWith),
		rep.CreatedAt,
		rep.UpdatedAt,
	)
	return err
}

func (r *LostFoundRepo) GetByID(ctx context.Context, id string) (lostfound.Report, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return lostfound.Report{}, lostfound.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+reportCols+`
		FROM lost_found_reports
		WHERE id = $1
	`, id)

	return scanReport(row)
}

func (r *LostFoundRepo) Update(ctx context.Context, rep lostfound.Report) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE lost_found_reports
		SET status = $2, matched_with = $3, updated_at = $4
		WHERE id = $1
	`,
		rep.ID,
		string(rep.Status),
		toNullString(rep.MatchedWith),
		rep.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return lostfound.ErrNotFound
	}
	return nil
}

func (r *LostFoundRepo) ListApproved(ctx context.Context, typ lostfound.ReportType) ([]lostfound.Report, error) {
	if typ == "" {
		return r.list(ctx, `
			SELECT `+reportCols+`
			FROM lost_found_reports
			WHERE status = 'approved'
			ORDER BY created_at DESC
		`)
	}
	return r.list(ctx, `
		SELECT `+reportCols+`
		FROM lost_found_reports
		WHERE status = 'approved' AND report_type = $1
		ORDER BY created_at DESC
	`, string(typ))
}

func (r *LostFoundRepo) ListPending(ctx context.Context) ([]lostfound.Report, error) {
	return r.list(ctx, `
		SELECT `+reportCols+`
		FROM lost_found_reports
		WHERE status = 'pending'
		ORDER BY created_at ASC
	`)
}

func (r *LostFoundRepo) ListReviewed(ctx context.Context) ([]lostfound.Report, error) {
	return r.list(ctx, `
		SELECT `+reportCols+`
		FROM lost_found_reports
		WHERE status <> 'pending'
		ORDER BY updated_at DESC
	`)
}

func (r *LostFoundRepo) list(ctx context.Context, q string, args ...any) ([]lostfound.Report, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]lostfound.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func scanReport(row rowScanner) (lostfound.Report, error) {
	var rep lostfound.Report
	var typ, status string
	var petType, breed, color, date, desc, img, cName, cPhone, cEmail, matched sql.NullString
	var lat, lng sql.NullFloat64
	if err := row.Scan(
		&rep.ID,
		&typ,
		&rep.UserID,
		&rep.PetName,
		&petType,
		&breed,
		&color,
		&rep.Location,
		&lat,
		&lng,
		&date,
		&desc,
		&img,
		&cName,
		&cPhone,
		&cEmail,
		&status,
		&matched,
		&rep.CreatedAt,
		&rep.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lostfound.Report{}, lostfound.ErrNotFound
		}
		return lostfound.Report{}, err
	}
	rep.Type = lostfound.ReportType(typ)
	rep.PetType = fromNullString(petType)
	rep.Breed = fromNullString(breed)
	rep.Color = fromNullString(color)
	rep.Lat = fromNullFloat(lat)
	rep.Lng = fromNullFloat(lng)
	rep.Date = fromNullString(date)
	rep.Description = fromNullString(desc)
	rep.ImageURL = fromNullString(img)
	rep.ContactName = fromNullString(cName)
	rep.ContactPhone = fromNullString(cPhone)
	rep.ContactEmail = fromNullString(cEmail)
	rep.Status = lostfound.Status(status)
	rep.MatchedWith = fromNullString(matched)
	return rep, nil
}
