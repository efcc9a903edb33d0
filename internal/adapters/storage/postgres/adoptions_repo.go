package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"petverse/internal/domain/adoptions"
)

type AdoptionsRepo struct {
	db *sql.DB
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

const adoptionCols = `
	id, pet_id, pet_name, user_id,
	adopter_name, phone, email, address, reason,
	fee, payment_id, status, created_at, verified_at
`

func (r *AdoptionsRepo) Create(ctx context.Context, a adoptions.Adoption) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoptions (`+adoptionCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		a.ID,
		a.PetID,
		a.PetName,
		a.UserID,
		a.AdopterName,
		toNullString(a.Phone),
		a.Email,
		toNullString(a.Address),
		toNullString(a.Reason),
		a.Fee,
		a.PaymentID,
		string(a.Status),
		a.CreatedAt,
		toNullTime(a.VerifiedAt),
	)
	return err
}

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptions.Adoption{}, adoptions.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+adoptionCols+`
		FROM adoptions
		WHERE id = $1
	`, id)

	return scanAdoption(row)
}

func (r *AdoptionsRepo) Update(ctx context.Context, a adoptions.Adoption) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoptions
		SET status = $2, verified_at = $3
		WHERE id = $1
	`,
		a.ID,
		string(a.Status),
		toNullTime(a.VerifiedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return adoptions.ErrNotFound
	}
	return nil
}

func (r *AdoptionsRepo) ListAll(ctx context.Context) ([]adoptions.Adoption, error) {
	return r.list(ctx, `
		SELECT `+adoptionCols+`
		FROM adoptions
		ORDER BY created_at DESC
	`)
}

func (r *AdoptionsRepo) ListByUser(ctx context.Context, userID string) ([]adoptions.Adoption, error) {
	return r.list(ctx, `
		SELECT `+adoptionCols+`
		FROM adoptions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
}

func (r *AdoptionsRepo) list(ctx context.Context, q string, args ...any) ([]adoptions.Adoption, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Adoption, 0)
	for rows.Next() {
		a, err := scanAdoption(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAdoption(row rowScanner) (adoptions.Adoption, error) {
	var a adoptions.Adoption
	var status string
	var phone, address, reason sql.NullString
	var verifiedAt sql.NullTime
	if err := row.Scan(
		&a.ID,
		&a.PetID,
		&a.PetName,
		&a.UserID,
		&a.AdopterName,
		&phone,
		&a.Email,
		&address,
		&reason,
		&a.Fee,
		&a.PaymentID,
		&status,
		&a.CreatedAt,
		&verifiedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return adoptions.Adoption{}, adoptions.ErrNotFound
		}
		return adoptions.Adoption{}, err
	}
	a.Phone = fromNullString(phone)
	a.Address = fromNullString(address)
	a.Reason = fromNullString(reason)
	a.Status = adoptions.Status(status)
	a.VerifiedAt = fromNullTime(verifiedAt)
	return a, nil
}
