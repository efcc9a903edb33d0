package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"petverse/internal/domain/donations"
)

type DonationsRepo struct {
	db *sql.DB
}

func NewDonationsRepo(db *sql.DB) *DonationsRepo {
	return &DonationsRepo{db: db}
}

const donationCols = `
	id, user_id, donor_name, email, amount, message,
	payment_id, payment_method, status, created_at, verified_at
`

func (r *DonationsRepo) Create(ctx context.Context, d donations.Donation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO donations (`+donationCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		d.ID,
		toNullString(d.UserID),
		d.DonorName,
		d.Email,
		d.Amount,
		toNullString(d.Message),
		d.PaymentID,
		toNullString(d.Method),
		string(d.Status),
		d.CreatedAt,
		toNullTime(d.VerifiedAt),
	)
	return err
}

func (r *DonationsRepo) GetByID(ctx context.Context, id string) (donations.Donation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return donations.Donation{}, donations.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+donationCols+`
		FROM donations
		WHERE id = $1
	`, id)

	return scanDonation(row)
}

func (r *DonationsRepo) Update(ctx context.Context, d donations.Donation) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE donations
		SET status = $2, verified_at = $3
		WHERE id = $1
	`,
		d.ID,
		string(d.Status),
		toNullTime(d.VerifiedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return donations.ErrNotFound
	}
	return nil
}

func (r *DonationsRepo) List(ctx context.Context, status donations.Status) ([]donations.Donation, error) {
	q := `
		SELECT ` + donationCols + `
		FROM donations
	`
	var args []any
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, string(status))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]donations.Donation, 0)
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDonation(row rowScanner) (donations.Donation, error) {
	var d donations.Donation
	var status string
	var userID, message, method sql.NullString
	var verifiedAt sql.NullTime
	if err := row.Scan(
		&d.ID,
		&userID,
		&d.DonorName,
		&d.Email,
		&d.Amount,
		&message,
		&d.PaymentID,
		&method,
		&status,
		&d.CreatedAt,
		&verifiedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return donations.Donation{}, donations.ErrNotFound
		}
		return donations.Donation{}, err
	}
	d.UserID = fromNullString(userID)
	d.Message = fromNullString(message)
	d.Method = fromNullString(method)
	d.Status = donations.Status(status)
	d.VerifiedAt = fromNullTime(verifiedAt)
	return d, nil
}
