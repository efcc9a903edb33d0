package postgres

import (
	"context"
	"database/sql"

	"petverse/internal/domain/notifications"
)

type NotificationsRepo struct {
	db *sql.DB
}

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_notifications (
			id, notif_type, title, message,
			adoption_id, donation_id, read, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		n.ID,
		n.Type,
		n.Title,
		n.Message,
		toNullString(n.AdoptionID),
		toNullString(n.DonationID),
		n.Read,
		n.CreatedAt,
	)
	return err
}

func (r *NotificationsRepo) List(ctx context.Context) ([]notifications.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, notif_type, title, message, adoption_id, donation_id, read, created_at
		FROM admin_notifications
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notifications.Notification, 0)
	for rows.Next() {
		var n notifications.Notification
		var adoptionID, donationID sql.NullString
		if err := rows.Scan(
			&n.ID,
			&n.Type,
			&n.Title,
			&n.Message,
			&adoptionID,
			&donationID,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		n.AdoptionID = fromNullString(adoptionID)
		n.DonationID = fromNullString(donationID)
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationsRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE admin_notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return notifications.ErrNotFound
	}
	return nil
}
