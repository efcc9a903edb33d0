package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"petverse/internal/domain/volunteers"
)

type VolunteerAppsRepo struct {
	db *sql.DB
}

func NewVolunteerAppsRepo(db *sql.DB) *VolunteerAppsRepo {
	return &VolunteerAppsRepo{db: db}
}

const applicationCols = `
	id, user_id, name, email, phone, role,
	availability, experience, motivation,
	status, created_at, updated_at
`

func (r *VolunteerAppsRepo) Create(ctx context.Context, a volunteers.Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO volunteer_applications (`+applicationCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		a.ID,
		a.UserID,
		a.Name,
		a.Email,
		toNullString(a.Phone),
		a.Role,
		toNullString(a.Availability),
		toNullString(a.Experience),
		toNullString(a.Motivation),
		string(a.Status),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *VolunteerAppsRepo) GetByID(ctx context.Context, id string) (volunteers.Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return volunteers.Application{}, volunteers.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+applicationCols+`
		FROM volunteer_applications
		WHERE id = $1
	`, id)

	return scanApplication(row)
}

func (r *VolunteerAppsRepo) Update(ctx context.Context, a volunteers.Application) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE volunteer_applications
		SET status = $2, updated_at = $3
		WHERE id = $1
	`,
		a.ID,
		string(a.Status),
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return volunteers.ErrNotFound
	}
	return nil
}

func (r *VolunteerAppsRepo) List(ctx context.Context, status volunteers.ApplicationStatus) ([]volunteers.Application, error) {
	q := `
		SELECT ` + applicationCols + `
		FROM volunteer_applications
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

	out := make([]volunteers.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanApplication(row rowScanner) (volunteers.Application, error) {
	var a volunteers.Application
	var status string
	var phone, avail, exp, motiv sql.NullString
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Email,
		&phone,
		&a.Role,
		&avail,
		&exp,
		&motiv,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return volunteers.Application{}, volunteers.ErrNotFound
		}
		return volunteers.Application{}, err
	}
	a.Phone = fromNullString(phone)
	a.Availability = fromNullString(avail)
	a.Experience = fromNullString(exp)
	a.Motivation = fromNullString(motiv)
	a.Status = volunteers.ApplicationStatus(status)
	return a, nil
}

type VolunteerEventsRepo struct {
	db *sql.DB
}

func NewVolunteerEventsRepo(db *sql.DB) *VolunteerEventsRepo {
	return &VolunteerEventsRepo{db: db}
}

const eventCols = `
	id, title, description, event_date, event_time,
	location, address, responsibilities,
	max_volunteers, current_volunteers, created_at
`

func (r *VolunteerEventsRepo) Create(ctx context.Context, e volunteers.Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO volunteer_events (`+eventCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		e.ID,
		e.Title,
		toNullString(e.Description),
		toNullString(e.Date),
		toNullString(e.Time),
		toNullString(e.Location),
		toNullString(e.Address),
		toNullString(e.Responsibilities),
		e.MaxVolunteers,
		e.CurrentVolunteers,
		e.CreatedAt,
	)
	return err
}

func (r *VolunteerEventsRepo) GetByID(ctx context.Context, id string) (volunteers.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return volunteers.Event{}, volunteers.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventCols+`
		FROM volunteer_events
		WHERE id = $1
	`, id)

	return scanEvent(row)
}

func (r *VolunteerEventsRepo) Update(ctx context.Context, e volunteers.Event) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE volunteer_events
		SET
			title = $2,
			description = $3,
			event_date = $4,
			event_time = $5,
			location = $6,
			address = $7,
			responsibilities = $8,
			max_volunteers = $9,
			current_volunteers = $10
		WHERE id = $1
	`,
		e.ID,
		e.Title,
		toNullString(e.Description),
		toNullString(e.Date),
		toNullString(e.Time),
		toNullString(e.Location),
		toNullString(e.Address),
		toNullString(e.Responsibilities),
		e.MaxVolunteers,
		e.CurrentVolunteers,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return volunteers.ErrNotFound
	}
	return nil
}

func (r *VolunteerEventsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM volunteer_events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return volunteers.ErrNotFound
	}
	return nil
}

func (r *VolunteerEventsRepo) List(ctx context.Context) ([]volunteers.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventCols+`
		FROM volunteer_events
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]volunteers.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEvent(row rowScanner) (volunteers.Event, error) {
	var e volunteers.Event
	var desc, date, hour, loc, addr, resp sql.NullString
	if err := row.Scan(
		&e.ID,
		&e.Title,
		&desc,
		&date,
		&hour,
		&loc,
		&addr,
		&resp,
		&e.MaxVolunteers,
		&e.CurrentVolunteers,
		&e.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return volunteers.Event{}, volunteers.ErrNotFound
		}
		return volunteers.Event{}, err
	}
	e.Description = fromNullString(desc)
	e.Date = fromNullString(date)
	e.Time = fromNullString(hour)
	e.Location = fromNullString(loc)
	e.Address = fromNullString(addr)
	e.Responsibilities = fromNullString(resp)
	return e, nil
}

type VolunteerRegsRepo struct {
	db *sql.DB
}

func NewVolunteerRegsRepo(db *sql.DB) *VolunteerRegsRepo {
	return &VolunteerRegsRepo{db: db}
}

const registrationCols = `
	id, event_id, user_id, name, email, status, created_at
`

func (r *VolunteerRegsRepo) Create(ctx context.Context, reg volunteers.Registration) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO volunteer_registrations (`+registrationCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		reg.ID,
		reg.EventID,
		reg.UserID,
		reg.Name,
		reg.Email,
		string(reg.Status),
		reg.CreatedAt,
	)
	return err
}

func (r *VolunteerRegsRepo) GetByID(ctx context.Context, id string) (volunteers.Registration, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return volunteers.Registration{}, volunteers.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+registrationCols+`
		FROM volunteer_registrations
		WHERE id = $1
	`, id)

	return scanRegistration(row)
}

func (r *VolunteerRegsRepo) Update(ctx context.Context, reg volunteers.Registration) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE volunteer_registrations
		SET status = $2
		WHERE id = $1
	`,
		reg.ID,
		string(reg.Status),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return volunteers.ErrNotFound
	}
	return nil
}

func (r *VolunteerRegsRepo) ListByEvent(ctx context.Context, eventID string) ([]volunteers.Registration, error) {
	return r.list(ctx, `
		SELECT `+registrationCols+`
		FROM volunteer_registrations
		WHERE event_id = $1
		ORDER BY created_at ASC
	`, eventID)
}

func (r *VolunteerRegsRepo) ListByUser(ctx context.Context, userID string) ([]volunteers.Registration, error) {
	return r.list(ctx, `
		SELECT `+registrationCols+`
		FROM volunteer_registrations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
}

func (r *VolunteerRegsRepo) list(ctx context.Context, q string, args ...any) ([]volunteers.Registration, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]volunteers.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func scanRegistration(row rowScanner) (volunteers.Registration, error) {
	var reg volunteers.Registration
	var status string
	if err := row.Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.Name,
		&reg.Email,
		&status,
		&reg.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return volunteers.Registration{}, volunteers.ErrNotFound
		}
		return volunteers.Registration{}, err
	}
	reg.Status = volunteers.RegistrationStatus(status)
	return reg, nil
}
