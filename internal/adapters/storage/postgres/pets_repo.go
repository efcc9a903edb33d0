package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"petverse/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, name, pet_type, breed, age, description,
			price, image_url, available, adopted,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID,
		p.Name,
		string(p.Type),
		toNullString(p.Breed),
		p.Age,
		toNullString(p.Description),
		toNullInt(p.Price),
		toNullString(p.ImageURL),
		p.Available,
		p.Adopted,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			pet_type = $3,
			breed = $4,
			age = $5,
			description = $6,
			price = $7,
			image_url = $8,
			available = $9,
			adopted = $10,
			updated_at = $11
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		string(p.Type),
		toNullString(p.Breed),
		p.Age,
		toNullString(p.Description),
		toNullInt(p.Price),
		toNullString(p.ImageURL),
		p.Available,
		p.Adopted,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, pet_type, breed, age, description,
		       price, image_url, available, adopted, created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	return scanPet(row)
}

func (r *PetsRepo) List(ctx context.Context, onlyAvailable bool) ([]pets.Pet, error) {
	q := `
		SELECT id, name, pet_type, breed, age, description,
		       price, image_url, available, adopted, created_at, updated_at
		FROM pets
	`
	if onlyAvailable {
		q += ` WHERE available = TRUE AND adopted = FALSE`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var typ string
	var breed, desc, img sql.NullString
	var price sql.NullInt64
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&typ,
		&breed,
		&p.Age,
		&desc,
		&price,
		&img,
		&p.Available,
		&p.Adopted,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	p.Type = pets.PetType(typ)
	p.Breed = fromNullString(breed)
	p.Description = fromNullString(desc)
	p.Price = fromNullInt(price)
	p.ImageURL = fromNullString(img)
	return p, nil
}
