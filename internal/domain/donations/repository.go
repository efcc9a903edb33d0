package donations

import "context"

type Repository interface {
	Create(ctx context.Context, d Donation) error
	GetByID(ctx context.Context, id string) (Donation, error)
	Update(ctx context.Context, d Donation) error

	// List filtra por estado. status vacío trae todas.
	List(ctx context.Context, status Status) ([]Donation, error)
}
