package adoptions

import "context"

type Repository interface {
	Create(ctx context.Context, a Adoption) error
	GetByID(ctx context.Context, id string) (Adoption, error)
	Update(ctx context.Context, a Adoption) error
	ListAll(ctx context.Context) ([]Adoption, error)
	ListByUser(ctx context.Context, userID string) ([]Adoption, error)
}
