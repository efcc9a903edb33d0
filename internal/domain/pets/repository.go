package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)

	// List: onlyAvailable filtra el catálogo público; newest first.
	List(ctx context.Context, onlyAvailable bool) ([]Pet, error)
	Delete(ctx context.Context, id string) error
}
