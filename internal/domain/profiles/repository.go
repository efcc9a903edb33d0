package profiles

import "context"

type Repository interface {
	// Create retorna ErrDuplicate ante una violación de unicidad
	// (id, username o email). Esa es la señal canónica de duplicado;
	// los lookups previos son solo cortesía para la UI.
	Create(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id string) (Profile, error)
	Update(ctx context.Context, p Profile) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Profile, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
