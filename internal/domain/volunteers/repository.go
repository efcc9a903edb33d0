package volunteers

import "context"

type ApplicationRepository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	Update(ctx context.Context, a Application) error

	// List filtra por estado. status vacío trae todas.
	List(ctx context.Context, status ApplicationStatus) ([]Application, error)
}

type EventRepository interface {
	Create(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	Update(ctx context.Context, e Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Event, error)
}

type RegistrationRepository interface {
	Create(ctx context.Context, r Registration) error
	GetByID(ctx context.Context, id string) (Registration, error)
	Update(ctx context.Context, r Registration) error
	ListByEvent(ctx context.Context, eventID string) ([]Registration, error)
	ListByUser(ctx context.Context, userID string) ([]Registration, error)
}
