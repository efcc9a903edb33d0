package community

import "context"

type Repository interface {
	Create(ctx context.Context, p Post) error
	GetByID(ctx context.Context, id string) (Post, error)
	List(ctx context.Context) ([]Post, error) // newest first
	Delete(ctx context.Context, id string) error

	// DeleteByLostReport borra todos los posts que referencian el reporte.
	DeleteByLostReport(ctx context.Context, lostReportID string) error
	ListByLostReport(ctx context.Context, lostReportID string) ([]Post, error)
}
