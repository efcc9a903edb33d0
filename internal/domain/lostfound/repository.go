package lostfound

import "context"

type Repository interface {
	Create(ctx context.Context, r Report) error
	GetByID(ctx context.Context, id string) (Report, error)
	Update(ctx context.Context, r Report) error

	// ListApproved trae reportes visibles al público. typ vacío trae ambos.
	ListApproved(ctx context.Context, typ ReportType) ([]Report, error)
	ListPending(ctx context.Context) ([]Report, error)
	ListReviewed(ctx context.Context) ([]Report, error)
}
