package notifications

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) error
	List(ctx context.Context) ([]Notification, error) // newest first
	MarkRead(ctx context.Context, id string) error
}
