package parliaments

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for parliament domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context) ([]Parliament, error)
	Find(ctx context.Context, id uuid.UUID) (*Parliament, error)
	FindByNumber(ctx context.Context, number int) (*Parliament, error)
	// Ensure returns the parliament with the given number, creating it
	// if necessary.
	Ensure(ctx context.Context, number int) (*Parliament, error)
	SetCurrent(ctx context.Context, number int) (*Parliament, error)
}
