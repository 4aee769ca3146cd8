package planet

import "context"

// Gateway is the persistence boundary for planets. Implementations signal a
// missing record with a not_found typed error so callers can tell it apart
// from other storage failures. The gateway instance is constructed at startup
// and injected; nothing here is a package global.
type Gateway interface {
	FindAll(ctx context.Context) ([]Planet, error)
	FindByID(ctx context.Context, id int) (*Planet, error)
	Create(ctx context.Context, input Input, actor string) (*Planet, error)
	Replace(ctx context.Context, id int, input Input, actor string) (*Planet, error)
	SetPhoto(ctx context.Context, id int, filename string) (*Planet, error)
	Delete(ctx context.Context, id int) error
}
