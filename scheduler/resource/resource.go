package resource

import "context"

// R is the resource interface.
type R interface {
	Acquire(ctx context.Context) bool
	Release()
}
