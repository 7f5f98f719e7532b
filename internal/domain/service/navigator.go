package service

import (
	"context"

	"addrcard/internal/domain/entity"
)

// Navigator signals a screen transition. It has no result: the caller does
// not wait for the target screen.
type Navigator interface {
	GoTo(ctx context.Context, screen entity.Screen)
}
