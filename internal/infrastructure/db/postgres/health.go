package postgres

import (
	"context"
	"time"
)

const pingTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthy pings the database with a short timeout.
func Healthy(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return p.Ping(ctx)
}
