package ports

import (
	"context"
	"time"
)

// UnitOfWork groups the reads and writes of one logical economic operation
// behind a transactional boundary. The document store has no cross-document
// atomicity of its own; every multi-document mutation in the services runs
// inside Execute so a failure mid-sequence rolls the whole operation back.
type UnitOfWork interface {
	// Execute runs fn inside a store transaction. Repositories called with
	// the context passed to fn participate in that transaction.
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

// AirportLocker serialises mutations on a single airport document across
// request handling and the reclamation sweep. It is a lease, not the
// correctness guard: spot occupancy is still decided by the atomic
// conditional update in AirportRepository.OccupySpot.
type AirportLocker interface {
	// TryLock attempts to take the airport lease without blocking. It returns
	// false when another operation currently holds it.
	TryLock(ctx context.Context, airportID string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, airportID string) error
}
