package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AirportLock serialises spot allocation and sweeping per airport with a
// best-effort Redis lease. Key format: airport_lock:<airport_id>
//
// The lease is advisory: the persistence layer's conditional occupancy update
// remains the hard guarantee, so losing Redis degrades fairness, not safety.
type AirportLock struct {
	client *redis.Client
}

// NewAirportLock creates an AirportLock wrapping the given Redis client.
func NewAirportLock(client *redis.Client) *AirportLock {
	return &AirportLock{client: client}
}

// TryLock attempts to take the airport's lease without blocking. It reports
// false when another holder has it; the TTL bounds how long a crashed holder
// can keep the airport blocked.
func (l *AirportLock) TryLock(ctx context.Context, airportID string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(airportID), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("airport lock: %w", err)
	}
	return ok, nil
}

// Unlock releases the airport's lease.
func (l *AirportLock) Unlock(ctx context.Context, airportID string) error {
	return l.client.Del(ctx, l.key(airportID)).Err()
}

func (l *AirportLock) key(airportID string) string {
	return fmt.Sprintf("airport_lock:%s", airportID)
}
