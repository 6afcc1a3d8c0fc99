package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ArrivalSettler credits route income for flights whose arrival time passed.
type ArrivalSettler interface {
	SettleArrivals(ctx context.Context, now time.Time) (int, error)
}

// ArrivalRunner drives arrival settlement on a short fixed interval. Flights
// land between ticks, so the interval bounds how stale an in-flight status can
// be; settlement itself is idempotent per aircraft.
type ArrivalRunner struct {
	fleet    ArrivalSettler
	interval time.Duration
	log      zerolog.Logger
}

func NewArrivalRunner(fleet ArrivalSettler, interval time.Duration, log zerolog.Logger) *ArrivalRunner {
	return &ArrivalRunner{fleet: fleet, interval: interval, log: log}
}

// Start launches the tick loop. Stops when ctx is cancelled.
func (r *ArrivalRunner) Start(ctx context.Context) {
	go r.run(ctx)
}

func (r *ArrivalRunner) run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info().Dur("interval", r.interval).Msg("arrival settlement started")
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("arrival settlement stopped")
			return
		case <-ticker.C:
			n, err := r.fleet.SettleArrivals(ctx, time.Now().UTC())
			if err != nil {
				r.log.Error().Err(err).Msg("arrival settlement failed")
				continue
			}
			if n > 0 {
				r.log.Info().Int("settled", n).Msg("flight arrivals settled")
			}
		}
	}
}
