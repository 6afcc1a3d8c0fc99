package scheduler

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/skyrise-games/airport-tycoon/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AirportLister enumerates the airports a sweep must visit.
type AirportLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// SpotReleaser reclaims expired spots on one airport.
type SpotReleaser interface {
	ReleaseExpired(ctx context.Context, airportID string, now time.Time) (int, error)
}

// Sweeper periodically reclaims expired parking spots. Each tick it lists all
// airports and routes them to a fixed set of workers using consistent hashing
// on the airport id, so the same airport is never swept by two workers at once
// and one slow airport cannot stall the rest.
type Sweeper struct {
	airports AirportLister
	parking  SpotReleaser
	interval time.Duration
	workers  []chan string
	log      zerolog.Logger
}

// NewSweeper creates a Sweeper with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewSweeper(airports AirportLister, parking SpotReleaser, interval time.Duration, numWorkers int, log zerolog.Logger) *Sweeper {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &Sweeper{
		airports: airports,
		parking:  parking,
		interval: interval,
		workers:  make([]chan string, numWorkers),
		log:      log,
	}
	for i := range s.workers {
		s.workers[i] = make(chan string, channelBuffer)
	}
	return s
}

// Start launches the worker goroutines and the tick loop. Everything stops
// when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	for i, ch := range s.workers {
		go s.runWorker(ctx, i, ch)
	}
	go s.runTicker(ctx)
}

// SweepOnce enqueues every airport for one reclamation pass.
func (s *Sweeper) SweepOnce(ctx context.Context) error {
	ids, err := s.airports.ListIDs(ctx)
	if err != nil {
		metrics.SweepFailuresTotal.Inc()
		return err
	}
	for _, id := range ids {
		select {
		case s.workers[s.shardIndex(id)] <- id:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (s *Sweeper) runTicker(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Int("workers", len(s.workers)).Msg("parking sweeper started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("parking sweeper stopped")
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				s.log.Error().Err(err).Msg("sweep scheduling failed")
			}
		}
	}
}

// shardIndex maps an airport id deterministically to a worker index.
func (s *Sweeper) shardIndex(airportID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(airportID))
	return int(h.Sum32()) % len(s.workers)
}

func (s *Sweeper) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case airportID, ok := <-ch:
			if !ok {
				return
			}
			timer := prometheus.NewTimer(metrics.SweepDuration)
			_, err := s.parking.ReleaseExpired(ctx, airportID, time.Now().UTC())
			timer.ObserveDuration()
			if err != nil {
				metrics.SweepFailuresTotal.Inc()
				s.log.Error().Err(err).
					Str("airport_id", airportID).
					Int("worker_id", id).
					Msg("airport sweep failed")
			}
		}
	}
}
