// Package metrics defines and registers all custom Prometheus metrics for the
// airport-tycoon economy API. It is the single source of truth for metric
// names, labels, and help strings; metrics register themselves with the
// default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "airtycoon"

// ── Economy metrics ───────────────────────────────────────────────────────────

// TransactionsRecordedTotal counts ledger entries appended, by type
// (purchase, upgrade, parking-fee, service, route-income).
var TransactionsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_recorded_total",
		Help:      "Total number of transactions appended to the economy ledger.",
	},
	[]string{"type"},
)

// AircraftPurchasedTotal counts aircraft purchases by catalog model.
var AircraftPurchasedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "aircraft_purchased_total",
		Help:      "Total number of aircraft purchased, by model.",
	},
	[]string{"model"},
)

// ── Parking metrics ───────────────────────────────────────────────────────────

// ParkingConflictsTotal counts parking attempts that lost an allocation race
// (spot taken between read and write, or airport lease busy).
var ParkingConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "parking_conflicts_total",
		Help:      "Total number of parking requests rejected due to allocation conflicts.",
	},
)

// SpotsReleasedTotal counts parking spots reclaimed by the sweeper.
var SpotsReleasedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "spots_released_total",
		Help:      "Total number of expired parking spots released by the reclamation sweep.",
	},
)

// ── Background job metrics ────────────────────────────────────────────────────

// SweepDuration measures the reclamation pass over a single airport.
var SweepDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sweep_duration_seconds",
		Help:      "Duration of the parking reclamation sweep of one airport.",
		Buckets:   prometheus.DefBuckets,
	},
)

// SweepFailuresTotal counts per-airport sweep failures. One bad airport does
// not abort the sweep; it is counted here and skipped.
var SweepFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweep_failures_total",
		Help:      "Total number of per-airport failures during reclamation sweeps.",
	},
)

// ArrivalsSettledTotal counts flights settled on arrival.
var ArrivalsSettledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "arrivals_settled_total",
		Help:      "Total number of flight arrivals settled with route income credited.",
	},
)
