package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
	"github.com/skyrise-games/airport-tycoon/internal/core/ports"
)

const collectionAircraft = "aircraft"

type AircraftRepository struct {
	col *mongo.Collection
}

func NewAircraftRepository(db *mongo.Database) *AircraftRepository {
	return &AircraftRepository{col: db.Collection(collectionAircraft)}
}

func (r *AircraftRepository) Create(ctx context.Context, aircraft *domain.Aircraft) (*domain.Aircraft, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if aircraft.ID == "" {
		aircraft.ID = newID()
	}
	if _, err := r.col.InsertOne(ctx, aircraft); err != nil {
		return nil, storeErr(fmt.Errorf("insert aircraft: %w", err))
	}
	return aircraft, nil
}

// FindOwned retrieves an aircraft only when it belongs to ownerID. Someone
// else's aircraft is indistinguishable from a missing one.
func (r *AircraftRepository) FindOwned(ctx context.Context, aircraftID, ownerID string) (*domain.Aircraft, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Aircraft
	err := r.col.FindOne(ctx, bson.M{"_id": aircraftID, "owner_id": ownerID}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAircraftNotFound
		}
		return nil, storeErr(fmt.Errorf("find aircraft: %w", err))
	}
	return &a, nil
}

func (r *AircraftRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Aircraft, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, storeErr(fmt.Errorf("list aircraft: %w", err))
	}
	var aircraft []*domain.Aircraft
	if err := cur.All(ctx, &aircraft); err != nil {
		return nil, storeErr(fmt.Errorf("decode aircraft: %w", err))
	}
	return aircraft, nil
}

func (r *AircraftRepository) Save(ctx context.Context, aircraft *domain.Aircraft) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": aircraft.ID}, aircraft)
	if err != nil {
		return storeErr(fmt.Errorf("save aircraft: %w", err))
	}
	if res.MatchedCount == 0 {
		return domain.ErrAircraftNotFound
	}
	return nil
}

// MarkFreeFloating parks the aircraft with no location, the state a reclaimed
// aircraft stays in until its owner parks it somewhere again.
func (r *AircraftRepository) MarkFreeFloating(ctx context.Context, aircraftID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status":     string(domain.StatusParked),
			"updated_at": time.Now().UTC(),
		},
		"$unset": bson.M{"current_location": ""},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": aircraftID}, update)
	if err != nil {
		return storeErr(fmt.Errorf("mark aircraft free-floating: %w", err))
	}
	if res.MatchedCount == 0 {
		return domain.ErrAircraftNotFound
	}
	return nil
}

// FindDueArrivals returns in-flight aircraft whose arrival time has passed.
func (r *AircraftRepository) FindDueArrivals(ctx context.Context, now time.Time) ([]*domain.Aircraft, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"status":                   string(domain.StatusInFlight),
		"active_route.arrival_time": bson.M{"$lte": now.UTC()},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, storeErr(fmt.Errorf("find due arrivals: %w", err))
	}
	var aircraft []*domain.Aircraft
	if err := cur.All(ctx, &aircraft); err != nil {
		return nil, storeErr(fmt.Errorf("decode due arrivals: %w", err))
	}
	return aircraft, nil
}

// CountByOwner ranks owners by fleet size, largest first.
func (r *AircraftRepository) CountByOwner(ctx context.Context, limit int) ([]ports.FleetCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$owner_id",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr(fmt.Errorf("rank fleets: %w", err))
	}

	var rows []struct {
		OwnerID string `bson:"_id"`
		Count   int    `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, storeErr(fmt.Errorf("decode fleet ranks: %w", err))
	}
	counts := make([]ports.FleetCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, ports.FleetCount{OwnerID: row.OwnerID, Count: row.Count})
	}
	return counts, nil
}

// EnsureIndexes creates the ownership index and the arrival-settlement index.
func (r *AircraftRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "active_route.arrival_time", Value: 1},
		}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
