package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
)

const collectionAirports = "airports"

type AirportRepository struct {
	col *mongo.Collection
}

func NewAirportRepository(db *mongo.Database) *AirportRepository {
	return &AirportRepository{col: db.Collection(collectionAirports)}
}

func (r *AirportRepository) Create(ctx context.Context, airport *domain.Airport) (*domain.Airport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if airport.ID == "" {
		airport.ID = newID()
	}
	if _, err := r.col.InsertOne(ctx, airport); err != nil {
		return nil, storeErr(fmt.Errorf("insert airport: %w", err))
	}
	return airport, nil
}

func (r *AirportRepository) FindByID(ctx context.Context, id string) (*domain.Airport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Airport
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAirportNotFound
		}
		return nil, storeErr(fmt.Errorf("find airport: %w", err))
	}
	return &a, nil
}

func (r *AirportRepository) FindFirstByOwner(ctx context.Context, ownerID string) (*domain.Airport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})
	var a domain.Airport
	if err := r.col.FindOne(ctx, bson.M{"owner_id": ownerID}, opts).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAirportNotFound
		}
		return nil, storeErr(fmt.Errorf("find home airport: %w", err))
	}
	return &a, nil
}

func (r *AirportRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Airport, error) {
	return r.findMany(ctx, bson.M{"owner_id": ownerID})
}

func (r *AirportRepository) FindNotOwnedBy(ctx context.Context, ownerID string) ([]*domain.Airport, error) {
	return r.findMany(ctx, bson.M{"owner_id": bson.M{"$ne": ownerID}})
}

func (r *AirportRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Airport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, storeErr(fmt.Errorf("list airports: %w", err))
	}
	var airports []*domain.Airport
	if err := cur.All(ctx, &airports); err != nil {
		return nil, storeErr(fmt.Errorf("decode airports: %w", err))
	}
	return airports, nil
}

// ListIDs returns every airport id, for the reclamation sweep.
func (r *AirportRepository) ListIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, storeErr(fmt.Errorf("list airport ids: %w", err))
	}

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, storeErr(fmt.Errorf("decode airport ids: %w", err))
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (r *AirportRepository) Save(ctx context.Context, airport *domain.Airport) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": airport.ID}, airport)
	if err != nil {
		return storeErr(fmt.Errorf("save airport: %w", err))
	}
	if res.MatchedCount == 0 {
		return domain.ErrAirportNotFound
	}
	return nil
}

// OccupySpot takes one free spot of the given type in a single conditional
// update. The $elemMatch filter only matches while such a spot exists, so of
// two concurrent allocations for the last free spot exactly one writes and the
// other observes ModifiedCount zero. The landlord's income statistics are
// credited in the same write.
func (r *AirportRepository) OccupySpot(ctx context.Context, airportID string, spotType domain.SpotType, aircraftID string, until time.Time, serviceFee float64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id": airportID,
		"parking_spots": bson.M{"$elemMatch": bson.M{
			"type":     string(spotType),
			"occupied": false,
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"parking_spots.$.occupied":       true,
			"parking_spots.$.occupied_by":    aircraftID,
			"parking_spots.$.occupied_until": until.UTC(),
			"updated_at":                     time.Now().UTC(),
		},
		"$inc": bson.M{
			"statistics.total_income":  serviceFee,
			"statistics.traffic_count": 1,
		},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return storeErr(fmt.Errorf("occupy spot: %w", err))
	}
	if res.ModifiedCount == 0 {
		return domain.ErrSpotConflict
	}
	return nil
}

// ClearExpiredSpots releases every spot whose lease ran out, in one write. The
// array filter re-checks expiry at write time, so spots already released or
// re-let since the caller's read are left alone and re-running is a no-op.
func (r *AirportRepository) ClearExpiredSpots(ctx context.Context, airportID string, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"parking_spots.$[s].occupied": false,
			"updated_at":                  now.UTC(),
		},
		"$unset": bson.M{
			"parking_spots.$[s].occupied_by":    "",
			"parking_spots.$[s].occupied_until": "",
		},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{
			"s.occupied":       true,
			"s.occupied_until": bson.M{"$lt": now.UTC()},
		}},
	})

	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": airportID}, update, opts); err != nil {
		return storeErr(fmt.Errorf("clear expired spots: %w", err))
	}
	return nil
}

func (r *AirportRepository) TopByLevelIncome(ctx context.Context, limit int) ([]*domain.Airport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{
			{Key: "level", Value: -1},
			{Key: "statistics.total_income", Value: -1},
		}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeErr(fmt.Errorf("rank airports: %w", err))
	}
	var airports []*domain.Airport
	if err := cur.All(ctx, &airports); err != nil {
		return nil, storeErr(fmt.Errorf("decode airports: %w", err))
	}
	return airports, nil
}

// EnsureIndexes creates the ownership and leaderboard indexes.
func (r *AirportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{
			{Key: "level", Value: -1},
			{Key: "statistics.total_income", Value: -1},
		}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
