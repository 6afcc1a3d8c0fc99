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

const collectionProfiles = "game_profiles"

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

// Create inserts a new game profile. A second profile for the same user is
// rejected by the unique user_id index and surfaces as domain.ErrProfileExists.
func (r *ProfileRepository) Create(ctx context.Context, profile *domain.GameProfile) (*domain.GameProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if profile.ID == "" {
		profile.ID = newID()
	}
	if _, err := r.col.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProfileExists
		}
		return nil, storeErr(fmt.Errorf("insert profile: %w", err))
	}
	return profile, nil
}

func (r *ProfileRepository) FindByUser(ctx context.Context, userID string) (*domain.GameProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.GameProfile
	if err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, storeErr(fmt.Errorf("find profile: %w", err))
	}
	return &p, nil
}

// Save replaces the whole profile document.
func (r *ProfileRepository) Save(ctx context.Context, profile *domain.GameProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	if err != nil {
		return storeErr(fmt.Errorf("save profile: %w", err))
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) TopByBalance(ctx context.Context, limit int) ([]*domain.GameProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "balance", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeErr(fmt.Errorf("rank profiles: %w", err))
	}
	var profiles []*domain.GameProfile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, storeErr(fmt.Errorf("decode profiles: %w", err))
	}
	return profiles, nil
}

// EnsureIndexes creates the 1:1 user constraint and the leaderboard sort index.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "balance", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
