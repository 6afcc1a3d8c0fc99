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

const collectionSettings = "system_settings"

type SettingRepository struct {
	col *mongo.Collection
}

func NewSettingRepository(db *mongo.Database) *SettingRepository {
	return &SettingRepository{col: db.Collection(collectionSettings)}
}

func (r *SettingRepository) Find(ctx context.Context, key string) (*domain.Setting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Setting
	if err := r.col.FindOne(ctx, bson.M{"key": key}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSettingNotFound
		}
		return nil, storeErr(fmt.Errorf("find setting: %w", err))
	}
	return &s, nil
}

func (r *SettingRepository) FindAll(ctx context.Context) ([]*domain.Setting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return nil, storeErr(fmt.Errorf("list settings: %w", err))
	}
	var settings []*domain.Setting
	if err := cur.All(ctx, &settings); err != nil {
		return nil, storeErr(fmt.Errorf("decode settings: %w", err))
	}
	return settings, nil
}

// Upsert writes the setting keyed by its Key, creating it when missing.
func (r *SettingRepository) Upsert(ctx context.Context, setting *domain.Setting) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"value":       setting.Value,
			"description": setting.Description,
			"updated_at":  setting.UpdatedAt.UTC(),
		},
		"$setOnInsert": bson.M{
			"_id": newID(),
			"key": setting.Key,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.col.UpdateOne(ctx, bson.M{"key": setting.Key}, update, opts); err != nil {
		return storeErr(fmt.Errorf("upsert setting: %w", err))
	}
	return nil
}

// EnsureIndexes enforces one document per setting key.
func (r *SettingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "key", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
