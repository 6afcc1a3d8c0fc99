package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
)

const collectionTransactions = "transactions"

// TransactionRepository is the append-only economy ledger. Records are never
// updated or deleted.
type TransactionRepository struct {
	col *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{col: db.Collection(collectionTransactions)}
}

func (r *TransactionRepository) Append(ctx context.Context, tx *domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if tx.ID == "" {
		tx.ID = newID()
	}
	if _, err := r.col.InsertOne(ctx, tx); err != nil {
		return storeErr(fmt.Errorf("append transaction: %w", err))
	}
	return nil
}

// FindRecentByUser returns the newest transactions where the user is either
// party, most recent first.
func (r *TransactionRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"from_user_id": userID},
		{"to_user_id": userID},
	}}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr(fmt.Errorf("list transactions: %w", err))
	}
	var txs []*domain.Transaction
	if err := cur.All(ctx, &txs); err != nil {
		return nil, storeErr(fmt.Errorf("decode transactions: %w", err))
	}
	return txs, nil
}

// EnsureIndexes creates the per-party recency indexes the dashboard query uses.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "from_user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "to_user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
