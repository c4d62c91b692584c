package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linkroom/linkroom-api/internal/core/domain"
	"github.com/linkroom/linkroom-api/internal/core/ports"
)

const collectionSettlements = "settlements"

type SettlementRepository struct {
	col *mongo.Collection
}

func NewSettlementRepository(db *mongo.Database) *SettlementRepository {
	return &SettlementRepository{col: db.Collection(collectionSettlements)}
}

func (r *SettlementRepository) CreatePending(ctx context.Context, s *domain.Settlement) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert settlement: %w", err)
	}
	return nil
}

func (r *SettlementRepository) FindByReference(ctx context.Context, reference string) (*domain.Settlement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Settlement
	if err := r.col.FindOne(ctx, bson.M{"paystack_ref": reference}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSettlementNotFound
		}
		return nil, fmt.Errorf("find settlement: %w", err)
	}
	return &s, nil
}

// Activate performs the pending → active transition. The filter matches a
// pending document only, so exactly one verify call per reference observes
// a modification; replays match nothing and report false.
func (r *SettlementRepository) Activate(ctx context.Context, reference string, upd ports.SettlementActivation) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status":              domain.SettlementActive,
		"last_payment_status": upd.LastPaymentStatus,
		"started_at":          upd.StartedAt,
		"updated_at":          upd.UpdatedAt,
	}
	if upd.ExpiresAt != nil {
		set["expires_at"] = *upd.ExpiresAt
	}
	if upd.RemainingJobCredits > 0 {
		set["remaining_job_credits"] = upd.RemainingJobCredits
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"paystack_ref": reference, "status": domain.SettlementPending},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, fmt.Errorf("activate settlement: %w", err)
	}
	if res.ModifiedCount == 1 {
		return true, nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"paystack_ref": reference}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("activate settlement: %w", err)
	}
	if n == 0 {
		return false, domain.ErrSettlementNotFound
	}
	return false, nil
}

// EnsureIndexes creates the unique processor-reference index.
func (r *SettlementRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "paystack_ref", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "org_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
