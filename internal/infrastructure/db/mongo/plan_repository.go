package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linkroom/linkroom-api/internal/core/domain"
)

const collectionPlans = "plans"

// PlanRepository reads the pricing catalog. Plan IDs are stable slugs
// seeded at startup, not generated object ids.
type PlanRepository struct {
	col *mongo.Collection
}

func NewPlanRepository(db *mongo.Database) *PlanRepository {
	return &PlanRepository{col: db.Collection(collectionPlans)}
}

func (r *PlanRepository) FindByID(ctx context.Context, id string) (*domain.Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Plan
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return &p, nil
}

// Seed upserts the catalog so fresh deployments have plans to sell without
// a separate provisioning step. Existing documents are overwritten, which
// makes price changes a redeploy.
func (r *PlanRepository) Seed(ctx context.Context, plans []domain.Plan) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	for _, p := range plans {
		_, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("seed plan %s: %w", p.ID, err)
		}
	}
	return nil
}
