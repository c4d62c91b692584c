package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linkroom/linkroom-api/internal/core/domain"
)

const collectionAlerts = "job_alerts"

type AlertRepository struct {
	col *mongo.Collection
}

func NewAlertRepository(db *mongo.Database) *AlertRepository {
	return &AlertRepository{col: db.Collection(collectionAlerts)}
}

func (r *AlertRepository) Create(ctx context.Context, a *domain.Alert) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

func (r *AlertRepository) ListActive(ctx context.Context) ([]*domain.Alert, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Alert
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode alerts: %w", err)
	}
	return out, nil
}

func (r *AlertRepository) StampSent(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_sent_at": at}})
	if err != nil {
		return fmt.Errorf("stamp alert: %w", err)
	}
	return nil
}

// EnsureIndexes creates the active-alert scan index.
func (r *AlertRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
