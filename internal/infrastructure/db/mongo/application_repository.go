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
)

const collectionApplications = "applications"

// withdrawableStatuses are the states the conditional withdraw may match.
var withdrawableStatuses = bson.A{
	domain.ApplicationSubmitted,
	domain.ApplicationViewed,
	domain.ApplicationShortlisted,
}

type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

// Create inserts the application. The unique (job_id, applicant_user_id)
// index is the real duplicate fence; the service-level existence check only
// produces a friendlier error for the common case.
func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyApplied
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Application
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &a, nil
}

func (r *ApplicationRepository) ExistsForJobAndApplicant(ctx context.Context, jobID, applicantUserID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx,
		bson.M{"job_id": jobID, "applicant_user_id": applicantUserID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("count applications: %w", err)
	}
	return n > 0, nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantUserID string) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"applicant_user_id": applicantUserID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Application
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}
	return out, nil
}

// Withdraw transitions to withdrawn only when the current status is still
// withdrawable, so a racing recruiter decision cannot be overwritten.
func (r *ApplicationRepository) Withdraw(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": withdrawableStatuses}},
		bson.M{"$set": bson.M{
			"status":       domain.ApplicationWithdrawn,
			"withdrawn_at": at,
			"updated_at":   at,
		}},
	)
	if err != nil {
		return fmt.Errorf("withdraw application: %w", err)
	}
	if res.ModifiedCount == 1 {
		return nil
	}

	// Nothing matched. Distinguish a missing document from one that has
	// already reached a non-withdrawable state.
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("withdraw application: %w", err)
	}
	if n == 0 {
		return domain.ErrApplicationNotFound
	}
	return domain.ErrNotWithdrawable
}

// EnsureIndexes creates the duplicate-apply fence and the listing index.
func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "job_id", Value: 1}, {Key: "applicant_user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "applicant_user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
