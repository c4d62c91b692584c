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

const collectionJobs = "jobs"

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

// Create inserts a new job document.
func (r *JobRepository) Create(ctx context.Context, j *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if j.ID == "" {
		j.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, j); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var j domain.Job
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return &j, nil
}

// List returns a page of published, non-hidden jobs, newest first, along
// with the total count for the filter.
func (r *JobRepository) List(ctx context.Context, f ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"status": domain.JobStatusPublished,
		"hidden": false,
	}
	if f.JobType != "" {
		filter["job_type"] = f.JobType
	}
	if f.RemoteType != "" {
		filter["remote_type"] = f.RemoteType
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: f.Search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"company_name": pattern},
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer cur.Close(ctx)

	var jobs []*domain.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, 0, fmt.Errorf("decode jobs: %w", err)
	}
	return jobs, total, nil
}

// ListPublished returns every published, non-hidden job. Used by the alert
// matcher, which needs the full set rather than a page.
func (r *JobRepository) ListPublished(ctx context.Context) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"status": domain.JobStatusPublished, "hidden": false})
	if err != nil {
		return nil, fmt.Errorf("list published jobs: %w", err)
	}
	defer cur.Close(ctx)

	var jobs []*domain.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) IncrementViewCount(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"view_count": 1}})
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// UpsertBySourceHash inserts or refreshes an ingested job keyed by its
// source hash. Mutable fields are always overwritten; identity and
// publication fields are written only on first insert.
func (r *JobRepository) UpsertBySourceHash(ctx context.Context, j *domain.Job) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	newID := primitive.NewObjectID().Hex()
	update := bson.M{
		"$set": bson.M{
			"title":        j.Title,
			"description":  j.Description,
			"company_name": j.CompanyName,
			"job_type":     j.JobType,
			"remote_type":  j.RemoteType,
			"location":     j.Location,
			"updated_at":   j.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":           newID,
			"status":        j.Status,
			"is_admin_post": j.IsAdminPost,
			"hidden":        false,
			"view_count":    int64(0),
			"source_url":    j.SourceURL,
			"published_at":  j.PublishedAt,
			"created_at":    j.CreatedAt,
		},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"source_hash": j.SourceHash}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("upsert job: %w", err)
	}

	if res.UpsertedCount == 1 {
		j.ID = newID
		return true, nil
	}

	var existing struct {
		ID string `bson:"_id"`
	}
	if err := r.col.FindOne(ctx, bson.M{"source_hash": j.SourceHash}).Decode(&existing); err != nil {
		return false, fmt.Errorf("read back upserted job: %w", err)
	}
	j.ID = existing.ID
	return false, nil
}

// HideStale marks hidden every visible job created before cutoff or whose
// expires_at has passed, in one batched write. Already-hidden jobs never
// match, so repeated sweeps over the same window report zero.
func (r *JobRepository) HideStale(ctx context.Context, cutoff, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"hidden": false,
		"$or": bson.A{
			bson.M{"created_at": bson.M{"$lt": cutoff}},
			bson.M{"expires_at": bson.M{"$lt": now}},
		},
	}
	update := bson.M{
		"$set": bson.M{"hidden": true, "hidden_at": now, "updated_at": now},
	}

	res, err := r.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("hide stale jobs: %w", err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the listing and ingest indexes.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "hidden", Value: 1}, {Key: "created_at", Value: -1}}},
		{
			Keys: bson.D{{Key: "source_hash", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"source_hash": bson.M{"$type": "string"}}),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
