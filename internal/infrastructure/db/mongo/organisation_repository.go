package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linkroom/linkroom-api/internal/core/domain"
)

const collectionOrganisations = "organisations"

type OrganisationRepository struct {
	col *mongo.Collection
}

func NewOrganisationRepository(db *mongo.Database) *OrganisationRepository {
	return &OrganisationRepository{col: db.Collection(collectionOrganisations)}
}

type mongoOrganisation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	OwnerUserID string             `bson:"owner_user_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *OrganisationRepository) Create(ctx context.Context, org *domain.Organisation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOrganisation{
		Name:        org.Name,
		OwnerUserID: org.OwnerUserID,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert organisation: %w", err)
	}
	org.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *OrganisationRepository) FindByID(ctx context.Context, id string) (*domain.Organisation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrgNotFound
	}

	var doc mongoOrganisation
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrgNotFound
		}
		return nil, fmt.Errorf("find organisation: %w", err)
	}
	return &domain.Organisation{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		OwnerUserID: doc.OwnerUserID,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
