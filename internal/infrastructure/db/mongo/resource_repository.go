package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
	"github.com/shopkeeper/shopkeeper-api/internal/core/ports"
)

// MongoResourceStore gives the ownership gate and the resource handlers typed
// access to one domain collection. Instances are created only through
// NewResourceRegistry, so collection names come from the closed resource-type
// vocabulary, never from request input.
type MongoResourceStore struct {
	coll *mongo.Collection
}

// NewResourceRegistry builds the static resource-type → store dictionary for
// every known resource type.
func NewResourceRegistry(db *mongo.Database) ports.ResourceRegistry {
	registry := make(ports.ResourceRegistry)
	for _, t := range domain.KnownResourceTypes() {
		registry[t] = &MongoResourceStore{coll: db.Collection(string(t))}
	}
	return registry
}

// ownershipProjection limits the lookup to the three owner-like fields.
var ownershipProjection = bson.M{"created_by": 1, "assigned_to": 1, "sales_rep": 1}

func (s *MongoResourceStore) FindOwnership(ctx context.Context, id string) (*domain.Ownership, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrResourceNotFound
	}

	var own domain.Ownership
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(ownershipProjection)).Decode(&own)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("find ownership: %w", err)
	}
	return &own, nil
}

func (s *MongoResourceStore) FindByID(ctx context.Context, id string) (map[string]any, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrResourceNotFound
	}

	var doc bson.M
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("find resource: %w", err)
	}

	if v, ok := doc["_id"].(primitive.ObjectID); ok {
		doc["_id"] = v.Hex()
	}
	return doc, nil
}

func (s *MongoResourceStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}
