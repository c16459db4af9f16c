package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
)

const rolesCollection = "roles"

type MongoRoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *MongoRoleRepository {
	return &MongoRoleRepository{coll: db.Collection(rolesCollection)}
}

type mongoRole struct {
	ID          primitive.ObjectID       `bson:"_id,omitempty"`
	Name        string                   `bson:"name"`
	Description string                   `bson:"description,omitempty"`
	Active      bool                     `bson:"active"`
	Permissions []domain.PermissionEntry `bson:"permissions"`
	CreatedAt   time.Time                `bson:"created_at"`
	UpdatedAt   time.Time                `bson:"updated_at"`
}

// FindActiveByName returns (nil, nil) for a role that does not exist or is
// inactive; permission resolution treats both the same way.
func (r *MongoRoleRepository) FindActiveByName(ctx context.Context, name string) (*domain.Role, error) {
	var mr mongoRole
	if err := r.coll.FindOne(ctx, bson.M{"name": name, "active": true}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find role: %w", err)
	}

	return &domain.Role{
		ID:          mr.ID.Hex(),
		Name:        mr.Name,
		Description: mr.Description,
		Active:      mr.Active,
		Permissions: mr.Permissions,
		CreatedAt:   mr.CreatedAt,
		UpdatedAt:   mr.UpdatedAt,
	}, nil
}
