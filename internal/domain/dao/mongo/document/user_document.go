// Package document defines the MongoDB document structs for persistence.
// These are kept separate from domain entities so storage concerns (object
// ids, soft-delete markers, field naming) stay out of the domain layer.
package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssetDocument is an embedded asset reference.
type AssetDocument struct {
	PublicID string `bson:"public_id,omitempty"`
	URL      string `bson:"url,omitempty"`
}

// UserDocument represents a user in MongoDB.
type UserDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	NumericID  uint               `bson:"numeric_id"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email"`
	Password   string             `bson:"password"`
	Avatar     AssetDocument      `bson:"avatar,omitempty"`
	Role       string             `bson:"role"`
	IsVerified bool               `bson:"is_verified"`
	Courses    []uint             `bson:"courses"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
	DeletedAt  *time.Time         `bson:"deleted_at,omitempty"`
}

// CollectionName returns the MongoDB collection name for users.
func (UserDocument) CollectionName() string {
	return "users"
}

// IsDeleted returns true if the document has been soft-deleted.
func (d *UserDocument) IsDeleted() bool {
	return d.DeletedAt != nil
}
