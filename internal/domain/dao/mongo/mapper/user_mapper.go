// Package mapper converts between domain entities and MongoDB documents.
package mapper

import (
	"github.com/jrjohn/academy-cloud-go/internal/domain/dao/mongo/document"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// UserMapper converts between entity.User and document.UserDocument.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToDocument converts a user entity to its MongoDB document.
func (m *UserMapper) ToDocument(user *entity.User) *document.UserDocument {
	return &document.UserDocument{
		NumericID: user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.Password,
		Avatar: document.AssetDocument{
			PublicID: user.Avatar.PublicID,
			URL:      user.Avatar.URL,
		},
		Role:       string(user.Role),
		IsVerified: user.IsVerified,
		Courses:    user.Courses,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
		DeletedAt:  user.DeletedAt,
	}
}

// ToEntity converts a MongoDB document to a user entity.
func (m *UserMapper) ToEntity(doc *document.UserDocument) *entity.User {
	return &entity.User{
		ID:       doc.NumericID,
		Name:     doc.Name,
		Email:    doc.Email,
		Password: doc.Password,
		Avatar: entity.Asset{
			PublicID: doc.Avatar.PublicID,
			URL:      doc.Avatar.URL,
		},
		Role:       entity.UserRole(doc.Role),
		IsVerified: doc.IsVerified,
		Courses:    doc.Courses,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
		DeletedAt:  doc.DeletedAt,
	}
}

// ToEntities converts a slice of documents to entities.
func (m *UserMapper) ToEntities(docs []*document.UserDocument) []*entity.User {
	users := make([]*entity.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, m.ToEntity(doc))
	}
	return users
}
