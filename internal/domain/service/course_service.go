package service

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
)

// CourseService defines the interface for catalog and course interaction
// operations. All mutating operations invalidate the course cache.
type CourseService interface {
	// Create adds a course to the catalog (admin only)
	Create(ctx context.Context, req *request.UpsertCourseRequest) (*entity.Course, error)

	// Update rewrites course fields (admin only)
	Update(ctx context.Context, courseID uint, req *request.UpsertCourseRequest) (*entity.Course, error)

	// GetPublic returns the public view of one course, cache first
	GetPublic(ctx context.Context, courseID uint) (*entity.Course, error)

	// ListPublic returns the public catalog, cache first
	ListPublic(ctx context.Context) ([]*entity.Course, error)

	// GetContent returns the full lecture list for a purchased course.
	// Entitlement is checked against the orders ledger; admins bypass it.
	GetContent(ctx context.Context, user *entity.User, courseID uint) ([]entity.CourseContent, error)

	// AddQuestion posts a question on a content item
	AddQuestion(ctx context.Context, user *entity.User, req *request.AddQuestionRequest) (*entity.Course, error)

	// AddAnswer posts an answer under a question, notifying the asker
	AddAnswer(ctx context.Context, user *entity.User, req *request.AddAnswerRequest) (*entity.Course, error)

	// AddReview posts a review on a purchased course and recomputes the
	// ratings mean
	AddReview(ctx context.Context, user *entity.User, courseID uint, req *request.AddReviewRequest) (*entity.Course, error)

	// AddReply posts an admin reply under a review, notifying the reviewer
	AddReply(ctx context.Context, user *entity.User, req *request.AddReplyRequest) (*entity.Course, error)

	// ListAll returns every course unprojected (admin only)
	ListAll(ctx context.Context) ([]*entity.Course, error)

	// Delete soft-deletes a course (admin only)
	Delete(ctx context.Context, courseID uint) error
}
