package impl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/assets"
	"github.com/jrjohn/academy-cloud-go/internal/cache"
	"github.com/jrjohn/academy-cloud-go/internal/domain/dao"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/repository"
	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
	"github.com/jrjohn/academy-cloud-go/internal/outbox"
	"github.com/jrjohn/academy-cloud-go/internal/resilience"
	"github.com/jrjohn/academy-cloud-go/internal/ws"
	apperrors "github.com/jrjohn/academy-cloud-go/pkg/errors"
)

// maxWriteAttempts bounds the optimistic-concurrency retry loop. Conflicts
// need another writer landing between load and rewrite, so contention drains
// fast and three attempts cover it.
const maxWriteAttempts = 3

// courseService implements service.CourseService
type courseService struct {
	courseRepo       repository.CourseRepository
	orderRepo        repository.OrderRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	courseCache      *cache.CourseCache
	assetStore       assets.Store
	publisher        *outbox.Publisher
	hub              *ws.Hub
	logger           *zap.Logger
}

// NewCourseService creates a new CourseService instance
func NewCourseService(
	courseRepo repository.CourseRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	courseCache *cache.CourseCache,
	assetStore assets.Store,
	publisher *outbox.Publisher,
	hub *ws.Hub,
	logger *zap.Logger,
) service.CourseService {
	return &courseService{
		courseRepo:       courseRepo,
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		courseCache:      courseCache,
		assetStore:       assetStore,
		publisher:        publisher,
		hub:              hub,
		logger:           logger,
	}
}

func (s *courseService) Create(ctx context.Context, req *request.UpsertCourseRequest) (*entity.Course, error) {
	course := &entity.Course{}
	applyCourseRequest(course, req)

	if req.Thumbnail != "" {
		key, publicURL, err := s.assetStore.Upload(ctx, "courses", req.Thumbnail)
		if err != nil {
			return nil, err
		}
		course.Thumbnail = entity.Asset{PublicID: key, URL: publicURL}
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("course created", zap.Uint("course_id", course.ID))
	return course, nil
}

func (s *courseService) Update(ctx context.Context, courseID uint, req *request.UpsertCourseRequest) (*entity.Course, error) {
	var updated *entity.Course
	err := s.mutateCourse(ctx, courseID, func(course *entity.Course) error {
		applyCourseRequest(course, req)

		if req.Thumbnail != "" {
			oldKey := course.Thumbnail.PublicID
			key, publicURL, err := s.assetStore.Upload(ctx, "courses", req.Thumbnail)
			if err != nil {
				return err
			}
			course.Thumbnail = entity.Asset{PublicID: key, URL: publicURL}
			if oldKey != "" {
				if err := s.assetStore.Delete(ctx, oldKey); err != nil {
					s.logger.Warn("failed to delete previous thumbnail",
						zap.Uint("course_id", courseID),
						zap.String("key", oldKey),
						zap.Error(err))
				}
			}
		}

		updated = course
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *courseService) GetPublic(ctx context.Context, courseID uint) (*entity.Course, error) {
	cached, err := s.courseCache.GetCourse(ctx, courseID)
	if err != nil {
		s.logger.Warn("course cache read failed", zap.Uint("course_id", courseID), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	course, err := s.courseRepo.GetByIDPublic(ctx, courseID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if course == nil {
		return nil, apperrors.NotFound("course not found")
	}

	if err := s.courseCache.PutCourse(ctx, course); err != nil {
		s.logger.Warn("course cache write failed", zap.Uint("course_id", courseID), zap.Error(err))
	}
	return course, nil
}

func (s *courseService) ListPublic(ctx context.Context) ([]*entity.Course, error) {
	cached, err := s.courseCache.GetCatalog(ctx)
	if err != nil {
		s.logger.Warn("catalog cache read failed", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	courses, err := s.courseRepo.ListPublic(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.courseCache.PutCatalog(ctx, courses); err != nil {
		s.logger.Warn("catalog cache write failed", zap.Error(err))
	}
	return courses, nil
}

func (s *courseService) GetContent(ctx context.Context, user *entity.User, courseID uint) ([]entity.CourseContent, error) {
	if !user.IsAdmin() {
		purchased, err := s.orderRepo.ExistsByUserAndCourse(ctx, user.ID, courseID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if !purchased {
			return nil, apperrors.ErrForbidden.WithMessage("course not purchased")
		}
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if course == nil {
		return nil, apperrors.NotFound("course not found")
	}
	return course.CourseData, nil
}

func (s *courseService) AddQuestion(ctx context.Context, user *entity.User, req *request.AddQuestionRequest) (*entity.Course, error) {
	question, err := entity.NewQuestion(user.Snapshot(), req.Question)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var updated *entity.Course
	err = s.mutateCourse(ctx, req.CourseID, func(course *entity.Course) error {
		content := course.FindContent(req.ContentID)
		if content == nil {
			return apperrors.NotFound("content not found")
		}
		content.Questions = append(content.Questions, question)
		updated = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, user.ID, "New Question Received",
		fmt.Sprintf("%s asked a question in %s", user.Name, updated.Name))
	return updated, nil
}

func (s *courseService) AddAnswer(ctx context.Context, user *entity.User, req *request.AddAnswerRequest) (*entity.Course, error) {
	answer, err := entity.NewAnswer(user.Snapshot(), req.Answer)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var (
		updated *entity.Course
		asker   entity.Snapshot
	)
	err = s.mutateCourse(ctx, req.CourseID, func(course *entity.Course) error {
		content := course.FindContent(req.ContentID)
		if content == nil {
			return apperrors.NotFound("content not found")
		}
		question := content.FindQuestion(req.QuestionID)
		if question == nil {
			return apperrors.NotFound("question not found")
		}
		question.Answers = append(question.Answers, answer)
		asker = question.Author
		updated = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	if asker.UserID == user.ID {
		// Answering your own question pings the admins instead.
		s.notifyAdmins(ctx, user.ID, "New Question Reply Received",
			fmt.Sprintf("%s replied in %s", user.Name, updated.Name))
	} else {
		s.mailUser(ctx, asker.UserID, outbox.EffectMailQuestionReply,
			"Your question has a new answer", updated.Name)
	}
	return updated, nil
}

func (s *courseService) AddReview(ctx context.Context, user *entity.User, courseID uint, req *request.AddReviewRequest) (*entity.Course, error) {
	if !user.IsAdmin() {
		purchased, err := s.orderRepo.ExistsByUserAndCourse(ctx, user.ID, courseID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if !purchased {
			return nil, apperrors.ErrForbidden.WithMessage("course not purchased")
		}
	}

	review, err := entity.NewReview(user.Snapshot(), req.Rating, req.Comment)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var updated *entity.Course
	err = s.mutateCourse(ctx, courseID, func(course *entity.Course) error {
		course.AddReview(review)
		updated = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, user.ID, "New Review Received",
		fmt.Sprintf("%s reviewed %s", user.Name, updated.Name))
	return updated, nil
}

func (s *courseService) AddReply(ctx context.Context, user *entity.User, req *request.AddReplyRequest) (*entity.Course, error) {
	reply, err := entity.NewReply(user.Snapshot(), req.Comment)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var (
		updated  *entity.Course
		reviewer entity.Snapshot
	)
	err = s.mutateCourse(ctx, req.CourseID, func(course *entity.Course) error {
		review := course.FindReview(req.ReviewID)
		if review == nil {
			return apperrors.NotFound("review not found")
		}
		review.Replies = append(review.Replies, reply)
		reviewer = review.Author
		updated = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	if reviewer.UserID != user.ID {
		s.mailUser(ctx, reviewer.UserID, outbox.EffectMailReviewReply,
			"Your review has a new reply", updated.Name)
	}
	return updated, nil
}

func (s *courseService) ListAll(ctx context.Context) ([]*entity.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return courses, nil
}

func (s *courseService) Delete(ctx context.Context, courseID uint) error {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if course == nil {
		return apperrors.NotFound("course not found")
	}

	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		return apperrors.Internal(err)
	}
	s.invalidate(ctx, courseID)
	s.logger.Info("course deleted", zap.Uint("course_id", courseID))
	return nil
}

// mutateCourse runs load-mutate-rewrite under the version token, retrying
// when a concurrent writer lands first. The mutation fn sees a fresh load
// on every attempt. On success the cache entries are dropped.
func (s *courseService) mutateCourse(ctx context.Context, courseID uint, fn func(course *entity.Course) error) error {
	err := resilience.RetryConflicts(ctx, maxWriteAttempts,
		func(err error) bool { return errors.Is(err, dao.ErrVersionConflict) },
		func(ctx context.Context) error {
			course, err := s.courseRepo.GetByID(ctx, courseID)
			if err != nil {
				return apperrors.Internal(err)
			}
			if course == nil {
				return apperrors.NotFound("course not found")
			}
			if err := fn(course); err != nil {
				return err
			}
			return s.courseRepo.UpdateVersioned(ctx, course)
		})
	if errors.Is(err, dao.ErrVersionConflict) {
		return apperrors.Internal(err)
	}
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperrors.Internal(err)
	}

	s.invalidate(ctx, courseID)
	return nil
}

func (s *courseService) invalidate(ctx context.Context, courseID uint) {
	if err := s.courseCache.Invalidate(ctx, courseID); err != nil {
		s.logger.Warn("course cache invalidation failed", zap.Uint("course_id", courseID), zap.Error(err))
	}
}

func (s *courseService) invalidateCatalog(ctx context.Context) {
	if err := s.courseCache.InvalidateCatalog(ctx); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

// notifyAdmins records an in-app notification and pushes it to connected
// dashboards. Failures are logged, never propagated.
func (s *courseService) notifyAdmins(ctx context.Context, userID uint, title, message string) {
	notification := &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Status:  entity.NotificationUnread,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error("failed to create notification", zap.String("title", title), zap.Error(err))
		return
	}
	s.hub.Publish(ws.NewEvent("notification", title, message))
}

// mailUser enqueues a mail effect addressed to the given user.
func (s *courseService) mailUser(ctx context.Context, userID uint, effectType, subject, courseName string) {
	recipient, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || recipient == nil {
		s.logger.Warn("mail recipient lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	s.publisher.PublishMail(ctx, effectType, outbox.MailPayload{
		To:      recipient.Email,
		Subject: subject,
		Data: map[string]any{
			"Name":  recipient.Name,
			"Title": courseName,
		},
	})
}

// applyCourseRequest copies the writable fields of the payload onto the
// course. Nested content items keep their ids across edits when provided.
func applyCourseRequest(course *entity.Course, req *request.UpsertCourseRequest) {
	course.Name = req.Name
	course.Description = req.Description
	course.Price = req.Price
	course.EstimatedPrice = req.EstimatedPrice
	course.Tags = req.Tags
	course.Level = req.Level
	course.DemoURL = req.DemoURL

	course.Benefits = make([]entity.Benefit, 0, len(req.Benefits))
	for _, b := range req.Benefits {
		course.Benefits = append(course.Benefits, entity.Benefit{Title: b.Title})
	}
	course.Prerequisites = make([]entity.Benefit, 0, len(req.Prerequisites))
	for _, p := range req.Prerequisites {
		course.Prerequisites = append(course.Prerequisites, entity.Benefit{Title: p.Title})
	}

	// Rebuild the lecture list. Items addressed by id keep their question
	// threads; items without an id are new and get one.
	contents := make([]entity.CourseContent, 0, len(req.CourseData))
	for _, c := range req.CourseData {
		links := make([]entity.Link, 0, len(c.Links))
		for _, l := range c.Links {
			links = append(links, entity.Link{Name: l.Name, URL: l.URL})
		}

		id := c.ID
		var questions []entity.Question
		if id != "" {
			if existing := course.FindContent(id); existing != nil {
				questions = existing.Questions
			}
		} else {
			id = uuid.NewString()
		}

		contents = append(contents, entity.CourseContent{
			ID:           id,
			Title:        c.Title,
			Description:  c.Description,
			VideoURL:     c.VideoURL,
			VideoSection: c.VideoSection,
			VideoLength:  c.VideoLength,
			VideoPlayer:  c.VideoPlayer,
			Links:        links,
			Suggestions:  c.Suggestions,
			Questions:    questions,
		})
	}
	course.CourseData = contents
}
