package impl

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/cache"
	"github.com/jrjohn/academy-cloud-go/internal/config"
	"github.com/jrjohn/academy-cloud-go/internal/domain/dao"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
	"github.com/jrjohn/academy-cloud-go/internal/outbox"
	"github.com/jrjohn/academy-cloud-go/internal/testutil/mocks"
	"github.com/jrjohn/academy-cloud-go/internal/ws"
	apperrors "github.com/jrjohn/academy-cloud-go/pkg/errors"
)

type courseFixture struct {
	service    service.CourseService
	courseRepo *mocks.MockCourseRepository
	orderRepo  *mocks.MockOrderRepository
	userRepo   *mocks.MockUserRepository
	noteRepo   *mocks.MockNotificationRepository
	store      *mocks.MockStore
	assetStore *mocks.MockAssetStore
	queue      *mocks.MockQueue
}

func setupCourseService(t *testing.T) *courseFixture {
	t.Helper()

	f := &courseFixture{
		courseRepo: mocks.NewMockCourseRepository(),
		orderRepo:  mocks.NewMockOrderRepository(),
		userRepo:   mocks.NewMockUserRepository(),
		noteRepo:   mocks.NewMockNotificationRepository(),
		store:      mocks.NewMockStore(),
		assetStore: mocks.NewMockAssetStore(),
		queue:      mocks.NewMockQueue(),
	}
	logger := zap.NewNop()
	f.service = NewCourseService(
		f.courseRepo,
		f.orderRepo,
		f.userRepo,
		f.noteRepo,
		cache.NewCourseCache(f.store, time.Minute, time.Minute),
		f.assetStore,
		outbox.NewPublisher(&config.OutboxConfig{MaxRetries: 3}, f.queue, logger),
		ws.NewHub(logger),
		logger,
	)
	return f
}

// seedCourse stores a course with one content item carrying a question by
// the given author.
func seedCourse(f *courseFixture, asker entity.Snapshot) *entity.Course {
	course := &entity.Course{
		ID:    1,
		Name:  "Go in Practice",
		Price: 49,
		CourseData: []entity.CourseContent{
			{
				ID:       "lec-1",
				Title:    "Introduction",
				VideoURL: "https://videos.test/intro.mp4",
				Questions: []entity.Question{
					{ID: "q-1", Author: asker, Text: "What is a goroutine?"},
				},
			},
		},
	}
	f.courseRepo.AddCourse(course)
	return course
}

func purchase(t *testing.T, f *courseFixture, userID, courseID uint) {
	t.Helper()
	err := f.orderRepo.Create(context.Background(), &entity.Order{UserID: userID, CourseID: courseID})
	if err != nil {
		t.Fatalf("seeding order: %v", err)
	}
}

func TestCourseService_Create_UploadsThumbnail(t *testing.T) {
	f := setupCourseService(t)

	course, err := f.service.Create(context.Background(), &request.UpsertCourseRequest{
		Name:        "New Course",
		Description: "desc",
		Price:       10,
		Thumbnail:   "data:image/png;base64,AAAA",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if course.ID == 0 {
		t.Error("Create() did not assign an id")
	}
	if course.Thumbnail.URL != "https://assets.test/courses/upload-1" {
		t.Errorf("Thumbnail.URL = %q", course.Thumbnail.URL)
	}
}

func TestCourseService_Create_InvalidatesCatalog(t *testing.T) {
	f := setupCourseService(t)
	ctx := context.Background()
	seedCourse(f, entity.Snapshot{})

	first, err := f.service.ListPublic(ctx)
	if err != nil {
		t.Fatalf("ListPublic() error = %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("ListPublic() = %d courses, want 1", len(first))
	}

	if _, err := f.service.Create(ctx, &request.UpsertCourseRequest{
		Name:        "Second Course",
		Description: "desc",
		Price:       20,
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	second, err := f.service.ListPublic(ctx)
	if err != nil {
		t.Fatalf("ListPublic() error = %v", err)
	}
	if len(second) != 2 {
		t.Errorf("ListPublic() = %d courses after Create, want 2", len(second))
	}
}

func TestCourseService_GetPublic_StripsPaidContent(t *testing.T) {
	f := setupCourseService(t)
	seedCourse(f, entity.Snapshot{UserID: 2})

	course, err := f.service.GetPublic(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetPublic() error = %v", err)
	}
	content := course.CourseData[0]
	if content.VideoURL != "" {
		t.Errorf("VideoURL = %q, want stripped", content.VideoURL)
	}
	if len(content.Questions) != 0 {
		t.Error("question threads leaked into the public view")
	}
}

func TestCourseService_GetPublic_ServesFromCache(t *testing.T) {
	f := setupCourseService(t)
	ctx := context.Background()
	seedCourse(f, entity.Snapshot{})

	if _, err := f.service.GetPublic(ctx, 1); err != nil {
		t.Fatalf("GetPublic() error = %v", err)
	}

	// With the entry cached the repository must not be consulted.
	f.courseRepo.GetErr = errors.New("mongo down")
	course, err := f.service.GetPublic(ctx, 1)
	if err != nil {
		t.Fatalf("GetPublic() error on cached read = %v", err)
	}
	if course.Name != "Go in Practice" {
		t.Errorf("cached course name = %q", course.Name)
	}
}

func TestCourseService_GetPublic_NotFound(t *testing.T) {
	f := setupCourseService(t)

	_, err := f.service.GetPublic(context.Background(), 404)
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetPublic() error = %v, want not found", err)
	}
}

func TestCourseService_GetContent_RequiresPurchase(t *testing.T) {
	f := setupCourseService(t)
	ctx := context.Background()
	seedCourse(f, entity.Snapshot{})
	user := &entity.User{ID: 7, Role: entity.RoleUser}

	_, err := f.service.GetContent(ctx, user, 1)
	if !apperrors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("GetContent() error = %v, want forbidden", err)
	}

	purchase(t, f, 7, 1)
	content, err := f.service.GetContent(ctx, user, 1)
	if err != nil {
		t.Fatalf("GetContent() error after purchase = %v", err)
	}
	if len(content) != 1 || content[0].VideoURL == "" {
		t.Errorf("GetContent() = %+v, want full lecture", content)
	}
}

func TestCourseService_GetContent_AdminBypassesLedger(t *testing.T) {
	f := setupCourseService(t)
	seedCourse(f, entity.Snapshot{})
	admin := &entity.User{ID: 1, Role: entity.RoleAdmin}

	content, err := f.service.GetContent(context.Background(), admin, 1)
	if err != nil {
		t.Fatalf("GetContent() error = %v", err)
	}
	if len(content) != 1 {
		t.Errorf("GetContent() = %d items, want 1", len(content))
	}
}

func TestCourseService_AddReview_RecomputesRatings(t *testing.T) {
	f := setupCourseService(t)
	ctx := context.Background()
	seedCourse(f, entity.Snapshot{})
	user := &entity.User{ID: 7, Name: "Alice", Role: entity.RoleUser}
	purchase(t, f, 7, 1)

	updated, err := f.service.AddReview(ctx, user, 1, &request.AddReviewRequest{Rating: 5, Comment: "great"})
	if err != nil {
		t.Fatalf("AddReview() error = %v", err)
	}
	if updated.Ratings != 5 {
		t.Errorf("Ratings = %v, want 5", updated.Ratings)
	}

	user2 := &entity.User{ID: 8, Name: "Bob", Role: entity.RoleUser}
	purchase(t, f, 8, 1)
	updated, err = f.service.AddReview(ctx, user2, 1, &request.AddReviewRequest{Rating: 3, Comment: "fine"})
	if err != nil {
		t.Fatalf("AddReview() error = %v", err)
	}
	if updated.Ratings != 4 {
		t.Errorf("Ratings = %v, want 4", updated.Ratings)
	}

	// Admins were notified for each review.
	notes, _ := f.noteRepo.List(ctx)
	if len(notes) != 2 {
		t.Errorf("notifications = %d, want 2", len(notes))
	}
}

func TestCourseService_AddReview_NotPurchased(t *testing.T) {
	f := setupCourseService(t)
	seedCourse(f, entity.Snapshot{})
	user := &entity.User{ID: 7, Role: entity.RoleUser}

	_, err := f.service.AddReview(context.Background(), user, 1, &request.AddReviewRequest{Rating: 4, Comment: "x"})
	if !apperrors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("AddReview() error = %v, want forbidden", err)
	}
}

func TestCourseService_AddReview_InvalidRating(t *testing.T) {
	f := setupCourseService(t)
	seedCourse(f, entity.Snapshot{})
	admin := &entity.User{ID: 1, Role: entity.RoleAdmin}

	_, err := f.service.AddReview(context.Background(), admin, 1, &request.AddReviewRequest{Rating: 6, Comment: "x"})
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("AddReview() error = %v, want validation", err)
	}
}

func TestCourseService_AddReview_InvalidatesCache(t *testing.T) {
	f := setupCourseService(t)
	ctx := context.Background()
	seedCourse(f, entity.Snapshot{})
	admin := &entity.User{ID: 1, Role: entity.RoleAdmin}

	// Warm the cache, mutate, then read again: the new review must show.
	if _, err := f.service.GetPublic(ctx, 1); err != nil {
		t.Fatalf("GetPublic() error = %v", err)
	}
	if _, err := f.service.AddReview(ctx, admin, 1, &request.AddReviewRequest{Rating: 5, Comment: "great"}); err != nil {
		t.Fatalf("AddReview() error = %v", err)
	}

	course, err := f.service.GetPublic(ctx, 1)
	if err != nil {
		t.Fatalf("GetPublic() error = %v", err)
	}
	if len(course.Reviews) != 1 || course.Ratings != 5 {
		t.Errorf("stale cache: reviews = %d, ratings = %v", len(course.Reviews), course.Ratings)
	}
}

func TestCourseService_AddQuestion_NotifiesAdmins(t *testing.T) {
	f := setupCourseService(t)
	ctx := context.Background()
	seedCourse(f, entity.Snapshot{})
	user := &entity.User{ID: 7, Name: "Alice", Role: entity.RoleUser}

	updated, err := f.service.AddQuestion(ctx, user, &request.AddQuestionRequest{
		CourseID:  1,
		ContentID: "lec-1",
		Question:  "Why channels?",
	})
	if err != nil {
		t.Fatalf("AddQuestion() error = %v", err)
	}
	if got := len(updated.CourseData[0].Questions); got != 2 {
		t.Errorf("questions = %d, want 2", got)
	}

	notes, _ := f.noteRepo.List(ctx)
	if len(notes) != 1 || notes[0].Title != "New Question Received" {
		t.Errorf("notifications = %+v", notes)
	}
}

func TestCourseService_AddQuestion_ContentNotFound(t *testing.T) {
	f := setupCourseService(t)
	seedCourse(f, entity.Snapshot{})
	user := &entity.User{ID: 7, Role: entity.RoleUser}

	_, err := f.service.AddQuestion(context.Background(), user, &request.AddQuestionRequest{
		CourseID:  1,
		ContentID: "missing",
		Question:  "hello?",
	})
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("AddQuestion() error = %v, want not found", err)
	}
}

func TestCourseService_AddAnswer_MailsAsker(t *testing.T) {
	f := setupCourseService(t)
	ctx := context.Background()
	asker := &entity.User{ID: 2, Name: "Bob", Email: "bob@example.com"}
	f.userRepo.AddUser(asker)
	seedCourse(f, asker.Snapshot())
	answerer := &entity.User{ID: 3, Name: "Carol", Role: entity.RoleUser}

	updated, err := f.service.AddAnswer(ctx, answerer, &request.AddAnswerRequest{
		CourseID:   1,
		ContentID:  "lec-1",
		QuestionID: "q-1",
		Answer:     "Lightweight threads.",
	})
	if err != nil {
		t.Fatalf("AddAnswer() error = %v", err)
	}
	if got := len(updated.CourseData[0].Questions[0].Answers); got != 1 {
		t.Errorf("answers = %d, want 1", got)
	}

	effects := f.queue.Enqueued()
	if len(effects) != 1 || effects[0].Type != outbox.EffectMailQuestionReply {
		t.Fatalf("enqueued effects = %+v", effects)
	}
	var payload outbox.MailPayload
	if err := json.Unmarshal(effects[0].Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.To != "bob@example.com" {
		t.Errorf("payload.To = %q, want the asker", payload.To)
	}
}

func TestCourseService_AddAnswer_SelfAnswerNotifiesAdminsInstead(t *testing.T) {
	f := setupCourseService(t)
	ctx := context.Background()
	asker := &entity.User{ID: 2, Name: "Bob", Email: "bob@example.com"}
	f.userRepo.AddUser(asker)
	seedCourse(f, asker.Snapshot())

	_, err := f.service.AddAnswer(ctx, asker, &request.AddAnswerRequest{
		CourseID:   1,
		ContentID:  "lec-1",
		QuestionID: "q-1",
		Answer:     "Figured it out myself.",
	})
	if err != nil {
		t.Fatalf("AddAnswer() error = %v", err)
	}

	if effects := f.queue.Enqueued(); len(effects) != 0 {
		t.Errorf("self-answer enqueued %d mail effects, want 0", len(effects))
	}
	notes, _ := f.noteRepo.List(ctx)
	if len(notes) != 1 {
		t.Errorf("notifications = %d, want 1", len(notes))
	}
}

func TestCourseService_AddReply_MailsReviewer(t *testing.T) {
	f := setupCourseService(t)
	ctx := context.Background()
	reviewer := &entity.User{ID: 2, Name: "Bob", Email: "bob@example.com"}
	f.userRepo.AddUser(reviewer)

	course := &entity.Course{
		ID:   1,
		Name: "Go in Practice",
		Reviews: []entity.Review{
			{ID: "r-1", Author: reviewer.Snapshot(), Rating: 5, Comment: "great"},
		},
		Ratings: 5,
	}
	f.courseRepo.AddCourse(course)

	admin := &entity.User{ID: 1, Name: "Admin", Role: entity.RoleAdmin}
	updated, err := f.service.AddReply(ctx, admin, &request.AddReplyRequest{
		CourseID: 1,
		ReviewID: "r-1",
		Comment:  "Thanks!",
	})
	if err != nil {
		t.Fatalf("AddReply() error = %v", err)
	}
	if got := len(updated.Reviews[0].Replies); got != 1 {
		t.Errorf("replies = %d, want 1", got)
	}

	effects := f.queue.Enqueued()
	if len(effects) != 1 || effects[0].Type != outbox.EffectMailReviewReply {
		t.Errorf("enqueued effects = %+v", effects)
	}
}

func TestCourseService_Update_PreservesQuestionThreads(t *testing.T) {
	f := setupCourseService(t)
	seedCourse(f, entity.Snapshot{UserID: 2})

	updated, err := f.service.Update(context.Background(), 1, &request.UpsertCourseRequest{
		Name:        "Go in Practice, 2nd Edition",
		Description: "desc",
		Price:       59,
		CourseData: []request.CourseContentRequest{
			{ID: "lec-1", Title: "Introduction, revised"},
			{Title: "A brand new lecture"},
		},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Name != "Go in Practice, 2nd Edition" {
		t.Errorf("Name = %q", updated.Name)
	}
	if got := len(updated.CourseData[0].Questions); got != 1 {
		t.Errorf("edited lecture lost its question thread: questions = %d", got)
	}
	if updated.CourseData[1].ID == "" {
		t.Error("new lecture did not get an id")
	}
	if len(updated.CourseData[1].Questions) != 0 {
		t.Error("new lecture inherited questions")
	}
}

func TestCourseService_Delete(t *testing.T) {
	f := setupCourseService(t)
	ctx := context.Background()
	seedCourse(f, entity.Snapshot{})

	if err := f.service.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := f.service.Delete(ctx, 1); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Delete() error = %v, want not found", err)
	}
}

// conflictingCourseRepo injects version conflicts before delegating, as if a
// concurrent writer landed between load and rewrite.
type conflictingCourseRepo struct {
	*mocks.MockCourseRepository
	conflicts int
}

func (r *conflictingCourseRepo) UpdateVersioned(ctx context.Context, course *entity.Course) error {
	if r.conflicts > 0 {
		r.conflicts--
		return dao.ErrVersionConflict
	}
	return r.MockCourseRepository.UpdateVersioned(ctx, course)
}

func newConflictService(f *courseFixture, repo *conflictingCourseRepo) service.CourseService {
	logger := zap.NewNop()
	return NewCourseService(
		repo,
		f.orderRepo,
		f.userRepo,
		f.noteRepo,
		cache.NewCourseCache(f.store, time.Minute, time.Minute),
		f.assetStore,
		outbox.NewPublisher(&config.OutboxConfig{MaxRetries: 3}, f.queue, logger),
		ws.NewHub(logger),
		logger,
	)
}

func TestCourseService_AddReview_RetriesVersionConflict(t *testing.T) {
	f := setupCourseService(t)
	repo := &conflictingCourseRepo{MockCourseRepository: f.courseRepo, conflicts: 1}
	svc := newConflictService(f, repo)
	seedCourse(f, entity.Snapshot{})
	admin := &entity.User{ID: 1, Role: entity.RoleAdmin}

	updated, err := svc.AddReview(context.Background(), admin, 1, &request.AddReviewRequest{Rating: 5, Comment: "great"})
	if err != nil {
		t.Fatalf("AddReview() error = %v, want retry to absorb the conflict", err)
	}
	if len(updated.Reviews) != 1 {
		t.Errorf("reviews = %d, want 1", len(updated.Reviews))
	}
	if repo.conflicts != 0 {
		t.Error("conflict injection was not consumed")
	}
}

func TestCourseService_AddReview_GivesUpAfterRepeatedConflicts(t *testing.T) {
	f := setupCourseService(t)
	repo := &conflictingCourseRepo{MockCourseRepository: f.courseRepo, conflicts: maxWriteAttempts}
	svc := newConflictService(f, repo)
	seedCourse(f, entity.Snapshot{})
	admin := &entity.User{ID: 1, Role: entity.RoleAdmin}

	_, err := svc.AddReview(context.Background(), admin, 1, &request.AddReviewRequest{Rating: 5, Comment: "great"})
	if err == nil {
		t.Fatal("AddReview() succeeded despite persistent conflicts")
	}
	if !apperrors.Is(err, apperrors.ErrInternalError) {
		t.Errorf("AddReview() error = %v, want internal", err)
	}
}
