// Package mocks provides hand-rolled in-memory doubles with error injection
// for unit tests.
package mocks

import (
	"context"
	"sync"

	"github.com/jrjohn/academy-cloud-go/internal/domain/dao"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/repository"
)

// MockUserRepository is an in-memory UserRepository
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]*entity.User
	nextID uint

	// Error injection
	CreateErr        error
	GetByIDErr       error
	GetByEmailErr    error
	ExistsByEmailErr error
	UpdateErr        error
	DeleteErr        error
	ListErr          error
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[uint]*entity.User),
		nextID: 1,
	}
}

// AddUser seeds a user directly, preserving a preset ID.
func (r *MockUserRepository) AddUser(user *entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		user.ID = r.nextID
	}
	if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	r.users[user.ID] = cloneUser(user)
}

func (r *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *MockUserRepository) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	if r.GetByIDErr != nil {
		return nil, r.GetByIDErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[id]; ok {
		return cloneUser(user), nil
	}
	return nil, nil
}

func (r *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if r.GetByEmailErr != nil {
		return nil, r.GetByEmailErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, nil
}

func (r *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if r.ExistsByEmailErr != nil {
		return false, r.ExistsByEmailErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		r.users[user.ID] = cloneUser(user)
	}
	return nil
}

func (r *MockUserRepository) Delete(ctx context.Context, id uint) error {
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *MockUserRepository) List(ctx context.Context, page, size int) ([]*entity.User, int64, error) {
	if r.ListErr != nil {
		return nil, 0, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		all = append(all, cloneUser(user))
	}
	total := int64(len(all))
	start := (page - 1) * size
	if start >= len(all) {
		return []*entity.User{}, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// MockCourseRepository is an in-memory CourseRepository honoring the
// optimistic version token.
type MockCourseRepository struct {
	mu      sync.Mutex
	courses map[uint]*entity.Course
	nextID  uint

	// UpdateAttempts counts UpdateVersioned calls including conflicts.
	UpdateAttempts int

	// Error injection
	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
	DeleteErr error
}

var _ repository.CourseRepository = (*MockCourseRepository)(nil)

func NewMockCourseRepository() *MockCourseRepository {
	return &MockCourseRepository{
		courses: make(map[uint]*entity.Course),
		nextID:  1,
	}
}

// AddCourse seeds a course directly, preserving a preset ID.
func (r *MockCourseRepository) AddCourse(course *entity.Course) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if course.ID == 0 {
		course.ID = r.nextID
	}
	if course.ID >= r.nextID {
		r.nextID = course.ID + 1
	}
	if course.Version == 0 {
		course.Version = 1
	}
	r.courses[course.ID] = cloneCourse(course)
}

func (r *MockCourseRepository) Create(ctx context.Context, course *entity.Course) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	course.ID = r.nextID
	r.nextID++
	course.Version = 1
	r.courses[course.ID] = cloneCourse(course)
	return nil
}

func (r *MockCourseRepository) GetByID(ctx context.Context, id uint) (*entity.Course, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if course, ok := r.courses[id]; ok {
		return cloneCourse(course), nil
	}
	return nil, nil
}

func (r *MockCourseRepository) GetByIDPublic(ctx context.Context, id uint) (*entity.Course, error) {
	course, err := r.GetByID(ctx, id)
	if err != nil || course == nil {
		return course, err
	}
	stripPaidContent(course)
	return course, nil
}

func (r *MockCourseRepository) ListPublic(ctx context.Context) ([]*entity.Course, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, course := range all {
		stripPaidContent(course)
	}
	return all, nil
}

func (r *MockCourseRepository) List(ctx context.Context) ([]*entity.Course, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.Course, 0, len(r.courses))
	for _, course := range r.courses {
		all = append(all, cloneCourse(course))
	}
	return all, nil
}

func (r *MockCourseRepository) UpdateVersioned(ctx context.Context, course *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.UpdateAttempts++
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	stored, ok := r.courses[course.ID]
	if !ok {
		return dao.ErrVersionConflict
	}
	if stored.Version != course.Version {
		return dao.ErrVersionConflict
	}
	course.Version++
	r.courses[course.ID] = cloneCourse(course)
	return nil
}

func (r *MockCourseRepository) Delete(ctx context.Context, id uint) error {
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.courses, id)
	return nil
}

func stripPaidContent(course *entity.Course) {
	for i := range course.CourseData {
		course.CourseData[i].VideoURL = ""
		course.CourseData[i].Suggestions = ""
		course.CourseData[i].Questions = nil
		course.CourseData[i].Links = nil
	}
}

// MockOrderRepository is an in-memory purchase ledger
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders []*entity.Order
	nextID uint

	// Error injection
	CreateErr error
	ExistsErr error
	ListErr   error
}

var _ repository.OrderRepository = (*MockOrderRepository)(nil)

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{nextID: 1}
}

func (r *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = r.nextID
	r.nextID++
	cp := *order
	r.orders = append(r.orders, &cp)
	return nil
}

func (r *MockOrderRepository) ExistsByUserAndCourse(ctx context.Context, userID, courseID uint) (bool, error) {
	if r.ExistsErr != nil {
		return false, r.ExistsErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, order := range r.orders {
		if order.UserID == userID && order.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MockOrderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.Order, len(r.orders))
	copy(all, r.orders)
	return all, nil
}

func (r *MockOrderRepository) ListByUser(ctx context.Context, userID uint) ([]*entity.Order, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var mine []*entity.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			mine = append(mine, order)
		}
	}
	return mine, nil
}

// MockNotificationRepository is an in-memory NotificationRepository
type MockNotificationRepository struct {
	mu            sync.RWMutex
	notifications map[uint]*entity.Notification
	nextID        uint

	// Error injection
	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
}

var _ repository.NotificationRepository = (*MockNotificationRepository)(nil)

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{
		notifications: make(map[uint]*entity.Notification),
		nextID:        1,
	}
}

func (r *MockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	notification.ID = r.nextID
	r.nextID++
	cp := *notification
	r.notifications[notification.ID] = &cp
	return nil
}

func (r *MockNotificationRepository) GetByID(ctx context.Context, id uint) (*entity.Notification, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if n, ok := r.notifications[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, nil
}

func (r *MockNotificationRepository) List(ctx context.Context) ([]*entity.Notification, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		cp := *n
		all = append(all, &cp)
	}
	return all, nil
}

func (r *MockNotificationRepository) Update(ctx context.Context, notification *entity.Notification) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notifications[notification.ID]; ok {
		cp := *notification
		r.notifications[notification.ID] = &cp
	}
	return nil
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	cp.Courses = append([]uint(nil), u.Courses...)
	return &cp
}

func cloneCourse(c *entity.Course) *entity.Course {
	cp := *c
	cp.Benefits = append([]entity.Benefit(nil), c.Benefits...)
	cp.Prerequisites = append([]entity.Benefit(nil), c.Prerequisites...)

	cp.Reviews = make([]entity.Review, len(c.Reviews))
	for i, review := range c.Reviews {
		review.Replies = append([]entity.Reply(nil), review.Replies...)
		cp.Reviews[i] = review
	}

	cp.CourseData = make([]entity.CourseContent, len(c.CourseData))
	for i, content := range c.CourseData {
		content.Links = append([]entity.Link(nil), content.Links...)
		questions := make([]entity.Question, len(content.Questions))
		for j, q := range content.Questions {
			q.Answers = append([]entity.Answer(nil), q.Answers...)
			questions[j] = q
		}
		content.Questions = questions
		cp.CourseData[i] = content
	}
	return &cp
}
