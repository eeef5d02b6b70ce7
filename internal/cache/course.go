package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

const (
	keyPrefixCourse = "academy:course:"
	keyCatalog      = "academy:courses:all"
)

// CourseCache is the read-through cache over the public course views. Every
// mutating course path must call Invalidate; the TTLs are a safety net, not
// the primary consistency mechanism.
type CourseCache struct {
	store      Store
	courseTTL  time.Duration
	catalogTTL time.Duration
}

// NewCourseCache creates a CourseCache with the given TTLs.
func NewCourseCache(store Store, courseTTL, catalogTTL time.Duration) *CourseCache {
	return &CourseCache{store: store, courseTTL: courseTTL, catalogTTL: catalogTTL}
}

func courseKey(id uint) string {
	return fmt.Sprintf("%s%d", keyPrefixCourse, id)
}

// GetCourse returns the cached public course view, or nil on miss.
func (c *CourseCache) GetCourse(ctx context.Context, id uint) (*entity.Course, error) {
	raw, err := c.store.Get(ctx, courseKey(id))
	if err == ErrMiss {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var course entity.Course
	if err := json.Unmarshal([]byte(raw), &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// PutCourse stores the public course view.
func (c *CourseCache) PutCourse(ctx context.Context, course *entity.Course) error {
	data, err := json.Marshal(course)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, courseKey(course.ID), string(data), c.courseTTL)
}

// GetCatalog returns the cached catalog, or nil on miss.
func (c *CourseCache) GetCatalog(ctx context.Context) ([]*entity.Course, error) {
	raw, err := c.store.Get(ctx, keyCatalog)
	if err == ErrMiss {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var courses []*entity.Course
	if err := json.Unmarshal([]byte(raw), &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// PutCatalog stores the catalog view.
func (c *CourseCache) PutCatalog(ctx context.Context, courses []*entity.Course) error {
	data, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, keyCatalog, string(data), c.catalogTTL)
}

// Invalidate drops both the course entry and the catalog. Called on every
// mutating path touching the course.
func (c *CourseCache) Invalidate(ctx context.Context, id uint) error {
	return c.store.Delete(ctx, courseKey(id), keyCatalog)
}

// InvalidateCatalog drops only the catalog entry (course creation).
func (c *CourseCache) InvalidateCatalog(ctx context.Context) error {
	return c.store.Delete(ctx, keyCatalog)
}
