package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrjohn/academy-cloud-go/internal/cache"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/testutil/mocks"
)

func TestSessionCache_Roundtrip(t *testing.T) {
	store := mocks.NewMockStore()
	sessions := cache.NewSessionCache(store, time.Hour)
	ctx := context.Background()

	user := &entity.User{ID: 9, Name: "Alice", Email: "alice@example.com", Role: entity.RoleUser}
	if err := sessions.Put(ctx, user); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := sessions.Get(ctx, 9)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.Email != "alice@example.com" {
		t.Errorf("Get() = %+v", got)
	}
}

func TestSessionCache_MissReturnsNil(t *testing.T) {
	sessions := cache.NewSessionCache(mocks.NewMockStore(), time.Hour)

	got, err := sessions.Get(context.Background(), 404)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil on miss", got)
	}
}

func TestSessionCache_Evict(t *testing.T) {
	store := mocks.NewMockStore()
	sessions := cache.NewSessionCache(store, time.Hour)
	ctx := context.Background()

	sessions.Put(ctx, &entity.User{ID: 3})
	if err := sessions.Evict(ctx, 3); err != nil {
		t.Fatalf("Evict() error = %v", err)
	}

	got, _ := sessions.Get(ctx, 3)
	if got != nil {
		t.Error("Get() returned a user after Evict()")
	}
}

func TestCourseCache_InvalidateDropsCourseAndCatalog(t *testing.T) {
	store := mocks.NewMockStore()
	courses := cache.NewCourseCache(store, time.Minute, time.Minute)
	ctx := context.Background()

	course := &entity.Course{ID: 5, Name: "Go Basics"}
	if err := courses.PutCourse(ctx, course); err != nil {
		t.Fatalf("PutCourse() error = %v", err)
	}
	if err := courses.PutCatalog(ctx, []*entity.Course{course}); err != nil {
		t.Fatalf("PutCatalog() error = %v", err)
	}

	if err := courses.Invalidate(ctx, 5); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	if got, _ := courses.GetCourse(ctx, 5); got != nil {
		t.Error("GetCourse() returned data after Invalidate()")
	}
	if got, _ := courses.GetCatalog(ctx); got != nil {
		t.Error("GetCatalog() returned data after Invalidate()")
	}
}

func TestCourseCache_CatalogRoundtrip(t *testing.T) {
	courses := cache.NewCourseCache(mocks.NewMockStore(), time.Minute, time.Minute)
	ctx := context.Background()

	list := []*entity.Course{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	if err := courses.PutCatalog(ctx, list); err != nil {
		t.Fatalf("PutCatalog() error = %v", err)
	}

	got, err := courses.GetCatalog(ctx)
	if err != nil {
		t.Fatalf("GetCatalog() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "A" {
		t.Errorf("GetCatalog() = %+v", got)
	}
}

type countingRecorder struct {
	hits, misses int
}

func (r *countingRecorder) RecordCacheHit(string)  { r.hits++ }
func (r *countingRecorder) RecordCacheMiss(string) { r.misses++ }

func TestInstrumentedStore_CountsHitsAndMisses(t *testing.T) {
	rec := &countingRecorder{}
	store := cache.NewInstrumentedStore(mocks.NewMockStore(), "redis", rec)
	ctx := context.Background()

	store.Get(ctx, "missing")
	store.Set(ctx, "k", "v", time.Minute)
	store.Get(ctx, "k")

	if rec.misses != 1 || rec.hits != 1 {
		t.Errorf("hits = %d, misses = %d", rec.hits, rec.misses)
	}
}
