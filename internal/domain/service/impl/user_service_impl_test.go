package impl

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/cache"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
	"github.com/jrjohn/academy-cloud-go/internal/security"
	"github.com/jrjohn/academy-cloud-go/internal/testutil/mocks"
	apperrors "github.com/jrjohn/academy-cloud-go/pkg/errors"
)

type userFixture struct {
	service    service.UserService
	userRepo   *mocks.MockUserRepository
	sessions   *cache.SessionCache
	assetStore *mocks.MockAssetStore
	hasher     security.PasswordHasher
}

func setupUserService(t *testing.T) *userFixture {
	t.Helper()

	f := &userFixture{
		userRepo:   mocks.NewMockUserRepository(),
		assetStore: mocks.NewMockAssetStore(),
		hasher:     security.NewPasswordHasher(),
	}
	f.sessions = cache.NewSessionCache(mocks.NewMockStore(), time.Hour)
	f.service = NewUserService(f.userRepo, f.hasher, f.sessions, f.assetStore, zap.NewNop())
	return f
}

func TestUserService_GetProfile_PrefersSession(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()

	f.userRepo.AddUser(&entity.User{ID: 1, Name: "Stored Name", Email: "a@example.com"})
	f.sessions.Put(ctx, &entity.User{ID: 1, Name: "Session Name", Email: "a@example.com"})

	user, err := f.service.GetProfile(ctx, 1)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if user.Name != "Session Name" {
		t.Errorf("Name = %q, want the cached session view", user.Name)
	}
}

func TestUserService_GetProfile_FallsBackToStore(t *testing.T) {
	f := setupUserService(t)
	f.userRepo.AddUser(&entity.User{ID: 1, Name: "Stored Name"})

	user, err := f.service.GetProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if user.Name != "Stored Name" {
		t.Errorf("Name = %q", user.Name)
	}
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	f := setupUserService(t)

	_, err := f.service.GetProfile(context.Background(), 404)
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetProfile() error = %v, want not found", err)
	}
}

func TestUserService_UpdateInfo(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()

	user := &entity.User{ID: 1, Name: "Alice", Email: "alice@example.com"}
	f.userRepo.AddUser(user)
	f.sessions.Put(ctx, user)

	updated, err := f.service.UpdateInfo(ctx, 1, &request.UpdateInfoRequest{Name: "Alice B", Email: "aliceb@example.com"})
	if err != nil {
		t.Fatalf("UpdateInfo() error = %v", err)
	}
	if updated.Name != "Alice B" || updated.Email != "aliceb@example.com" {
		t.Errorf("UpdateInfo() = %+v", updated)
	}

	// A live session tracks the mutation.
	session, _ := f.sessions.Get(ctx, 1)
	if session == nil || session.Email != "aliceb@example.com" {
		t.Errorf("session = %+v, want refreshed email", session)
	}
}

func TestUserService_UpdateInfo_EmailTaken(t *testing.T) {
	f := setupUserService(t)
	f.userRepo.AddUser(&entity.User{ID: 1, Email: "alice@example.com"})
	f.userRepo.AddUser(&entity.User{ID: 2, Email: "bob@example.com"})

	_, err := f.service.UpdateInfo(context.Background(), 1, &request.UpdateInfoRequest{Email: "bob@example.com"})
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("UpdateInfo() error = %v, want validation", err)
	}
}

func TestUserService_UpdatePassword(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()

	hashed, _ := f.hasher.Hash("oldpass")
	f.userRepo.AddUser(&entity.User{ID: 1, Email: "a@example.com", Password: hashed})

	err := f.service.UpdatePassword(ctx, 1, &request.UpdatePasswordRequest{OldPassword: "wrong", NewPassword: "newpass1"})
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("UpdatePassword() error = %v, want validation for wrong old password", err)
	}

	err = f.service.UpdatePassword(ctx, 1, &request.UpdatePasswordRequest{OldPassword: "oldpass", NewPassword: "newpass1"})
	if err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}

	stored, _ := f.userRepo.GetByID(ctx, 1)
	if !f.hasher.Compare(stored.Password, "newpass1") {
		t.Error("stored password does not match the new password")
	}
}

func TestUserService_UpdatePassword_SocialAccount(t *testing.T) {
	f := setupUserService(t)
	f.userRepo.AddUser(&entity.User{ID: 1, Email: "social@example.com"})

	err := f.service.UpdatePassword(context.Background(), 1, &request.UpdatePasswordRequest{OldPassword: "x", NewPassword: "newpass1"})
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("UpdatePassword() error = %v, want validation for passwordless account", err)
	}
}

func TestUserService_UpdateAvatar_ReplacesOldObject(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()

	f.userRepo.AddUser(&entity.User{
		ID:     1,
		Email:  "a@example.com",
		Avatar: entity.Asset{PublicID: "avatars/old", URL: "https://assets.test/avatars/old"},
	})

	user, err := f.service.UpdateAvatar(ctx, 1, "data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("UpdateAvatar() error = %v", err)
	}
	if user.Avatar.PublicID == "avatars/old" {
		t.Error("avatar was not replaced")
	}
	if len(f.assetStore.Deleted) != 1 || f.assetStore.Deleted[0] != "avatars/old" {
		t.Errorf("Deleted = %v, want the previous object", f.assetStore.Deleted)
	}
}

func TestUserService_UpdateRole(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()

	f.userRepo.AddUser(&entity.User{ID: 1, Email: "a@example.com", Role: entity.RoleUser})

	user, err := f.service.UpdateRole(ctx, &request.UpdateRoleRequest{Email: "a@example.com", Role: "admin"})
	if err != nil {
		t.Fatalf("UpdateRole() error = %v", err)
	}
	if user.Role != entity.RoleAdmin {
		t.Errorf("Role = %q, want admin", user.Role)
	}

	_, err = f.service.UpdateRole(ctx, &request.UpdateRoleRequest{Email: "ghost@example.com", Role: "admin"})
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("UpdateRole() error = %v, want not found", err)
	}
}

func TestUserService_Delete_EvictsSession(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()

	user := &entity.User{ID: 1, Email: "a@example.com"}
	f.userRepo.AddUser(user)
	f.sessions.Put(ctx, user)

	if err := f.service.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if stored, _ := f.userRepo.GetByID(ctx, 1); stored != nil {
		t.Error("user survived Delete()")
	}
	if session, _ := f.sessions.Get(ctx, 1); session != nil {
		t.Error("session survived Delete()")
	}
}

func TestUserService_List_ClampsPaging(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		f.userRepo.AddUser(&entity.User{ID: uint(i)})
	}

	users, total, err := f.service.List(ctx, 0, -5)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 || len(users) != 3 {
		t.Errorf("List() = %d users, total %d", len(users), total)
	}
}
