package impl

import (
	"context"

	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/assets"
	"github.com/jrjohn/academy-cloud-go/internal/cache"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/repository"
	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
	"github.com/jrjohn/academy-cloud-go/internal/security"
	apperrors "github.com/jrjohn/academy-cloud-go/pkg/errors"
)

// userService implements service.UserService
type userService struct {
	userRepo       repository.UserRepository
	passwordHasher security.PasswordHasher
	sessions       *cache.SessionCache
	assetStore     assets.Store
	logger         *zap.Logger
}

// NewUserService creates a new UserService instance
func NewUserService(
	userRepo repository.UserRepository,
	passwordHasher security.PasswordHasher,
	sessions *cache.SessionCache,
	assetStore assets.Store,
	logger *zap.Logger,
) service.UserService {
	return &userService{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		sessions:       sessions,
		assetStore:     assetStore,
		logger:         logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	cached, err := s.sessions.Get(ctx, userID)
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil {
		s.logger.Warn("session cache read failed", zap.Uint("user_id", userID), zap.Error(err))
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return user, nil
}

func (s *userService) UpdateInfo(ctx context.Context, userID uint, req *request.UpdateInfoRequest) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}

	if req.Email != "" && req.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if exists {
			return nil, apperrors.Validation("email already registered")
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}
	s.refreshSession(ctx, user)
	return user, nil
}

func (s *userService) UpdatePassword(ctx context.Context, userID uint, req *request.UpdatePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if user == nil {
		return apperrors.NotFound("user not found")
	}

	// Social accounts have no password to change.
	if user.Password == "" {
		return apperrors.Validation("account has no password set")
	}
	if !s.passwordHasher.Compare(user.Password, req.OldPassword) {
		return apperrors.Validation("old password is incorrect")
	}

	hashed, err := s.passwordHasher.Hash(req.NewPassword)
	if err != nil {
		return apperrors.Internal(err)
	}
	user.Password = hashed

	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.Internal(err)
	}
	s.refreshSession(ctx, user)
	return nil
}

func (s *userService) UpdateAvatar(ctx context.Context, userID uint, dataURL string) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}

	// Replace before delete: keep the old object until the new one exists.
	oldKey := user.Avatar.PublicID
	key, publicURL, err := s.assetStore.Upload(ctx, "avatars", dataURL)
	if err != nil {
		return nil, err
	}
	user.Avatar = entity.Asset{PublicID: key, URL: publicURL}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}

	if oldKey != "" {
		if err := s.assetStore.Delete(ctx, oldKey); err != nil {
			s.logger.Warn("failed to delete previous avatar",
				zap.Uint("user_id", userID),
				zap.String("key", oldKey),
				zap.Error(err))
		}
	}

	s.refreshSession(ctx, user)
	return user, nil
}

func (s *userService) List(ctx context.Context, page, size int) ([]*entity.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	users, total, err := s.userRepo.List(ctx, page, size)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return users, total, nil
}

func (s *userService) UpdateRole(ctx context.Context, req *request.UpdateRoleRequest) (*entity.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}

	user.Role = entity.UserRole(req.Role)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.refreshSession(ctx, user)
	s.logger.Info("user role updated", zap.Uint("user_id", user.ID), zap.String("role", req.Role))
	return user, nil
}

func (s *userService) Delete(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if user == nil {
		return apperrors.NotFound("user not found")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return apperrors.Internal(err)
	}
	if err := s.sessions.Evict(ctx, userID); err != nil {
		s.logger.Warn("failed to evict session of deleted user", zap.Uint("user_id", userID), zap.Error(err))
	}
	return nil
}

// refreshSession rewrites the session cache entry after a profile mutation
// so cached reads track the store. Only users with a live session get one.
func (s *userService) refreshSession(ctx context.Context, user *entity.User) {
	existing, err := s.sessions.Get(ctx, user.ID)
	if err != nil || existing == nil {
		return
	}
	if err := s.sessions.Put(ctx, user); err != nil {
		s.logger.Warn("failed to refresh session cache", zap.Uint("user_id", user.ID), zap.Error(err))
	}
}
