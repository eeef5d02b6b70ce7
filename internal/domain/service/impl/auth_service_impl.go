// Package impl contains the service implementations.
package impl

import (
	"context"

	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/cache"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/repository"
	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
	"github.com/jrjohn/academy-cloud-go/internal/dto/response"
	"github.com/jrjohn/academy-cloud-go/internal/mail"
	"github.com/jrjohn/academy-cloud-go/internal/security"
	apperrors "github.com/jrjohn/academy-cloud-go/pkg/errors"
)

// authService implements service.AuthService
type authService struct {
	userRepo       repository.UserRepository
	jwtProvider    *security.JWTProvider
	passwordHasher security.PasswordHasher
	sessions       *cache.SessionCache
	mailer         mail.Mailer
	logger         *zap.Logger
}

// NewAuthService creates a new AuthService instance
func NewAuthService(
	userRepo repository.UserRepository,
	jwtProvider *security.JWTProvider,
	passwordHasher security.PasswordHasher,
	sessions *cache.SessionCache,
	mailer mail.Mailer,
	logger *zap.Logger,
) service.AuthService {
	return &authService{
		userRepo:       userRepo,
		jwtProvider:    jwtProvider,
		passwordHasher: passwordHasher,
		sessions:       sessions,
		mailer:         mailer,
		logger:         logger,
	}
}

// Register does not create an account. The pending registration travels
// inside the activation token; the account materializes in Activate.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.ActivationResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.Validation("email already registered")
	}

	hashed, err := s.passwordHasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	token, code, err := s.jwtProvider.GenerateActivationToken(req.Name, req.Email, hashed)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	// Activation mail is synchronous: the user is waiting for the code,
	// and a failed send must fail the request.
	err = s.mailer.Send(ctx, mail.Message{
		To:       req.Email,
		Subject:  "Activate your account",
		Template: mail.TemplateActivation,
		Data: map[string]any{
			"Name": req.Name,
			"Code": code,
		},
	})
	if err != nil {
		s.logger.Error("activation mail failed", zap.String("email", req.Email), zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	return &response.ActivationResponse{ActivationToken: token}, nil
}

func (s *authService) Activate(ctx context.Context, req *request.ActivateRequest) (*entity.User, error) {
	claims, err := s.jwtProvider.ParseActivationToken(req.ActivationToken)
	if err != nil {
		return nil, err
	}
	if claims.Code != req.ActivationCode {
		return nil, apperrors.Validation("invalid activation code")
	}

	// The email may have been taken between register and activate.
	exists, err := s.userRepo.ExistsByEmail(ctx, claims.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.Validation("email already registered")
	}

	user := &entity.User{
		Name:       claims.Name,
		Email:      claims.Email,
		Password:   claims.Password,
		Role:       entity.RoleUser,
		IsVerified: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("account activated", zap.Uint("user_id", user.ID))
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*entity.User, service.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, service.TokenPair{}, apperrors.Internal(err)
	}
	if user == nil || !s.passwordHasher.Compare(user.Password, req.Password) {
		return nil, service.TokenPair{}, apperrors.ErrUnauthorized.WithMessage("invalid email or password")
	}

	pair, err := s.openSession(ctx, user)
	if err != nil {
		return nil, service.TokenPair{}, err
	}
	return user, pair, nil
}

func (s *authService) SocialAuth(ctx context.Context, req *request.SocialAuthRequest) (*entity.User, service.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, service.TokenPair{}, apperrors.Internal(err)
	}

	if user == nil {
		// First sight of this identity. The provider vouched for the
		// email, so the account starts verified and passwordless.
		user = &entity.User{
			Name:       req.Name,
			Email:      req.Email,
			Avatar:     entity.Asset{URL: req.AvatarURL},
			Role:       entity.RoleUser,
			IsVerified: true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, service.TokenPair{}, apperrors.Internal(err)
		}
		s.logger.Info("social account created", zap.Uint("user_id", user.ID))
	}

	pair, err := s.openSession(ctx, user)
	if err != nil {
		return nil, service.TokenPair{}, err
	}
	return user, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*entity.User, service.TokenPair, error) {
	claims, err := s.jwtProvider.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, service.TokenPair{}, err
	}

	// A refresh is only honored while the session lives; logout kills
	// outstanding refresh tokens along with access tokens.
	user, err := s.sessions.Get(ctx, claims.UserID)
	if err != nil {
		return nil, service.TokenPair{}, apperrors.Internal(err)
	}
	if user == nil {
		return nil, service.TokenPair{}, apperrors.ErrUnauthorized.WithMessage("session expired, please log in again")
	}

	pair, err := s.openSession(ctx, user)
	if err != nil {
		return nil, service.TokenPair{}, err
	}
	return user, pair, nil
}

func (s *authService) Logout(ctx context.Context, userID uint) error {
	if err := s.sessions.Evict(ctx, userID); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// openSession issues a token pair and writes the session cache entry.
func (s *authService) openSession(ctx context.Context, user *entity.User) (service.TokenPair, error) {
	accessToken, err := s.jwtProvider.GenerateAccessToken(user)
	if err != nil {
		return service.TokenPair{}, apperrors.Internal(err)
	}
	refreshToken, err := s.jwtProvider.GenerateRefreshToken(user)
	if err != nil {
		return service.TokenPair{}, apperrors.Internal(err)
	}

	if err := s.sessions.Put(ctx, user); err != nil {
		return service.TokenPair{}, apperrors.Internal(err)
	}

	return service.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
