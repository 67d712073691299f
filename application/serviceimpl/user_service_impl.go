package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskforge/domain/dto"
	"taskforge/domain/models"
	"taskforge/domain/repositories"
	"taskforge/domain/services"
	redispkg "taskforge/infrastructure/redis"
	"taskforge/pkg/auth"
	"taskforge/pkg/logger"
)

const userCacheTTL = 5 * time.Minute

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
	cache    *redispkg.Client // nil disables caching
}

func NewUserService(userRepo repositories.UserRepository, tokens *auth.TokenManager, cache *redispkg.Client) services.UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		cache:    cache,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, string, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	if existing != nil {
		logger.WarnContext(ctx, "Registration rejected, email taken", "email", req.Email)
		return nil, "", services.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return nil, "", err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two concurrent registrations can both pass the existence check;
		// the unique constraint is the backstop and maps to the same outcome.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.WarnContext(ctx, "Registration lost duplicate-email race", "email", req.Email)
			return nil, "", services.ErrEmailTaken
		}
		logger.ErrorContext(ctx, "Failed to create user", "error", err)
		return nil, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "email", user.Email)

	return user, token, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WarnContext(ctx, "Login failed, unknown email", "email", req.Email)
			return "", nil, services.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		logger.WarnContext(ctx, "Login failed, password mismatch", "user_id", user.ID)
		return "", nil, services.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate token", "user_id", user.ID, "error", err)
		return "", nil, err
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID, "email", user.Email)

	return token, user, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.GetByID(ctx, userID)
}

// GetByID serves the auth gate on every protected request, so lookups are
// cached briefly; any user write drops the cache entry.
func (s *UserServiceImpl) GetByID(ctx context.Context, userID uint) (*models.User, error) {
	if s.cache != nil {
		var cached models.User
		if err := s.cache.GetJSON(ctx, userCacheKey(userID), &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, redispkg.Nil) {
			logger.WarnContext(ctx, "User cache read failed", "user_id", userID, "error", err)
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, userCacheKey(userID), user, userCacheTTL); err != nil {
			logger.WarnContext(ctx, "User cache write failed", "user_id", userID, "error", err)
		}
	}

	return user, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.WarnContext(ctx, "Profile update rejected, email taken", "user_id", userID)
			return nil, services.ErrEmailTaken
		}
		logger.ErrorContext(ctx, "Failed to update profile", "user_id", userID, "error", err)
		return nil, err
	}

	s.invalidate(ctx, userID)
	logger.InfoContext(ctx, "Profile updated", "user_id", userID)

	return user, nil
}

func (s *UserServiceImpl) ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ErrUserNotFound
		}
		return err
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		logger.WarnContext(ctx, "Password change rejected, wrong current password", "user_id", userID)
		return services.ErrWrongPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "user_id", userID, "error", err)
		return err
	}

	user.Password = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to update password", "user_id", userID, "error", err)
		return err
	}

	s.invalidate(ctx, userID)
	logger.InfoContext(ctx, "Password changed", "user_id", userID)

	return nil
}

func (s *UserServiceImpl) invalidate(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, userCacheKey(userID)); err != nil {
		logger.WarnContext(ctx, "User cache invalidation failed", "user_id", userID, "error", err)
	}
}

func userCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}
