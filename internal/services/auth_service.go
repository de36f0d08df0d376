package services

import (
	"context"

	"weijob_backend/internal/auth"
	"weijob_backend/internal/logger"
	"weijob_backend/internal/models"
	"weijob_backend/internal/repositories"
	"weijob_backend/internal/services/dto"
	"weijob_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	// LoginWithWeChat finds or creates the account for the open-id and
	// issues an access token.
	LoginWithWeChat(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &AuthServiceImpl{userRepo: userRepo}
}

func (s *AuthServiceImpl) LoginWithWeChat(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByOpenID(ctx, db, req.OpenID)
	if err != nil {
		if err != repositories.ErrUserNotFound {
			return nil, apperrors.ErrStorage(err)
		}

		// First visit: create the account from the mini-program profile.
		user = &models.User{
			OpenID:    req.OpenID,
			Nickname:  req.Nickname,
			AvatarURL: req.AvatarURL,
			Role:      models.UserRoleUser,
			Status:    models.UserStatusActive,
		}
		if createErr := s.userRepo.Create(ctx, db, user); createErr != nil {
			if createErr == repositories.ErrUserAlreadyExists {
				// Concurrent first login for the same open-id.
				user, err = s.userRepo.FindByOpenID(ctx, db, req.OpenID)
				if err != nil {
					return nil, apperrors.ErrStorage(err)
				}
			} else {
				return nil, apperrors.ErrStorage(createErr)
			}
		} else {
			logger.CtxInfo(ctx, "new user registered", "open_id", req.OpenID)
		}
	}

	if user.Status == models.UserStatusBlocked {
		return nil, apperrors.NewForbiddenError("Account is blocked")
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	go s.userRepo.UpdateLastActive(context.Background(), db, user.ID)

	return &dto.LoginResponse{
		Token: token,
		User:  buildUserProfile(user),
	}, nil
}

func buildUserProfile(user *models.User) *dto.UserProfile {
	return &dto.UserProfile{
		ID:        user.ID,
		OpenID:    user.OpenID,
		Nickname:  user.Nickname,
		AvatarURL: user.AvatarURL,
		City:      user.City,
		Phone:     user.Phone,
		Role:      string(user.Role),
	}
}
