package service

import (
	"context"
	"errors"
	"time"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/repository"
	"tutorboard_backend/internal/util"
	"tutorboard_backend/pkg/hub"
	"tutorboard_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ssoCodeTTL bounds how long a spent authorization code stays blacklisted;
// Hub codes themselves expire well inside this window.
const ssoCodeTTL = 5 * time.Minute

type AuthService struct {
	userRepo  *repository.UserRepository
	hubClient *hub.Client
	rdb       *redis.Client
}

func NewAuthService(userRepo *repository.UserRepository, hubClient *hub.Client, rdb *redis.Client) *AuthService {
	return &AuthService{userRepo: userRepo, hubClient: hubClient, rdb: rdb}
}

// ExchangeCode trades an SSO authorization code for the Hub token pair.
// Each code is accepted once: a replayed code is rejected before the Hub is
// even asked.
func (s *AuthService) ExchangeCode(ctx context.Context, code string) (*hub.TokenPair, error) {
	if s.rdb != nil {
		ok, err := s.rdb.SetNX(ctx, "sso:code:"+code, 1, ssoCodeTTL).Result()
		if err != nil {
			// Redis being down must not lock users out of login.
			logger.Log.Warn("sso code replay guard unavailable", zap.Error(err))
		} else if !ok {
			return nil, util.ErrSSORejected
		}
	}

	pair, err := s.hubClient.VerifyCode(code)
	if err != nil {
		switch {
		case errors.Is(err, hub.ErrCodeRejected):
			return nil, util.ErrSSORejected
		case errors.Is(err, hub.ErrUnavailable):
			return nil, util.ErrHubUnavailable
		default:
			return nil, err
		}
	}
	return pair, nil
}

// GetOrCreateUser provisions a local profile the first time a Hub identity
// shows up. Existing profiles keep their stored role; the Hub remains the
// authority for username and email.
func (s *AuthService) GetOrCreateUser(claims *util.Claims) (*model.User, error) {
	user, err := s.userRepo.FindByHubUserID(claims.HubUserID)
	if err == nil {
		if user.Username != claims.Username || user.Email != claims.Email {
			user.Username = claims.Username
			user.Email = claims.Email
			if err := s.userRepo.Update(user); err != nil {
				logger.Log.Warn("failed to refresh user profile from hub claims",
					zap.String("userId", user.ID), zap.Error(err))
			}
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := claims.Role
	if role == "" {
		role = model.Student
	}
	hubID := claims.HubUserID
	user = &model.User{
		HubUserID: &hubID,
		Username:  claims.Username,
		Email:     claims.Email,
		Role:      role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	logger.Log.Info("provisioned user from hub identity",
		zap.String("userId", user.ID), zap.Int64("hubUserId", hubID), zap.String("role", string(role)))
	return user, nil
}

func (s *AuthService) GetUser(id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}
