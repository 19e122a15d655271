package services

import (
	"context"

	"go.uber.org/zap"

	"kone-backend/internal/auth"
	"kone-backend/internal/cache"
	"kone-backend/internal/models"
	"kone-backend/internal/repositories"
)

// Categorized sign-in failure codes, consumed by the login form.
const (
	LoginBadCredentials = "bad_credentials"
	LoginUnconfirmed    = "unconfirmed"
	LoginUnavailable    = "unavailable"
)

type AuthService struct {
	Repo  *repositories.UserRepository // nil in simulation mode
	JWT   *auth.JWTManager
	Roles *auth.RoleResolver
	Log   *zap.Logger
}

func NewAuthService(repo *repositories.UserRepository, jwt *auth.JWTManager, roles *auth.RoleResolver, log *zap.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Roles: roles, Log: log}
}

// Login authenticates a user and returns a signed token. Failures come
// back as categorized data, not errors: the form branches on the code.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, *models.LoginError) {
	if req.Email == "" || req.Password == "" {
		return nil, &models.LoginError{Code: LoginBadCredentials, Message: "email and password are required"}
	}
	if s.Repo == nil {
		return nil, &models.LoginError{Code: LoginUnavailable, Message: "sign-in is unavailable in simulation mode"}
	}

	var user *models.User

	// Recently verified credentials skip the bcrypt comparison.
	if userID, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); ok {
		if cached, err := s.Repo.Get(ctx, userID); err == nil {
			user = cached
		} else {
			// The account behind the cached entry is gone; drop it so the
			// full check runs next time.
			cache.InvalidateAuth(ctx, req.Email, req.Password)
		}
	}

	if user == nil {
		found, err := s.Repo.GetByEmail(ctx, req.Email)
		if err != nil {
			// Lookup failure and unknown email are indistinguishable to
			// the caller on purpose.
			return nil, &models.LoginError{Code: LoginBadCredentials, Message: "invalid email or password"}
		}
		if !auth.VerifyPassword(found.PasswordHash, req.Password) {
			return nil, &models.LoginError{Code: LoginBadCredentials, Message: "invalid email or password"}
		}
		user = found
		cache.CacheAuth(ctx, req.Email, req.Password, user.ID)
	}

	if !user.Confirmed {
		return nil, &models.LoginError{Code: LoginUnconfirmed, Message: "account is awaiting confirmation"}
	}

	user.Role = s.Roles.Resolve(ctx, user.ID, user.Email)

	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		s.Log.Error("token generation failed", zap.Error(err))
		return nil, &models.LoginError{Code: LoginUnavailable, Message: "sign-in temporarily unavailable"}
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}
