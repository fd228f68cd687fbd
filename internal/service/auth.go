package service

import (
	"context"
	"time"

	"github.com/shixiaoya/materials/internal/auth"
	apperrors "github.com/shixiaoya/materials/internal/errors"
	"github.com/shixiaoya/materials/internal/model"
	"github.com/shixiaoya/materials/internal/repository"
	"github.com/shixiaoya/materials/pkg/db/transactor"
)

// Login is payload of login endpoint
type Login struct {
	Username    string
	Password    string
	Fingerprint string
	At          time.Time
}

// Refresh is payload of session refresh endpoint
type Refresh struct {
	Token       string
	Fingerprint string
	At          time.Time
}

// Session is issued on successful login and refresh
type Session struct {
	User         *model.User
	Token        *auth.Jwt
	RefreshToken model.RefreshToken
}

// AuthService exposes back office authentication operations
type AuthService interface {
	Login(context.Context, Login) (*Session, error)
	Refresh(context.Context, Refresh) (*Session, error)
	Logout(context.Context, string) error
	Me(context.Context, string) (*model.User, error)
	ChangePassword(context.Context, string, string, string) error
}

type authService struct {
	userRepo       repository.UserRepository
	rfrTknRepo     repository.RefreshTokenRepository
	jwtIssuer      *auth.JwtIssuer
	rfrTokenIssuer *auth.RefreshTokenIssuer
	trx            transactor.Transactor
	now            func() time.Time
}

// NewAuthService builds AuthService
func NewAuthService(
	jwtIssuer *auth.JwtIssuer,
	rfrTokenIssuer *auth.RefreshTokenIssuer,
	userRepo repository.UserRepository,
	rfrTknRepo repository.RefreshTokenRepository,
	trx transactor.Transactor,
) AuthService {
	return &authService{
		jwtIssuer:      jwtIssuer,
		rfrTokenIssuer: rfrTokenIssuer,
		userRepo:       userRepo,
		rfrTknRepo:     rfrTknRepo,
		trx:            trx,
		now:            time.Now,
	}
}

func (s *authService) Login(ctx context.Context, login Login) (*Session, error) {
	user, err := s.userRepo.FindByUsername(ctx, login.Username)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, apperrors.NewUnauthorizedErr("用户名或密码错误")
	}

	if err := auth.VerifyPassword(user.PasswordHash, login.Password); err != nil {
		return nil, apperrors.NewUnauthorizedErr("用户名或密码错误")
	}

	jwtToken, err := s.jwtIssuer.Sign(user.ID, user.Username, string(user.Role), login.At)
	if err != nil {
		return nil, err
	}

	rfrToken := s.rfrTokenIssuer.Sign(user.ID, login.Fingerprint, login.At)

	err = s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		userTkns, err := s.rfrTknRepo.FindTokensByUserID(ctx, user.ID)
		if err != nil {
			return err
		}

		if len(userTkns) >= s.rfrTokenIssuer.TokensMaxCount() {
			if err := s.rfrTknRepo.DeleteByUserID(ctx, user.ID); err != nil {
				return err
			}
		}

		if err := s.rfrTknRepo.Create(ctx, rfrToken); err != nil {
			return err
		}
		return s.userRepo.UpdateLastLogin(ctx, user.ID, login.At)
	})
	if err != nil {
		return nil, err
	}

	return &Session{User: user, Token: jwtToken, RefreshToken: rfrToken}, nil
}

func (s *authService) Refresh(ctx context.Context, refresh Refresh) (*Session, error) {
	rfrToken, err := s.rfrTknRepo.FindByID(ctx, refresh.Token)
	if err != nil {
		return nil, err
	}

	if rfrToken == nil {
		return nil, apperrors.NewUnauthorizedErr("non-existent refresh token provided")
	}

	if err := s.rfrTknRepo.DeleteByID(ctx, rfrToken.ID); err != nil {
		return nil, err
	}

	if err := auth.VerifyRefreshToken(*rfrToken, refresh.Fingerprint, refresh.At); err != nil {
		return nil, apperrors.NewUnauthorizedErr(err.Error())
	}

	user, err := s.userRepo.FindByID(ctx, rfrToken.UserID)
	if err != nil {
		return nil, err
	}

	if user == nil || !user.IsActive {
		return nil, apperrors.NewUnauthorizedErr("user is not allowed to sign in")
	}

	jwtToken, err := s.jwtIssuer.Sign(user.ID, user.Username, string(user.Role), refresh.At)
	if err != nil {
		return nil, err
	}

	newRfrToken := s.rfrTokenIssuer.Sign(user.ID, refresh.Fingerprint, refresh.At)
	if err := s.rfrTknRepo.Create(ctx, newRfrToken); err != nil {
		return nil, err
	}

	return &Session{User: user, Token: jwtToken, RefreshToken: newRfrToken}, nil
}

func (s *authService) Logout(ctx context.Context, tokenID string) error {
	return s.rfrTknRepo.DeleteByID(ctx, tokenID)
}

func (s *authService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundErr("user does not exist")
	}
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFoundErr("user does not exist")
	}

	if err := auth.VerifyPassword(user.PasswordHash, oldPassword); err != nil {
		return apperrors.NewBusinessErr("oldPassword", "当前密码不正确")
	}

	hash, err := auth.GeneratePasswordHash(newPassword)
	if err != nil {
		return err
	}

	return s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return err
		}
		// password change invalidates every open session
		return s.rfrTknRepo.DeleteByUserID(ctx, user.ID)
	})
}
