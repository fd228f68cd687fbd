package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/shixiaoya/materials/internal/errors"
	"github.com/shixiaoya/materials/internal/middleware"
	"github.com/shixiaoya/materials/internal/service"
)

const refreshTokenCookie = "refresh_token"

// LoginDTO is payload of the login endpoint
type LoginDTO struct {
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Fingerprint string `json:"fingerprint"`
}

// RefreshDTO is payload of the session refresh endpoint
type RefreshDTO struct {
	Fingerprint string `json:"fingerprint"`
}

// ChangePasswordDTO is payload of the password change endpoint
type ChangePasswordDTO struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// AccessToken is issued on successful login and refresh
type AccessToken struct {
	Token     string `json:"accessToken"`
	ExpiresAt int64  `json:"expiresAt"`
}

type AuthHandler struct {
	authSrv service.AuthService
	https   bool
}

func NewAuthHandler(authSrv service.AuthService, https bool) *AuthHandler {
	return &AuthHandler{authSrv: authSrv, https: https}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var dto LoginDTO
	if err := c.Bind(&dto); err != nil {
		return apperrors.NewInvalidArgumentErr(err.Error())
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	session, err := h.authSrv.Login(c.Request().Context(), service.Login{
		Username:    dto.Username,
		Password:    dto.Password,
		Fingerprint: dto.Fingerprint,
		At:          time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	c.SetCookie(h.refreshTokenCookie(session.RefreshToken.ID, session.RefreshToken.ExpiresIn))

	return respondMessage(c, http.StatusOK, map[string]any{
		"token": &AccessToken{
			Token:     session.Token.Signed,
			ExpiresAt: session.Token.ExpiresAt,
		},
		"user": session.User,
	}, "登录成功")
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	tknCookie, err := c.Cookie(refreshTokenCookie)
	if err != nil {
		return apperrors.NewUnauthorizedErr("refresh token cookie is missing - you are not logged in")
	}

	var dto RefreshDTO
	if err := c.Bind(&dto); err != nil {
		return apperrors.NewInvalidArgumentErr(err.Error())
	}

	session, err := h.authSrv.Refresh(c.Request().Context(), service.Refresh{
		Token:       tknCookie.Value,
		Fingerprint: dto.Fingerprint,
		At:          time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	c.SetCookie(h.refreshTokenCookie(session.RefreshToken.ID, session.RefreshToken.ExpiresIn))

	return respond(c, http.StatusOK, &AccessToken{
		Token:     session.Token.Signed,
		ExpiresAt: session.Token.ExpiresAt,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	tknCookie, err := c.Cookie(refreshTokenCookie)
	if err != nil {
		return apperrors.NewUnauthorizedErr("refresh token cookie is missing - you are not logged in")
	}

	if err := h.authSrv.Logout(c.Request().Context(), tknCookie.Value); err != nil {
		return err
	}

	tknCookie.MaxAge = -1
	tknCookie.Path = "/api/auth"
	c.SetCookie(tknCookie)

	return respondMessage(c, http.StatusOK, nil, "已退出登录")
}

func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authSrv.Me(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var dto ChangePasswordDTO
	if err := c.Bind(&dto); err != nil {
		return apperrors.NewInvalidArgumentErr(err.Error())
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	err := h.authSrv.ChangePassword(c.Request().Context(), middleware.UserID(c), dto.OldPassword, dto.NewPassword)
	if err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, nil, "密码修改成功，请重新登录")
}

func (h *AuthHandler) refreshTokenCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    token,
		MaxAge:   maxAge,
		Path:     "/api/auth",
		HttpOnly: true,
		Secure:   h.https,
		SameSite: http.SameSiteStrictMode,
	}
}
