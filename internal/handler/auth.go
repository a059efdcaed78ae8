package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bootcamp-directory/internal/apperr"
	"github.com/iliyamo/bootcamp-directory/internal/config"
	"github.com/iliyamo/bootcamp-directory/internal/middleware"
	"github.com/iliyamo/bootcamp-directory/internal/model"
	"github.com/iliyamo/bootcamp-directory/internal/repository"
	"github.com/iliyamo/bootcamp-directory/internal/response"
	"github.com/iliyamo/bootcamp-directory/internal/utils"
)

// MsgInvalidCredentials is returned for unknown emails and wrong passwords alike.
const MsgInvalidCredentials = "Invalid credentials"

// UserStore is the subset of repository.UserRepo used by AuthHandler.
type UserStore interface {
	Create(ctx context.Context, name, email, password, role string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// TokenStore is the subset of repository.TokenRepo used by AuthHandler.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	Rotate(ctx context.Context, userID uint64, oldHash, newHash string, exp time.Time) error
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// AuthHandler serves /api/v1/auth.  Publishers and admins obtain the access
// tokens that guard every write route here.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
}

func NewAuthHandler(cfg config.Config, u UserStore, t TokenStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

type registerReq struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,looseemail"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user publisher"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type userPart struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func toUserPart(u model.User) userPart {
	return userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

// Register creates an account and returns a token pair.  Admins cannot
// self-register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return err
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Role == "" {
		req.Role = model.RoleUser
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, req.Role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return &apperr.UniquenessError{Field: "email", Cause: err}
		}
		return err
	}
	u := model.User{ID: uid, Name: strings.TrimSpace(req.Name), Email: req.Email, Role: req.Role}
	resp, err := h.issue(ctx, u)
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusCreated, resp)
}

// Login verifies credentials and returns a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.New(http.StatusUnauthorized, MsgInvalidCredentials)
	}
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return apperr.New(http.StatusUnauthorized, MsgInvalidCredentials)
	}
	resp, err := h.issue(ctx, u)
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, resp)
}

// Refresh exchanges a live refresh token for a new pair.  The old token is
// revoked in the same transaction.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return err
	}
	raw := strings.TrimSpace(req.RefreshToken)
	if raw == "" {
		return validationErr("refresh_token", "Please add a refresh token")
	}
	hash := utils.HashRefreshRaw(raw)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return refreshErr(err)
	}
	u, err := h.Users.GetByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.New(http.StatusUnauthorized, middleware.MsgNotAuthorized)
	}
	if err != nil {
		return err
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return err
	}
	next, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return err
	}
	if err := h.Tokens.Rotate(ctx, u.ID, hash, utils.HashRefreshRaw(next.Raw), next.Exp); err != nil {
		return refreshErr(err)
	}
	return response.Success(c, http.StatusOK, authResp{
		User:    toUserPart(u),
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: next.Raw, Expires: next.Exp},
	})
}

// Logout revokes the refresh token in the body, or every token of the
// caller when only a valid bearer token is presented.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	raw := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if raw != "" {
		hash := utils.HashRefreshRaw(raw)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			return refreshErr(err)
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return err
		}
		return response.Empty(c)
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	claims, err := utils.ParseAccessToken(h.Cfg.JWTSecret, strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
	if header == "" || err != nil {
		return validationErr("refresh_token", "Provide a refresh token or a bearer token")
	}
	uid, _ := claims.UserID()
	if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		return err
	}
	return response.Empty(c)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return apperr.New(http.StatusUnauthorized, middleware.MsgNotAuthorized)
	}
	u, err := h.Users.GetByID(c.Request().Context(), uid)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.New(http.StatusUnauthorized, middleware.MsgNotAuthorized)
	}
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, toUserPart(u))
}

// issue creates and stores a fresh token pair for u.
func (h *AuthHandler) issue(ctx context.Context, u model.User) (authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return authResp{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return authResp{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return authResp{}, err
	}
	return authResp{
		User:    toUserPart(u),
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	}, nil
}

func refreshErr(err error) error {
	if errors.Is(err, repository.ErrRefreshInvalid) {
		return apperr.New(http.StatusUnauthorized, "Invalid or expired refresh token")
	}
	return err
}

func validationErr(field, msg string) error {
	verr := &apperr.ValidationError{}
	verr.Add(field, msg)
	return verr
}
