package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resuminator/internal/api/middleware"
	"resuminator/internal/auth"
	"resuminator/internal/database"
	"resuminator/internal/errcode"
)

// AuthHandler serves register, login, logout and profile.
type AuthHandler struct {
	db                    *gorm.DB
	authService           *auth.AuthService
	redis                 redis.UniversalClient
	logger                *slog.Logger
	loginRateLimitPerHour int
	loginLockThreshold    int
	loginLockTTL          time.Duration
	cookieDomain          string
}

// NewAuthHandler constructs the auth handler.
func NewAuthHandler(db *gorm.DB, authService *auth.AuthService, redisClient redis.UniversalClient, logger *slog.Logger, loginRateLimitPerHour int, loginLockThreshold int, loginLockTTL time.Duration, cookieDomain string) *AuthHandler {
	return &AuthHandler{
		db:                    db,
		authService:           authService,
		redis:                 redisClient,
		logger:                logger,
		loginRateLimitPerHour: loginRateLimitPerHour,
		loginLockThreshold:    loginLockThreshold,
		loginLockTTL:          loginLockTTL,
		cookieDomain:          cookieDomain,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(
		slog.String("username", req.Username),
	)

	var existing database.User
	err := h.db.WithContext(ctx).
		Where("username = ? OR email = ?", req.Username, req.Email).
		First(&existing).Error
	if err == nil {
		logger.Info("register conflict: account already exists")
		Unprocessable(c, errcode.DuplicateAccount, "username or email already taken")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("register lookup failed", slog.Any("error", err))
		Internal(c, "failed to create user")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("hash password failed", slog.Any("error", err))
		Internal(c, "failed to create user")
		return
	}

	user := database.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
	}

	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		logger.Error("create user failed", slog.Any("error", err))
		Unprocessable(c, errcode.DuplicateAccount, "failed to create user")
		return
	}

	logger.Info("user registered", slog.Uint64("user_id", uint64(user.ID)))
	c.JSON(http.StatusCreated, userResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials, issues a session token and sets the session
// cookie. Unknown usernames and wrong passwords answer identically.
func (h *AuthHandler) Login(c *gin.Context) {
	ip := c.ClientIP()
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(
		slog.String("username", req.Username),
	)

	// Rate limit: per IP+username per hour.
	rateKey := "rate:login:" + ip + ":" + strings.ToLower(req.Username) + ":" + time.Now().UTC().Format("2006010215")
	count, err := incrWithTTL(ctx, h.redis, rateKey, time.Hour)
	if err != nil {
		count = 0
	}
	if count > int64(h.loginRateLimitPerHour) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	lockKey := "lock:login:" + strings.ToLower(req.Username)
	if ttl, _ := h.redis.TTL(ctx, lockKey).Result(); ttl > 0 {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "account temporarily locked"})
		return
	}

	var user database.User
	if err := h.db.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Info("login failed: user not found")
			_ = h.incrementLoginFail(ctx, strings.ToLower(req.Username))
			h.invalidCredentials(c)
			return
		}
		logger.Error("login query failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Info("login failed: password mismatch", slog.Uint64("user_id", uint64(user.ID)))
		_ = h.incrementLoginFail(ctx, strings.ToLower(req.Username))
		h.invalidCredentials(c)
		return
	}

	_ = h.redis.Del(ctx, "lock:login:fail:"+strings.ToLower(req.Username)).Err()

	token, err := h.authService.IssueToken(user.ID, user.Username)
	if err != nil {
		logger.Error("issue token failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	h.setSessionCookie(c, token)
	logger.Info("user logged in", slog.Uint64("user_id", uint64(user.ID)))
	c.JSON(http.StatusOK, userResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

// Logout clears the session cookie. The token itself carries no expiry, so
// clearing the cookie is what ends the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	stdhttp.SetCookie(c.Writer, &stdhttp.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: stdhttp.SameSiteNoneMode,
		Domain:   h.getCookieDomain(),
	})
	c.JSON(http.StatusOK, true)
}

// Profile answers the caller's current identity, freshly loaded from the
// credential store, or null when no valid session is presented.
func (h *AuthHandler) Profile(c *gin.Context) {
	rawToken := middleware.TokenFromRequest(c)
	if rawToken == "" {
		c.JSON(http.StatusOK, nil)
		return
	}

	claims, err := h.authService.ValidateToken(rawToken)
	if err != nil {
		h.loggerFromContext(c).Info("profile token invalid", slog.Any("error", err))
		c.JSON(http.StatusOK, nil)
		return
	}

	var user database.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		h.loggerFromContext(c).Error("profile lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.JSON(http.StatusOK, userResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

func (h *AuthHandler) invalidCredentials(c *gin.Context) {
	Unprocessable(c, errcode.InvalidCredentials, "invalid username or password")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	// SameSite=None so the cookie travels from the cross-origin frontend;
	// that requires Secure.
	stdhttp.SetCookie(c.Writer, &stdhttp.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: stdhttp.SameSiteNoneMode,
		Domain:   h.getCookieDomain(),
	})
}

func (h *AuthHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

func (h *AuthHandler) getCookieDomain() string { return strings.TrimSpace(h.cookieDomain) }

func (h *AuthHandler) incrementLoginFail(ctx context.Context, username string) error {
	failKey := "lock:login:fail:" + username
	count, err := h.redis.Incr(ctx, failKey).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		_ = h.redis.Expire(ctx, failKey, h.loginLockTTL).Err()
	}
	if count >= int64(h.loginLockThreshold) {
		_ = h.redis.Set(ctx, "lock:login:"+username, "1", h.loginLockTTL).Err()
	}
	return nil
}
