package handlers

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arnavshah/study-planner-go/pkg/auth"
	"github.com/arnavshah/study-planner-go/pkg/cache"
	"github.com/arnavshah/study-planner-go/pkg/database"
	"github.com/arnavshah/study-planner-go/pkg/middleware"
	"github.com/arnavshah/study-planner-go/pkg/models"
	"github.com/arnavshah/study-planner-go/pkg/planner"
)

//go:embed static/*
var staticEmbed embed.FS

// Handler contains dependencies for the route handlers
type Handler struct {
	DB     *gorm.DB
	Auth   *auth.Authenticator
	Cache  *cache.PlanCache
	Logger *zap.Logger
	// Limiter enforces API key budgets; nil disables rate limiting
	Limiter *middleware.KeyRateLimiter

	// DefaultRateLimit is given to API keys seen for the first time
	DefaultRateLimit int
	// Now is used for usage dates and the example plan; defaults to time.Now
	Now func() time.Time
}

func (h *Handler) log() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func bearer(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the HMAC API key for planner routes
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearer(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			return
		}

		userID, err := h.Auth.VerifyHMACKey(key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			return
		}

		// Fetch or create the key record to track usage
		var apiKey database.APIKey
		err = h.DB.Where(database.APIKey{Key: key}).FirstOrCreate(&apiKey, database.APIKey{
			Key:        key,
			Name:       userID,
			KeyPreview: auth.KeyPreview(key),
			RateLimit:  h.DefaultRateLimit,
		}).Error
		if err != nil {
			h.log().Error("loading api key", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not load API key"})
			return
		}
		now := h.now()
		h.DB.Model(&apiKey).Update("last_used", now)
		apiKey.LastUsed = &now

		c.Set(middleware.APIKeyContextKey, &apiKey)
		c.Set("userID", userID)
		c.Next()
	}
}

// planStatus maps planner errors to HTTP status codes
func planStatus(err error) int {
	switch {
	case errors.Is(err, planner.ErrInvalidWindow),
		errors.Is(err, planner.ErrNoSubjects),
		errors.Is(err, planner.ErrDuplicateSubject),
		errors.Is(err, planner.ErrInvalidConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// runPlan binds the request body, plans it (through the cache when enabled)
// and records usage. It writes the error response itself and returns false on failure.
func (h *Handler) runPlan(c *gin.Context) (*models.PlanResult, bool) {
	var input models.PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	ctx := c.Request.Context()
	result, hit, err := h.Cache.Get(ctx, input)
	if err != nil {
		h.log().Warn("plan cache read failed", zap.Error(err))
	}
	if !hit {
		result, err = planner.Plan(input)
		if err != nil {
			c.JSON(planStatus(err), gin.H{"error": err.Error()})
			return nil, false
		}
		if err := h.Cache.Set(ctx, input, result); err != nil {
			h.log().Warn("plan cache write failed", zap.Error(err))
		}
	}

	for _, w := range result.Warnings {
		h.log().Info("plan warning",
			zap.String("code", string(w.Code)),
			zap.String("message", w.Message),
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		)
	}

	h.RecordUsage(c, len(input.Subjects), result)
	return result, true
}

// PlanJSON handles the JSON planning request
func (h *Handler) PlanJSON(c *gin.Context) {
	result, ok := h.runPlan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

// RecordUsage adds the request to today's usage row of the calling key
func (h *Handler) RecordUsage(c *gin.Context, subjectCount int, result *models.PlanResult) {
	apiKeyRaw, exists := c.Get(middleware.APIKeyContextKey)
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	minutes := 0
	for _, d := range result.Daily {
		minutes += d.Minutes
	}
	delta := database.UsageDelta{Subjects: subjectCount, Days: len(result.Days), Minutes: minutes}
	if err := database.RecordUsage(h.DB, apiKey.ID, h.now().Format("2006-01-02"), delta); err != nil {
		h.log().Error("recording usage", zap.Uint("key_id", apiKey.ID), zap.Error(err))
	}
}

// Example returns the sample input anchored at today
func (h *Handler) Example(c *gin.Context) {
	c.JSON(http.StatusOK, planner.ExampleInput(models.DateOf(h.now())))
}

// Login handles admin login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.MasterUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Auth.CreateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// GenerateKey creates a new API key using the HMAC strategy
func (h *Handler) GenerateKey(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		RateLimit int    `json:"rate_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || strings.Contains(req.Name, ".") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required and must not contain '.'"})
		return
	}
	if req.RateLimit <= 0 {
		req.RateLimit = h.DefaultRateLimit
	}

	key := h.Auth.GenerateHMACKey(req.Name)
	apiKey := database.APIKey{
		Key:        key,
		Name:       req.Name,
		KeyPreview: auth.KeyPreview(key),
		RateLimit:  req.RateLimit,
	}
	if err := h.DB.Create(&apiKey).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create key record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   apiKey.ID,
		"name": req.Name,
		"key":  key,
	})
}

// ListKeys returns all API keys
func (h *Handler) ListKeys(c *gin.Context) {
	var keys []database.APIKey
	if err := h.DB.Order("id").Find(&keys).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list keys"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// RevokeKey deletes an API key
func (h *Handler) RevokeKey(c *gin.Context) {
	id := c.Param("id")
	res := h.DB.Delete(&database.APIKey{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete key"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Key not found"})
		return
	}
	if h.Limiter != nil {
		if keyID, err := strconv.ParseUint(id, 10, 64); err == nil {
			h.Limiter.Forget(uint(keyID))
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Key revoked"})
}

// UpdateKeyLimit updates the daily request limit of a key
func (h *Handler) UpdateKeyLimit(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		RateLimit int `json:"rate_limit" form:"rate_limit"`
	}

	// Try JSON first, then query
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rate_limit is required"})
			return
		}
	}
	if req.RateLimit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rate limit"})
		return
	}

	res := h.DB.Model(&database.APIKey{}).Where("id = ?", id).Update("rate_limit", req.RateLimit)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update key limit"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Key not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rate limit updated successfully"})
}

// GetUsage returns usage stats for a key
func (h *Handler) GetUsage(c *gin.Context) {
	var key database.APIKey
	if err := h.DB.First(&key, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Key not found"})
		return
	}
	usage, err := database.RecentUsage(h.DB, key.ID, 30)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}

// AdminInterface serves the admin web interface from embedded files
func (h *Handler) AdminInterface(c *gin.Context) {
	data, err := staticEmbed.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "static/index.html not found in embedded FS"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// GetStaticFS returns the embedded filesystem for static assets
func (h *Handler) GetStaticFS() http.FileSystem {
	sub, err := fs.Sub(staticEmbed, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
