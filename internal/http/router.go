// Package httpapi wires the HTTP transport (Gin) to the dispenser services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation and device IDs, logging/redaction, panic recovery,
// metrics, CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Admin responses are never cached
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-comment-dispenser/docs"
	"github.com/tbourn/go-comment-dispenser/internal/config"
	"github.com/tbourn/go-comment-dispenser/internal/domain"
	"github.com/tbourn/go-comment-dispenser/internal/http/handlers"
	"github.com/tbourn/go-comment-dispenser/internal/http/middleware"
	"github.com/tbourn/go-comment-dispenser/internal/repo"
	"github.com/tbourn/go-comment-dispenser/internal/services"
)

// messageRepoShim adapts the repository free functions to the
// services.MessageRepo interface expected by the ChatService.
type messageRepoShim struct{}

// CreateMessage proxies repo.CreateMessage.
func (messageRepoShim) CreateMessage(ctx context.Context, db *gorm.DB, thread, side, content string) (*domain.Message, error) {
	return repo.CreateMessage(ctx, db, thread, side, content)
}

// ListThreadMessages proxies repo.ListThreadMessages.
func (messageRepoShim) ListThreadMessages(ctx context.Context, db *gorm.DB, thread string) ([]domain.Message, error) {
	return repo.ListThreadMessages(ctx, db, thread)
}

// ListAllMessages proxies repo.ListAllMessages.
func (messageRepoShim) ListAllMessages(ctx context.Context, db *gorm.DB) ([]domain.Message, error) {
	return repo.ListAllMessages(ctx, db)
}

// CountUnread proxies repo.CountUnread.
func (messageRepoShim) CountUnread(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountUnread(ctx, db)
}

// Services bundles the dispenser services built from one configuration.
// They share a Store so list-level serialization holds across endpoints.
type Services struct {
	Comments *services.CommentService
	Draws    *services.DrawService
	Bulk     *services.BulkService
	Chat     *services.ChatService
	Images   *services.ImageService
}

// NewServices builds every service over db using the dispensing policies
// in cfg.
func NewServices(db *gorm.DB, cfg config.Config) *Services {
	d := cfg.Dispense
	st := services.NewStore()

	chat := services.NewChatService(db, messageRepoShim{}, d.AdminAccessCode)
	if d.MaxMessageRunes > 0 {
		chat.MaxRunes = d.MaxMessageRunes
	}

	return &Services{
		Comments: &services.CommentService{
			DB:                 db,
			Store:              st,
			AccessCode:         d.AdminAccessCode,
			AllowAddWhenLocked: d.AllowAddWhenLocked,
			ResetClearsHistory: d.ResetClearsHistory,
			MaxCommentRunes:    d.MaxCommentRunes,
		},
		Draws: &services.DrawService{
			DB:             db,
			Store:          st,
			Policy:         d.DrawPolicy,
			IdempotencyTTL: cfg.IdempotencyTTL,
		},
		Bulk: &services.BulkService{
			DB:         db,
			Store:      st,
			AccessCode: d.AdminAccessCode,
			Policy:     d.DrawPolicy,
			MaxCount:   d.MaxBulkCount,
		},
		Chat: chat,
		Images: &services.ImageService{
			DB:         db,
			Blobs:      services.DBBlobStore{DB: db},
			AccessCode: d.AdminAccessCode,
			MaxBytes:   d.MaxImageBytes,
		},
	}
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and returns the services it built, so the caller can run background
// jobs against the same Store.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID, DeviceID: correlation id and caller identity
//  3. RedactingLogger: structured logs with credential scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per device/IP, bypass on replay)
//  9. CORS, security headers and gzip
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) *Services {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())
	r.Use(middleware.DeviceID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit, wide enough for one image upload
	r.Use(limitBody(bodyLimit(cfg.Dispense.MaxImageBytes)))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics("/metrics", "/health"))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		func(ctx context.Context, deviceID, listID, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, deviceID, listID, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 8) Token-bucket rate limiter per device/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByDeviceOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (allow all if none configured)
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:      cfg.Security.EnableHSTS,
		HSTSMaxAge:      cfg.Security.HSTSMaxAge,
		NoStorePrefixes: []string{joinPath(cfg.APIBasePath, "/admin")},
		EnablePolicy:    true,
		Expose:          []string{"ETag", handlers.HeaderReplayed},
	}))

	// Image bytes are already compressed; Prometheus negotiates its own gzip.
	r.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/metrics"}),
		gzip.WithExcludedPathsRegexs([]string{`/rating-images/[^/]+/content$`}),
	))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// API docs
	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	svc := NewServices(db, cfg)
	h := handlers.New(svc.Comments, svc.Draws, svc.Bulk, svc.Chat, svc.Images)
	h.MaxUploadBytes = cfg.Dispense.MaxImageBytes

	api := groupWithPrefix(r, cfg.APIBasePath) // e.g. "/api/v1"
	{
		// Lists and draws
		api.GET("/lists", h.ListIDs)
		api.GET("/lists/locked", h.LockedListIDs)
		api.GET("/lists/:id/locked", h.IsLocked)
		api.GET("/lists/:id/remaining", h.Remaining)
		api.GET("/lists/:id/available", h.Available)
		api.POST("/lists/:id/generate", h.Generate)
		api.GET("/history", h.History)

		// Bulk export
		api.POST("/lists/:id/bulk", h.BulkGenerate)

		// Messages
		api.POST("/messages", h.SendMessage)
		api.GET("/messages", h.ListMessages)

		// Rating images
		api.POST("/rating-images", h.UploadImage)
	}

	adm := api.Group("/admin")
	{
		adm.POST("/lists", h.CreateList)
		adm.DELETE("/lists", h.ClearAll)
		adm.DELETE("/lists/:id", h.DeleteList)
		adm.GET("/lists/totals", h.AllListTotals)
		adm.GET("/lists/locked/total", h.LockedListsTotal)
		adm.POST("/lists/:id/comments", h.AddComment)
		adm.GET("/lists/:id/comments", h.CommentList)
		adm.DELETE("/lists/:id/comments/:commentId", h.RemoveComment)
		adm.GET("/lists/:id/total", h.CommentListTotal)
		adm.POST("/lists/:id/reset", h.ResetList)
		adm.POST("/lists/:id/lock", h.LockList)
		adm.POST("/lists/:id/unlock", h.UnlockList)

		adm.PUT("/bulk-key", h.SetBulkKey)
		adm.DELETE("/bulk-key", h.ResetBulkKey)
		adm.GET("/bulk-key", h.GetBulkKey)

		adm.GET("/messages", h.AdminMessages)
		adm.POST("/messages", h.ReplyMessage)

		adm.GET("/rating-images", h.ListImages)
		adm.GET("/rating-images/count", h.CountImages)
		adm.GET("/rating-images/total", h.TotalImages)
		adm.GET("/rating-images/:id/content", h.ImageContent)
		adm.DELETE("/rating-images/:userName/:id", h.RemoveImage)
		adm.DELETE("/rating-images", h.RemoveAllImages)
	}

	return svc
}

// corsMiddleware allows every origin when none are configured; otherwise
// only the allowlist. Credentials are never allowed.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "If-None-Match",
			handlers.HeaderAccessCode, handlers.HeaderBulkKey, handlers.HeaderDeviceID,
			middleware.HeaderIdempotencyKey,
		},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag", "Retry-After", handlers.HeaderReplayed},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	return cors.New(cc)
}

// bodyLimit caps request bodies at 1 MiB, or one image plus multipart
// framing when images may be larger.
func bodyLimit(maxImage int64) int64 {
	const base = 1 << 20
	if n := maxImage + 64<<10; n > base {
		return n
	}
	return base
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

func joinPath(base, p string) string {
	if base == "" || base == "/" {
		return p
	}
	return base + p
}
