package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/repository"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// DefaultIdempotencyKeyTTL is used when no TTL is configured
	DefaultIdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	TTL  time.Duration
	Now  func() time.Time
}

func (cfg IdempotencyConfig) withDefaults() IdempotencyConfig {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultIdempotencyKeyTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return cfg
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a receipt or payment mutation is
// retried with the same Idempotency-Key. Requests without a key pass through.
// Reusing a key with a different body is rejected with 422.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	config = config.withDefaults()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		userIDValue, exists := c.Get("user_id")
		if !exists {
			c.Next()
			return
		}
		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Failed to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)
		requestHash := hex.EncodeToString(sum[:])

		now := config.Now()
		reserved, err := config.Repo.Reserve(c.Request.Context(), &entity.IdempotencyKey{
			Key:         idempotencyKey,
			UserID:      userID,
			Endpoint:    c.Request.Method + " " + c.FullPath(),
			RequestHash: requestHash,
			ExpiresAt:   now.Add(config.TTL),
		}, now)
		if err != nil {
			log.Printf("Failed to reserve idempotency key: %v", err)
			c.Next()
			return
		}
		if !reserved {
			replayIdempotent(c, config.Repo, idempotencyKey, userID, requestHash)
			return
		}

		// Capture the response
		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		completed := false
		defer func() {
			if completed {
				return
			}
			if err := config.Repo.Release(context.WithoutCancel(c.Request.Context()), idempotencyKey, userID); err != nil {
				log.Printf("Failed to release idempotency key: %v", err)
			}
		}()

		c.Next()

		// Only successful responses are replayed; failed attempts may be retried
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		if err := config.Repo.Complete(c.Request.Context(), idempotencyKey, userID, status, blw.body.String()); err != nil {
			log.Printf("Failed to store idempotency key: %v", err)
			return
		}
		completed = true
	}
}

// replayIdempotent answers a request whose key is already held by another request
func replayIdempotent(c *gin.Context, repo repository.IdempotencyRepository, key string, userID uuid.UUID, requestHash string) {
	defer c.Abort()

	existing, err := repo.GetByKey(c.Request.Context(), key, userID)
	if err != nil {
		log.Printf("Failed to check idempotency key: %v", err)
		response.ErrorWithCode(c, http.StatusInternalServerError, "Failed to check Idempotency-Key")
		return
	}
	if existing != nil && existing.RequestHash != "" && existing.RequestHash != requestHash {
		response.ErrorWithCode(c, http.StatusUnprocessableEntity,
			"Idempotency-Key was already used with a different request body")
		return
	}
	if existing == nil || existing.IsPending() {
		response.ErrorWithCode(c, http.StatusConflict,
			"A request with this Idempotency-Key is still being processed")
		return
	}

	c.Header("X-Idempotency-Replayed", "true")
	c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
}
