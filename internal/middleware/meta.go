package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sees-portal/internal/models"
)

const (
	responseMetaKey = "response_meta"
	staleKey        = "stale"
	stateKey        = "state"
)

// WithResponseMeta initialises response metadata storage on the request context.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
		meta := ensureMeta(c)
		if _, exists := meta["processing_time_ms"]; !exists {
			meta["processing_time_ms"] = time.Since(start).Milliseconds()
		}
	}
}

// SetStale flags a response served from the event mirror.
func SetStale(c *gin.Context, stale bool) {
	ensureMeta(c)[staleKey] = stale
}

// SetViewState records the list view state for the response.
func SetViewState(c *gin.Context, state models.ViewState) {
	ensureMeta(c)[stateKey] = string(state)
}

// ExtractMeta returns the metadata map stored on the context.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	return nil
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return map[string]interface{}{}
	}
	if meta := ExtractMeta(c); meta != nil {
		return meta
	}
	newMeta := make(map[string]interface{})
	c.Set(responseMetaKey, newMeta)
	return newMeta
}
