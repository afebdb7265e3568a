package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sees-portal/internal/middleware"
	"github.com/noah-isme/sees-portal/internal/models"
)

func sessionFromContext(c *gin.Context) *models.Session {
	return middleware.SessionFrom(c)
}

func writeMeta(c *gin.Context, stale bool, state models.ViewState) map[string]interface{} {
	middleware.SetStale(c, stale)
	if state != "" {
		middleware.SetViewState(c, state)
	}
	return middleware.ExtractMeta(c)
}
