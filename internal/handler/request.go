package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
	appErrors "github.com/noah-isme/sees-portal/pkg/errors"
)

func pickQuery(c *gin.Context, preferred string, fallback string) string {
	if value := c.Query(preferred); value != "" {
		return value
	}
	return c.Query(fallback)
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be an integer", name))
	}
	return value, nil
}

func boolQuery(c *gin.Context, name string) (bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a boolean", name))
	}
	return value, nil
}

func scopeQuery(c *gin.Context) (models.EventScope, error) {
	raw := strings.ToLower(strings.TrimSpace(c.Query("scope")))
	if raw == "" {
		return models.ScopeAll, nil
	}
	scope := models.EventScope(raw)
	if !scope.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, "scope must be one of all, organized, registered, sponsored")
	}
	return scope, nil
}

func eventListRequest(c *gin.Context) (dto.EventListRequest, error) {
	scope, err := scopeQuery(c)
	if err != nil {
		return dto.EventListRequest{}, err
	}
	page, err := intQuery(c, "page", 1)
	if err != nil {
		return dto.EventListRequest{}, err
	}
	return dto.EventListRequest{
		Scope:    scope,
		Query:    strings.TrimSpace(pickQuery(c, "q", "query")),
		Category: strings.TrimSpace(c.Query("category")),
		Date:     strings.TrimSpace(c.Query("date")),
		Time:     strings.TrimSpace(c.Query("time")),
		Page:     page,
	}, nil
}

func validate(v *validator.Validate, req interface{}) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s failed %s validation", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
}
