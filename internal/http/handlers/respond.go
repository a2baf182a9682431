package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"taskboard/internal/logger"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation errors name fields by their JSON key.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondFail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// respondError maps service and repository errors to a status code. Unknown
// errors are logged and reported as a bare "internal error".
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondFail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrTaskNotFound),
		errors.Is(err, repository.ErrPersonNotFound):
		respondFail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrEmailTaken):
		respondFail(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondFail(c, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrInvalidToken):
		respondFail(c, http.StatusUnauthorized, "unauthorized")
	default:
		_ = c.Error(err)
		logger.WithContext(c.Request.Context()).Error("request failed",
			"error", err,
			"method", c.Request.Method,
			"route", c.FullPath(),
		)
		respondFail(c, http.StatusInternalServerError, "internal error")
	}
}

// bindJSON decodes and validates the body and answers 400 itself on failure.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		respondFail(c, http.StatusBadRequest, fieldMessage(verrs[0]))
		return false
	}
	respondFail(c, http.StatusBadRequest, "invalid JSON body")
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
