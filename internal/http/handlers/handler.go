package handlers

import (
	"taskboard/internal/http/middleware"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Tasks  *service.TaskService
	People *service.PersonService
	Auth   *service.AuthService
	Audit  *service.AuditService
}

func NewHandler(tasks *service.TaskService, people *service.PersonService, auth *service.AuthService, audit *service.AuditService) *Handler {
	return &Handler{
		Tasks:  tasks,
		People: people,
		Auth:   auth,
		Audit:  audit,
	}
}

// actorFrom collects the caller identity set by middleware.OptionalAuth.
func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{
		PersonID:  c.GetString(middleware.ContextPersonID),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
