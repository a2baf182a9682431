package handlers

import (
	"errors"
	"net/http"

	"taskboard/internal/http/middleware"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /login. Every credential failure gets the same 401.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.Auth.Login(c.Request.Context(), actorFrom(c), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, res)
}

// Me returns the person behind the bearer token.
func (h *Handler) Me(c *gin.Context) {
	personID := c.GetString(middleware.ContextPersonID)
	p, err := h.People.Get(c.Request.Context(), personID)
	if err != nil {
		if errors.Is(err, repository.ErrPersonNotFound) {
			respondFail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, p)
}
