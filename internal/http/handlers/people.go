package handlers

import (
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type createPersonRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	AvatarURL string `json:"avatar_url"`
	Password  string `json:"password" binding:"omitempty,min=6,max=72"`
}

func (h *Handler) ListPeople(c *gin.Context) {
	people, err := h.People.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, people)
}

func (h *Handler) CreatePerson(c *gin.Context) {
	var req createPersonRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.People.Create(c.Request.Context(), actorFrom(c), service.CreatePersonInput{
		Name:      req.Name,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
		Password:  req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, p)
}
