package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Activity handles GET /activity?limit=N
func (h *Handler) Activity(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondFail(c, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = n
	}

	logs, err := h.Audit.Recent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, logs)
}
