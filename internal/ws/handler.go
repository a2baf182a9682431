package ws

import (
	"net/http"
	"slices"

	"taskboard/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// TokenParser resolves a bearer token to a person id.
type TokenParser interface {
	Parse(token string) (string, error)
}

// HandleWS upgrades to a board event stream. The token query parameter is
// optional; an invalid one is rejected. An empty allowedOrigins accepts any origin.
func HandleWS(hub *Hub, tokens TokenParser, allowedOrigins []string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, origin)
		},
	}

	return func(c *gin.Context) {
		var personID string
		if token := c.Query("token"); token != "" {
			id, err := tokens.Parse(token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
				return
			}
			personID = id
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade error", "error", err)
			return
		}

		client := NewClient(personID, conn, hub)
		go client.Run()
	}
}
