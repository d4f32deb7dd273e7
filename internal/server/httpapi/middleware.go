package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/obelousov/pixelboard/internal/common"
)

// requireAccessToken validates the Bearer token on every request in the
// group. An expired token gets a distinguishable code so clients can
// refresh and retry instead of re-authenticating.
func (s *Server) requireAccessToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeError(c, http.StatusUnauthorized, common.CodeUnauthorized, "missing bearer token")
			return
		}

		if err := s.tokens.Validate(token); err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				writeError(c, http.StatusUnauthorized, common.CodeTokenExpired, "access token expired")
				return
			}
			writeError(c, http.StatusUnauthorized, common.CodeUnauthorized, "invalid access token")
			return
		}

		c.Next()
	}
}
