package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obelousov/pixelboard/internal/common"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, status int, code string, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": errorBody{Code: code, Message: message}})
}

// writeServiceError translates sentinel errors from the service layer into
// HTTP responses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeError(c, http.StatusNotFound, common.CodeNotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(c, http.StatusConflict, common.CodeConflict, "already exists")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		writeError(c, http.StatusUnauthorized, common.CodeTokenExpired, "refresh token expired")
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(c, http.StatusUnauthorized, common.CodeUnauthorized, "unauthorized")
	default:
		writeError(c, http.StatusInternalServerError, common.CodeInternal, "internal error")
	}
}
