package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestContextFields(c *gin.Context) []interface{} {
	uidVal, _ := c.Get("uid")
	uid := ""
	if s, ok := uidVal.(string); ok {
		uid = s
	}
	return []interface{}{
		"request_id", c.GetString("request_id"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
		"user_uid", uid,
	}
}

func logWithContext(logger *zap.SugaredLogger, c *gin.Context, level string, msg string, fields ...interface{}) {
	if logger == nil {
		return
	}
	all := append(requestContextFields(c), fields...)
	switch level {
	case "debug":
		logger.Debugw(msg, all...)
	case "warn":
		logger.Warnw(msg, all...)
	case "error":
		logger.Errorw(msg, all...)
	default:
		logger.Infow(msg, all...)
	}
}

func (h *FiltersHandler) logDebug(c *gin.Context, msg string, fields ...interface{}) {
	logWithContext(h.logger, c, "debug", msg, fields...)
}

func (h *PresetsHandler) logInfo(c *gin.Context, msg string, fields ...interface{}) {
	logWithContext(h.logger, c, "info", msg, fields...)
}

func (h *PresetsHandler) logError(c *gin.Context, err error, msg string, fields ...interface{}) {
	logWithContext(h.logger, c, "error", msg, append(fields, "error", err)...)
}

// currentUserUID returns the uid set by the auth middleware, writing an error
// response when it is missing
func currentUserUID(c *gin.Context) (string, bool) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}

	userUID, ok := uid.(string)
	if !ok || userUID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return "", false
	}
	return userUID, true
}
