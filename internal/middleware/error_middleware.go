package middleware

import (
	"net/http"

	"agree-disagree/internal/transport/httpdto"
	agree_errors "agree-disagree/pkg/errors"
	"agree-disagree/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler logs errors attached to the context. Client errors are logged
// at debug level; anything else is an error. A response is only written if
// the handler left the request unanswered.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.OrDefault(l).WithContext(c.Request.Context())
		if status := agree_errors.StatusOf(err); status < http.StatusInternalServerError {
			log.Debug("request rejected", zap.Int("status", status), zap.Error(err))
		} else {
			log.Error("request error", zap.Error(err))
		}

		if !c.Writer.Written() {
			httpdto.WriteError(c, err)
		}
	}
}
