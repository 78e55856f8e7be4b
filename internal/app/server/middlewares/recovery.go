package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cardia/riskapi/internal/app/pkg/ginx"
	"cardia/riskapi/internal/app/pkg/logger"
	"cardia/riskapi/internal/app/server/views"
)

const internalErrorMessage = "Something went wrong. Please try again later."

// Recovery turns a handler panic into a 500 without exposing the panic value.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		log.Errorf(c.Request.Context(), "panic recovered: %v", recovered)
		abortInternal(c)
	})
}

// ErrorHandler answers requests whose handlers attached an error via c.Error
// without writing a response.
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		log.Errorf(c.Request.Context(), "request failed: %v", c.Errors.Last().Err)
		if !c.Writer.Written() {
			abortInternal(c)
		}
	}
}

func abortInternal(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		ginx.InternalError(c, internalErrorMessage)
		c.Abort()
		return
	}
	c.HTML(http.StatusInternalServerError, views.ErrorPage, &views.ErrorView{
		PageTitle: "Error",
		Message:   internalErrorMessage,
	})
	c.Abort()
}
