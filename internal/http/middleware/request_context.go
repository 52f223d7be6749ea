package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/quantumatlas/atlas-backend/internal/http/dto"
)

// AttachAPIBase resolves the API root once per request so handlers can build hrefs.
// A non-empty public URL is used as is.
func AttachAPIBase(public string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dto.CtxAPIBase, dto.BaseURL(c, public))
		c.Next()
	}
}
