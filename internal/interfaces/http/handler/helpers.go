package handler

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/billing/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// pageOrDefault mirrors the defaults the services apply so response meta
// matches the page actually served
func pageOrDefault(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}

// attachment writes a downloadable file
func attachment(c *gin.Context, filename, contentType string, content []byte) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	if disposition == "" {
		disposition = fmt.Sprintf("attachment; filename=%q", filename)
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, contentType, content)
}

// bindOptionalJSON binds the body when one is present
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}
