package handlers

import (
	"net/http"

	"storefront/internal/query"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "Request body is required", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid request body", err.Error())
		return false
	}
	return true
}

// directiveOrError reads search, sort, page_size and page_number.
func directiveOrError(c *gin.Context) (query.Directive, bool) {
	d, err := query.ParseDirective(c.Query("search"), c.Query("sort"), c.Query("page_size"), c.Query("page_number"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return query.Directive{}, false
	}
	return d, true
}

func idResponse(c *gin.Context, id string) {
	c.JSON(http.StatusOK, gin.H{"id": id})
}
