package handlers

import (
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/metrics"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/login
func (a *API) Login(c *gin.Context) {
	var req services.LoginInput
	if !BindJSONOrError(c, &req) {
		return
	}

	session, err := a.authService(c).Login(c.Request.Context(), req.Email, req.Password, a.now())
	if err != nil {
		if domain.IsCredentials(err) {
			metrics.LoginFailed()
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
