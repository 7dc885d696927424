package handlers

import (
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/users
func (a *API) ListUsers(c *gin.Context) {
	d, ok := directiveOrError(c)
	if !ok {
		return
	}
	page, err := a.userService(c).ListPage(c.Request.Context(), d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/users/:id
func (a *API) GetUser(c *gin.Context) {
	u, err := a.userService(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if u == nil {
		RespondDomainError(c, domain.NotFoundError{Resource: "user"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// POST /api/users
func (a *API) CreateUser(c *gin.Context) {
	var req services.CreateUserInput
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := a.userService(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PUT /api/users/:id
func (a *API) UpdateUser(c *gin.Context) {
	var req services.UpdateUserInput
	if !BindJSONOrError(c, &req) {
		return
	}
	id := c.Param("id")
	if err := a.userService(c).Update(c.Request.Context(), id, req); err != nil {
		RespondDomainError(c, err)
		return
	}
	idResponse(c, id)
}

// DELETE /api/users/:id
func (a *API) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := a.userService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	idResponse(c, id)
}

// POST /api/users/:id/change-password
func (a *API) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordInput
	if !BindJSONOrError(c, &req) {
		return
	}
	id := c.Param("id")
	if err := a.userService(c).ChangePassword(c.Request.Context(), id, req); err != nil {
		RespondDomainError(c, err)
		return
	}
	idResponse(c, id)
}
