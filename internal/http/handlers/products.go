package handlers

import (
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/products
func (a *API) ListProducts(c *gin.Context) {
	d, ok := directiveOrError(c)
	if !ok {
		return
	}
	page, err := a.productService(c).ListPage(c.Request.Context(), d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/products/:id
func (a *API) GetProduct(c *gin.Context) {
	p, err := a.productService(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if p == nil {
		RespondDomainError(c, domain.NotFoundError{Resource: "product"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /api/products
func (a *API) CreateProduct(c *gin.Context) {
	var req services.ProductInput
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := a.productService(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PUT /api/products/:id
func (a *API) UpdateProduct(c *gin.Context) {
	var req services.ProductInput
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := a.productService(c).Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/products/:id
func (a *API) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := a.productService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	idResponse(c, id)
}
