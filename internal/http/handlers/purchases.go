package handlers

import (
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/purchases
func (a *API) ListPurchases(c *gin.Context) {
	d, ok := directiveOrError(c)
	if !ok {
		return
	}
	page, err := a.purchaseService(c).ListPage(c.Request.Context(), d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/purchases/:id
func (a *API) GetPurchase(c *gin.Context) {
	p, err := a.purchaseService(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if p == nil {
		RespondDomainError(c, domain.NotFoundError{Resource: "purchase"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /api/purchases
func (a *API) CreatePurchase(c *gin.Context) {
	var req services.PurchaseInput
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := a.purchaseService(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PUT /api/purchases/:id
func (a *API) UpdatePurchase(c *gin.Context) {
	var req services.PurchaseInput
	if !BindJSONOrError(c, &req) {
		return
	}
	id := c.Param("id")
	if _, err := a.purchaseService(c).Update(c.Request.Context(), id, req); err != nil {
		RespondDomainError(c, err)
		return
	}
	idResponse(c, id)
}

// DELETE /api/purchases/:id
func (a *API) DeletePurchase(c *gin.Context) {
	id := c.Param("id")
	if err := a.purchaseService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	idResponse(c, id)
}

// GET /api/purchases/:id/receipt
func (a *API) PurchaseReceipt(c *gin.Context) {
	pdfBytes, filename, err := a.receiptService(c).Generate(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
