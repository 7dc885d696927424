package handlers

import (
	"time"

	"storefront/internal/auth"
	"storefront/internal/http/middleware"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// API holds the stores and session settings shared by the resource handlers.
// Services are built per request so they carry the request id into logs.
type API struct {
	Users     services.UserStore
	Products  services.ProductStore
	Purchases services.PurchaseStore
	Throttle  *auth.Throttle
	Secret    []byte
	TokenTTL  time.Duration
	Now       func() time.Time
}

func (a *API) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *API) userService(c *gin.Context) services.UserService {
	return services.UserService{Repo: a.Users, RequestID: middleware.GetRequestID(c)}
}

func (a *API) productService(c *gin.Context) services.ProductService {
	return services.ProductService{Repo: a.Products, RequestID: middleware.GetRequestID(c)}
}

func (a *API) purchaseService(c *gin.Context) services.PurchaseService {
	return services.PurchaseService{Repo: a.Purchases, RequestID: middleware.GetRequestID(c)}
}

func (a *API) authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:     a.Users,
		Throttle:  a.Throttle,
		Secret:    a.Secret,
		TokenTTL:  a.TokenTTL,
		RequestID: middleware.GetRequestID(c),
	}
}

func (a *API) receiptService(c *gin.Context) services.ReceiptService {
	return services.ReceiptService{Repo: a.Purchases, RequestID: middleware.GetRequestID(c), Now: a.Now}
}
