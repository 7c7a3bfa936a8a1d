// Package handlers exposes the storefront over HTTP with gin.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-admin/internal/apperr"
	"github.com/imrishuroy/go-storefront-admin/internal/auth"
	"github.com/imrishuroy/go-storefront-admin/internal/aws"
	"github.com/imrishuroy/go-storefront-admin/internal/blog"
	"github.com/imrishuroy/go-storefront-admin/internal/bookings"
	"github.com/imrishuroy/go-storefront-admin/internal/config"
	"github.com/imrishuroy/go-storefront-admin/internal/contact"
	"github.com/imrishuroy/go-storefront-admin/internal/notify"
	"github.com/imrishuroy/go-storefront-admin/internal/orders"
	"github.com/imrishuroy/go-storefront-admin/internal/products"
	"github.com/imrishuroy/go-storefront-admin/internal/refnum"
	"github.com/imrishuroy/go-storefront-admin/internal/services"
	"github.com/imrishuroy/go-storefront-admin/internal/slots"
	"github.com/imrishuroy/go-storefront-admin/internal/validation"
)

// HandlerConfig groups dependencies for the API handlers.
type HandlerConfig struct {
	DynamoDBClient aws.DynamoDBAPI
	Tables         config.Tables
	Credentials    *auth.CredentialStore
	Tokens         *auth.TokenService
	Notifier       notify.Notifier   // optional, defaults to notify.Nop
	Logger         *zap.Logger       // optional, defaults to zap.L()
	RefNums        *refnum.Generator // optional, defaults to refnum.New()
	// HealthCheck reports whether the document store is reachable.
	HealthCheck func(ctx context.Context) error
}

type api struct {
	v           *validatorv10.Validate
	log         *zap.Logger
	notifier    notify.Notifier
	creds       *auth.CredentialStore
	tokens      *auth.TokenService
	healthCheck func(ctx context.Context) error

	products *products.Store
	services *services.Store
	orders   *orders.Store
	bookings *bookings.Store
	blog     *blog.Store
	contact  *contact.Store
}

func newAPI(cfg HandlerConfig) *api {
	a := &api{
		v:           validation.New(),
		log:         cfg.Logger,
		notifier:    cfg.Notifier,
		creds:       cfg.Credentials,
		tokens:      cfg.Tokens,
		healthCheck: cfg.HealthCheck,
	}
	if a.log == nil {
		a.log = zap.L()
	}
	if a.notifier == nil {
		a.notifier = notify.Nop{}
	}
	refs := cfg.RefNums
	if refs == nil {
		refs = refnum.New()
	}

	db, t := cfg.DynamoDBClient, cfg.Tables
	a.products = products.NewStore(db, t.Products)
	a.services = services.NewStore(db, t.Services)
	a.orders = orders.NewStore(db, t.Orders, refs)
	a.bookings = bookings.NewStore(db, t.Bookings, slots.NewStore(db, t.BookingSlots), a.services, refs)
	a.blog = blog.NewStore(db, t.Blog)
	a.contact = contact.NewStore(db, t.Contact)
	return a
}

// RegisterRoutes registers every storefront route on r.
func RegisterRoutes(r gin.IRouter, cfg HandlerConfig) {
	a := newAPI(cfg)
	admin := auth.RequireAdmin(cfg.Tokens)

	r.GET("/", a.root)
	r.GET("/health", a.health)

	a.registerAuth(r.Group("/auth"), admin)
	a.registerProducts(r, admin)
	a.registerServices(r, admin)
	a.registerOrders(r, admin)
	a.registerBookings(r, admin)
	a.registerBlog(r, admin)
	a.registerContact(r, admin)
}

func (a *api) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Storefront API is running"})
}

func (a *api) health(c *gin.Context) {
	if a.healthCheck != nil {
		if err := a.healthCheck(c.Request.Context()); err != nil {
			a.log.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "disconnected"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "connected"})
}

// fail writes err as {"detail": ...}. Errors without a kind are logged and
// reported as a bare 500.
func (a *api) fail(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind == apperr.KindInternal {
		a.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(ae.Kind.HTTPStatus(), gin.H{"detail": ae.Detail})
}

func (a *api) bind(c *gin.Context, out interface{}) bool {
	if err := validation.BindAndValidate(c, out, a.v); err != nil {
		a.fail(c, err)
		return false
	}
	return true
}

func (a *api) bindQuery(c *gin.Context, out interface{}) bool {
	if err := validation.BindQueryAndValidate(c, out, a.v); err != nil {
		a.fail(c, err)
		return false
	}
	return true
}

func deleted(c *gin.Context, entity string) {
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s deleted successfully", entity)})
}

// publish hands ev to the notifier. Failures are logged and never reach
// the caller.
func (a *api) publish(c *gin.Context, ev notify.Event) {
	ev.CorrelationID = c.GetHeader("X-Request-Id")
	if err := a.notifier.Notify(c.Request.Context(), ev); err != nil {
		a.log.Warn("publish event failed",
			zap.String("event_type", ev.Type),
			zap.String("entity_id", ev.EntityID),
			zap.Error(err),
		)
	}
}

// page holds the paging query parameters shared by list endpoints.
type page struct {
	Skip  int `form:"skip" json:"skip" validate:"gte=0"`
	Limit int `form:"limit" json:"limit"`
}
