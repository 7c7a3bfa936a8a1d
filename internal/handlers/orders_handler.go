package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-storefront-admin/internal/notify"
	"github.com/imrishuroy/go-storefront-admin/internal/orders"
	"github.com/imrishuroy/go-storefront-admin/internal/validation"
)

type ordersQuery struct {
	page
	Status string `form:"status" json:"status"`
}

func (a *api) registerOrders(r gin.IRouter, admin gin.HandlerFunc) {
	// checkout is public; everything else is back office
	r.POST("/orders", a.createOrder)
	r.GET("/orders", admin, a.listOrders)
	r.GET("/orders/:id", admin, a.getOrder)
	r.PUT("/orders/:id", admin, a.updateOrderStatus)
	r.DELETE("/orders/:id", admin, a.deleteOrder)
	r.GET("/orders-stats", admin, a.orderStats)
}

func (a *api) createOrder(c *gin.Context) {
	var req orders.NewOrder
	if !a.bind(c, &req) {
		return
	}
	o, err := a.orders.Create(c.Request.Context(), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.publish(c, notify.Event{
		Type:       notify.TypeOrderCreated,
		EntityID:   o.ID,
		Reference:  o.OrderNumber,
		Amount:     o.Total,
		OccurredAt: o.CreatedAt,
	})
	c.JSON(http.StatusOK, o)
}

func (a *api) listOrders(c *gin.Context) {
	var q ordersQuery
	if !a.bindQuery(c, &q) {
		return
	}
	list, err := a.orders.List(c.Request.Context(), orders.Filter{Status: q.Status, Skip: q.Skip, Limit: q.Limit})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *api) getOrder(c *gin.Context) {
	o, err := a.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (a *api) updateOrderStatus(c *gin.Context) {
	var req validation.StatusUpdate
	if !a.bind(c, &req) {
		return
	}
	o, err := a.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (a *api) deleteOrder(c *gin.Context) {
	if err := a.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	deleted(c, "Order")
}

func (a *api) orderStats(c *gin.Context) {
	st, err := a.orders.Stats(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
