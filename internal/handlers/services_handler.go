package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-storefront-admin/internal/services"
)

func (a *api) registerServices(r gin.IRouter, admin gin.HandlerFunc) {
	r.GET("/services", a.listServices)
	r.GET("/services/:id", a.getService)
	r.POST("/services", admin, a.createService)
	r.PUT("/services/:id", admin, a.updateService)
	r.DELETE("/services/:id", admin, a.deleteService)
}

func (a *api) listServices(c *gin.Context) {
	var q page
	if !a.bindQuery(c, &q) {
		return
	}
	list, err := a.services.List(c.Request.Context(), services.Filter{Skip: q.Skip, Limit: q.Limit})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *api) getService(c *gin.Context) {
	svc, err := a.services.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (a *api) createService(c *gin.Context) {
	var req services.NewService
	if !a.bind(c, &req) {
		return
	}
	svc, err := a.services.Create(c.Request.Context(), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (a *api) updateService(c *gin.Context) {
	var req services.Patch
	if !a.bind(c, &req) {
		return
	}
	svc, err := a.services.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (a *api) deleteService(c *gin.Context) {
	if err := a.services.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	deleted(c, "Service")
}
