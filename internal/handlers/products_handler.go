package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-storefront-admin/internal/products"
)

type productsQuery struct {
	page
	Featured *bool `form:"featured" json:"featured"`
}

func (a *api) registerProducts(r gin.IRouter, admin gin.HandlerFunc) {
	r.GET("/products", a.listProducts)
	r.GET("/products/:id", a.getProduct)
	r.POST("/products", admin, a.createProduct)
	r.PUT("/products/:id", admin, a.updateProduct)
	r.DELETE("/products/:id", admin, a.deleteProduct)
}

func (a *api) listProducts(c *gin.Context) {
	var q productsQuery
	if !a.bindQuery(c, &q) {
		return
	}
	list, err := a.products.List(c.Request.Context(), products.Filter{Featured: q.Featured, Skip: q.Skip, Limit: q.Limit})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *api) getProduct(c *gin.Context) {
	p, err := a.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *api) createProduct(c *gin.Context) {
	var req products.NewProduct
	if !a.bind(c, &req) {
		return
	}
	p, err := a.products.Create(c.Request.Context(), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *api) updateProduct(c *gin.Context) {
	var req products.Patch
	if !a.bind(c, &req) {
		return
	}
	p, err := a.products.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *api) deleteProduct(c *gin.Context) {
	if err := a.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	deleted(c, "Product")
}
