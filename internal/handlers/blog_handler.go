package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-storefront-admin/internal/blog"
)

type blogQuery struct {
	page
	Published *bool `form:"published" json:"published"`
}

func (a *api) registerBlog(r gin.IRouter, admin gin.HandlerFunc) {
	r.GET("/blog", a.listPosts)
	r.GET("/blog/:id", a.getPost)
	r.POST("/blog", admin, a.createPost)
	r.PUT("/blog/:id", admin, a.updatePost)
	r.DELETE("/blog/:id", admin, a.deletePost)
}

func (a *api) listPosts(c *gin.Context) {
	var q blogQuery
	if !a.bindQuery(c, &q) {
		return
	}
	list, err := a.blog.List(c.Request.Context(), blog.Filter{Published: q.Published, Skip: q.Skip, Limit: q.Limit})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *api) getPost(c *gin.Context) {
	p, err := a.blog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *api) createPost(c *gin.Context) {
	var req blog.NewPost
	if !a.bind(c, &req) {
		return
	}
	p, err := a.blog.Create(c.Request.Context(), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *api) updatePost(c *gin.Context) {
	var req blog.Patch
	if !a.bind(c, &req) {
		return
	}
	p, err := a.blog.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *api) deletePost(c *gin.Context) {
	if err := a.blog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	deleted(c, "Blog post")
}
