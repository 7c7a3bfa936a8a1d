package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-storefront-admin/internal/contact"
	"github.com/imrishuroy/go-storefront-admin/internal/notify"
	"github.com/imrishuroy/go-storefront-admin/internal/validation"
)

type contactQuery struct {
	page
	Status string `form:"status" json:"status"`
}

func (a *api) registerContact(r gin.IRouter, admin gin.HandlerFunc) {
	r.POST("/contact", a.createMessage)
	r.GET("/contact", admin, a.listMessages)
	r.PUT("/contact/:id", admin, a.updateMessageStatus)
	r.DELETE("/contact/:id", admin, a.deleteMessage)
}

func (a *api) createMessage(c *gin.Context) {
	var req contact.NewMessage
	if !a.bind(c, &req) {
		return
	}
	m, err := a.contact.Create(c.Request.Context(), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.publish(c, notify.Event{
		Type:       notify.TypeContactCreated,
		EntityID:   m.ID,
		OccurredAt: m.CreatedAt,
	})
	c.JSON(http.StatusOK, m)
}

func (a *api) listMessages(c *gin.Context) {
	var q contactQuery
	if !a.bindQuery(c, &q) {
		return
	}
	list, err := a.contact.List(c.Request.Context(), contact.Filter{Status: q.Status, Skip: q.Skip, Limit: q.Limit})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *api) updateMessageStatus(c *gin.Context) {
	var req validation.StatusUpdate
	if !a.bind(c, &req) {
		return
	}
	m, err := a.contact.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (a *api) deleteMessage(c *gin.Context) {
	if err := a.contact.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	deleted(c, "Message")
}
