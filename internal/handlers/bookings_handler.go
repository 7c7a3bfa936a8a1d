package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-storefront-admin/internal/bookings"
	"github.com/imrishuroy/go-storefront-admin/internal/notify"
	"github.com/imrishuroy/go-storefront-admin/internal/validation"
)

type bookingsQuery struct {
	page
	Status string `form:"status" json:"status"`
	Date   string `form:"date" json:"date"`
}

func (a *api) registerBookings(r gin.IRouter, admin gin.HandlerFunc) {
	r.POST("/bookings", a.createBooking)
	r.GET("/bookings-available/:date", a.availableSlots)
	r.GET("/bookings", admin, a.listBookings)
	r.GET("/bookings/:id", admin, a.getBooking)
	r.PUT("/bookings/:id", admin, a.updateBookingStatus)
	r.DELETE("/bookings/:id", admin, a.deleteBooking)
}

func (a *api) createBooking(c *gin.Context) {
	var req bookings.NewBooking
	if !a.bind(c, &req) {
		return
	}
	b, err := a.bookings.Create(c.Request.Context(), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.publish(c, notify.Event{
		Type:       notify.TypeBookingCreated,
		EntityID:   b.ID,
		Reference:  b.BookingNumber,
		Amount:     b.ServicePrice,
		OccurredAt: b.CreatedAt,
	})
	c.JSON(http.StatusOK, b)
}

func (a *api) availableSlots(c *gin.Context) {
	free, err := a.bookings.AvailableSlots(c.Request.Context(), c.Param("date"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availableSlots": free})
}

func (a *api) listBookings(c *gin.Context) {
	var q bookingsQuery
	if !a.bindQuery(c, &q) {
		return
	}
	list, err := a.bookings.List(c.Request.Context(), bookings.Filter{
		Status: q.Status,
		Date:   q.Date,
		Skip:   q.Skip,
		Limit:  q.Limit,
	})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *api) getBooking(c *gin.Context) {
	b, err := a.bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (a *api) updateBookingStatus(c *gin.Context) {
	var req validation.StatusUpdate
	if !a.bind(c, &req) {
		return
	}
	b, err := a.bookings.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (a *api) deleteBooking(c *gin.Context) {
	if err := a.bookings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	deleted(c, "Booking")
}
