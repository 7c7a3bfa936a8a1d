package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-admin/internal/auth"
	"github.com/imrishuroy/go-storefront-admin/internal/validation"
)

func (a *api) registerAuth(r *gin.RouterGroup, admin gin.HandlerFunc) {
	r.POST("/login", a.login)
	r.POST("/verify", admin, a.verify)
	r.GET("/me", admin, a.me)
}

func (a *api) login(c *gin.Context) {
	var req validation.Login
	if !a.bind(c, &req) {
		return
	}
	admin, err := a.creds.Authenticate(req.Email, req.Password)
	if err != nil {
		a.log.Info("admin login rejected", zap.String("client_ip", c.ClientIP()))
		c.Header("WWW-Authenticate", "Bearer")
		a.fail(c, err)
		return
	}
	token, err := a.tokens.Issue(admin)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

func (a *api) verify(c *gin.Context) {
	admin, _ := auth.AdminFrom(c)
	c.JSON(http.StatusOK, gin.H{"valid": true, "email": admin.Email})
}

func (a *api) me(c *gin.Context) {
	admin, _ := auth.AdminFrom(c)
	c.JSON(http.StatusOK, gin.H{"email": admin.Email, "name": admin.Name})
}
