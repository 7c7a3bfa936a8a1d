package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const adminContextKey = "auth.admin"

// RequireAdmin rejects requests without a valid admin bearer token.
func RequireAdmin(ts *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "Not authenticated")
			return
		}
		admin, err := ts.Validate(token)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}
		c.Set(adminContextKey, admin)
		c.Next()
	}
}

// AdminFrom returns the admin stored by RequireAdmin.
func AdminFrom(c *gin.Context) (*Admin, bool) {
	v, ok := c.Get(adminContextKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*Admin)
	return admin, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
}
