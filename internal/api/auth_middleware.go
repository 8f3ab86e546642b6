package api

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luccabranco/wildspire/internal/constants"
)

// Context keys under which the session middleware stores the authenticated
// tamer's identity for downstream handlers.
const (
	ctxTamerEmail = "tamerEmail"
	ctxTamerName  = "tamerName"
)

// setSessionCookie installs the signed session token. The cookie is httpOnly;
// the Secure flag is opt-in so local development over plain HTTP keeps working.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := os.Getenv(constants.EnvSessionSecureCookie) == "1"
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.CookieSessionName, "", -1, "/", "", false, true)
}

// AuthRequired gates battle and profile endpoints: it validates the session
// cookie and exposes the tamer's email and display name to handlers. Requests
// without a valid session never reach the battle services.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.CookieSessionName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseAndValidateSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(ctxTamerEmail, claims.Subject)
		c.Set(ctxTamerName, claims.Name)
		c.Next()
	}
}

// sessionEmail returns the authenticated tamer's email, or "" outside an
// authenticated request.
func sessionEmail(c *gin.Context) string {
	if v, ok := c.Get(ctxTamerEmail); ok {
		s, _ := v.(string)
		return s
	}
	return ""
}

// sessionTamerName returns the display name carried in the session claims.
func sessionTamerName(c *gin.Context) string {
	if v, ok := c.Get(ctxTamerName); ok {
		s, _ := v.(string)
		return s
	}
	return ""
}
