package handlers

import (
	"net/http"
	"strings"

	"tenability/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey        = "userId"
	accessTokenParam = "access_token"

	errAuthMissing = "missing Authorization header"
	errAuthFormat  = "invalid Authorization header format"
	errAuthToken   = "invalid or expired token"
)

// userIdMiddleware accepts a bearer token and scopes the request to its user,
// both in the gin context and in the request context the services read.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	h.authenticate(c, false)
}

// wsUserIdMiddleware also takes ?access_token=, since browsers cannot set
// headers on a websocket handshake.
func (h *Handler) wsUserIdMiddleware(c *gin.Context) {
	h.authenticate(c, true)
}

func (h *Handler) authenticate(c *gin.Context, allowQuery bool) {
	header := c.GetHeader("Authorization")
	var token, problem string
	if q := strings.TrimSpace(c.Query(accessTokenParam)); header == "" && allowQuery && q != "" {
		token = q
	} else {
		token, problem = bearerToken(header)
	}
	if problem != "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": problem})
		return
	}

	userID, err := h.services.ParseToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err, "path", c.FullPath())
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errAuthToken})
		return
	}

	c.Set(userIDKey, userID)
	c.Request = c.Request.WithContext(service.WithUser(c.Request.Context(), userID))
	c.Next()
}

func bearerToken(header string) (token, problem string) {
	if header == "" {
		return "", errAuthMissing
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errAuthFormat
	}
	return token, ""
}

// currentUser is the authenticated user, or 0 outside the protected routes.
func currentUser(c *gin.Context) int {
	return c.GetInt(userIDKey)
}
