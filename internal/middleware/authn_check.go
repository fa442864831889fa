package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenResolver maps a bearer token to the uid of the user holding it
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (string, error)
}

// ResolverChain tries each resolver in order and returns the first uid found
type ResolverChain []TokenResolver

func (rc ResolverChain) ResolveToken(ctx context.Context, token string) (string, error) {
	var errs []error
	for _, r := range rc {
		if r == nil {
			continue
		}
		uid, err := r.ResolveToken(ctx, token)
		if err == nil && uid != "" {
			return uid, nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return "", errors.New("token not recognized")
	}
	return "", errors.Join(errs...)
}

// AuthMiddleware checks the bearer token and sets the user uid in the context
func AuthMiddleware(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with 'Bearer '"})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
			return
		}

		// Session cache, then Postgres, then Firebase ID token verification
		userUID, err := resolver.ResolveToken(c.Request.Context(), token)
		if err != nil || userUID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("uid", userUID)
		c.Next()
	}
}
