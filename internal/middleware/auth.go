package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vertice.mx/concesionario/internal/policy"
	"vertice.mx/concesionario/pkg/token"
)

type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

// RequireAuth accepts the token from Authorization: Bearer or the legacy
// x-access-token header and stashes the caller identity in the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			tokenString = c.GetHeader("x-access-token")
		}

		if tokenString == "" {
			c.JSON(http.StatusForbidden, gin.H{"message": "No se proporcionó token de autenticación"})
			c.Abort()
			return
		}

		claims, err := token.Parse(tokenString, m.secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Token no válido o expirado"})
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Token no válido o expirado"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_rol", claims.Rol)
		c.Set("caller", policy.Caller{ID: userID, Rol: claims.Rol, Authenticated: true})
		c.Next()
	}
}

// Require consults the authorization policy for the given action. It runs
// after RequireAuth, so a denial here is a role problem, not a token one.
func (m *AuthMiddleware) Require(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerFromContext(c)

		decision := policy.Authorize(caller, action, policy.Target{})
		if !decision.Allowed {
			if decision.Reason == policy.ReasonUnauthenticated {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "No autenticado"})
			} else {
				c.JSON(http.StatusForbidden, gin.H{"message": "Requiere rol de administrador"})
			}
			c.Abort()
			return
		}

		c.Next()
	}
}

// CallerFromContext rebuilds the policy caller; unauthenticated requests
// yield the zero caller.
func CallerFromContext(c *gin.Context) policy.Caller {
	if v, exists := c.Get("caller"); exists {
		if caller, ok := v.(policy.Caller); ok {
			return caller
		}
	}
	return policy.Caller{}
}
