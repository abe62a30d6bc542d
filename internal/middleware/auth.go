package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	ContextUserRole = "userRole"
	ContextSubject  = "subject"

	RoleAdmin = "admin"
)

// AuthMiddleware admits requests carrying a valid HS256 admin token.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		role, _ := claims["role"].(string)
		if role != RoleAdmin {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Acceso restringido.")
			return
		}
		sub, _ := claims.GetSubject()

		c.Set(ContextUserRole, role)
		c.Set(ContextSubject, sub)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Abort(c, http.StatusUnauthorized, code, "Autenticación requerida.")
}
