package pictor

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AdminAuth gates the write endpoints. It accepts an HMAC-signed bearer token
// carrying an admin claim; everything else about identity lives outside this
// service.
func (p *Pictor) AdminAuth() gin.HandlerFunc {
	return func(gc *gin.Context) {
		if len(p.jwtSecret) == 0 {
			gc.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Not configured"})
			return
		}

		authHeader := gc.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			gc.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return p.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			gc.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if admin, _ := claims["admin"].(bool); !admin {
			gc.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		gc.Next()
	}
}
