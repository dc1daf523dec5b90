package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the HS256 access token from the Authorization
// header or the access_token cookie.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return secret, nil
		})

		if err != nil || !token.Valid {
			code, msg := "INVALID_TOKEN", "Invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				code, msg = "TOKEN_EXPIRED", "Token expired"
			}
			response.Error(c, http.StatusUnauthorized, code, msg, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		rawID, _ := claims["employee_id"].(string)
		employeeID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || employeeID <= 0 {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Employee ID not found in token", nil)
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)

		c.Set(ContextEmployeeID, employeeID)
		c.Set(ContextRole, role)

		c.Next()
	}
}
