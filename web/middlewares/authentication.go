package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"kintai.app/kintai/security"
	"kintai.app/kintai/web/common"
)

const authContextKey = "auth"

// AuthContext is the acting owner, resolved exactly once at the boundary.
// Handlers and ledger operations take it explicitly and never re-derive it.
type AuthContext struct {
	OwnerID string
	Name    string
}

func parseJwt(tokenStr string, jwtSecret []byte) (*security.IdentityClaims, error) {
	claims := &security.IdentityClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Authentication checks for a valid Bearer token (or the application
// cookie) and stores the resolved AuthContext on the request.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			cookie, err := c.Cookie("kintai.ApplicationCookie")
			if err != nil {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}

			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}

			tokenStr = parts[1]
		}

		claims, err := parseJwt(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		if claims.OwnerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("token carries no owner identity"))
			return
		}

		c.Set(authContextKey, &AuthContext{
			OwnerID: claims.OwnerID,
			Name:    claims.Name,
		})
		c.Next()
	}
}

// GetAuth returns the AuthContext resolved by Authentication.
func GetAuth(c *gin.Context) (*AuthContext, bool) {
	value, ok := c.Get(authContextKey)
	if !ok {
		return nil, false
	}
	auth, ok := value.(*AuthContext)
	return auth, ok
}
