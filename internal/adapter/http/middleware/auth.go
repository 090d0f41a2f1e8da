package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"dealflow/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ownerIDKey = "owner_id"

var errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication credentials were not provided or are invalid", http.StatusUnauthorized)

// AuthRequired validates an HS256 bearer token and stores the caller as the
// owner id. The owner comes from "sub", or from "user_id" for tokens issued by
// the account service.
func AuthRequired(secret, issuer string) gin.HandlerFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(strings.TrimSpace(tokenStr), claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Printf("[auth][middleware] invalid token path=%s err=%v", c.FullPath(), err)
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		owner := claimString(claims["sub"])
		if owner == "" {
			owner = claimString(claims["user_id"])
		}
		if owner == "" {
			log.Printf("[auth][middleware] token without subject path=%s", c.FullPath())
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		SetOwnerID(c, owner)
		c.Next()
	}
}

func SetOwnerID(c *gin.Context, ownerID string) {
	c.Set(ownerIDKey, ownerID)
}

// OwnerID returns the authenticated owner, or "" outside AuthRequired.
func OwnerID(c *gin.Context) string {
	return c.GetString(ownerIDKey)
}

func claimString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
