package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/eyramt/examhall/internal/dto"
)

const principalKey = "principal"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Principal is the authenticated caller extracted from the bearer token.
// Code doubles as the session-scratch owner key and as the input to
// hash-mode set assignment.
type Principal struct {
	ID    uint
	Code  string
	Role  string
	Class string
}

type claims struct {
	Code  string `json:"code"`
	Role  string `json:"role"`
	Class string `json:"class,omitempty"`
	jwt.RegisteredClaims
	UserID uint `json:"user_id"`
}

// Auth validates the Authorization bearer token and stores the Principal in
// the request context.
func Auth(signingKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		var cl claims
		token, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(signingKey), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid token"})
			return
		}

		c.Set(principalKey, Principal{
			ID:    cl.UserID,
			Code:  cl.Code,
			Role:  cl.Role,
			Class: cl.Class,
		})
		c.Next()
	}
}

// RequireRole rejects callers whose role matches none of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if ok {
			for _, role := range roles {
				if p.Role == role {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "insufficient role"})
	}
}

func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
