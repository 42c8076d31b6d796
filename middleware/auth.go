package middleware

import (
	"net/http"
	"time"

	"restaurant-site-api/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims marks an admin console session.
type AdminClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// UserClaims carries a site visitor's identity after magic-link verification.
type UserClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// MagicLinkClaims is the short-lived token embedded in a login email.
type MagicLinkClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAdminToken creates the signed token stored in the admin cookie.
func GenerateAdminToken(secret []byte) (string, error) {
	claims := AdminClaims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.AdminSessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GenerateUserToken creates the signed token stored in the user cookie.
func GenerateUserToken(secret []byte, userID, email string) (string, error) {
	claims := UserClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.UserSessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GenerateMagicLinkToken creates the short-lived token for a login email.
func GenerateMagicLinkToken(secret []byte, email, name string) (string, error) {
	claims := MagicLinkClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.MagicLinkTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseMagicLinkToken validates a login-email token and returns its claims.
func ParseMagicLinkToken(secret []byte, tokenStr string) (*MagicLinkClaims, error) {
	claims := &MagicLinkClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// AdminRequired validates the admin session cookie.
func AdminRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(config.AdminCookieName)
		if err != nil || cookie == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Admin login required"})
			c.Abort()
			return
		}
		claims := &AdminClaims{}
		token, err := jwt.ParseWithClaims(cookie, claims, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid || !claims.Admin {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired session"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserRequired validates the user session cookie and injects identity into
// the request context.
func UserRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(config.UserCookieName)
		if err != nil || cookie == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Must be logged in"})
			c.Abort()
			return
		}
		claims := &UserClaims{}
		token, err := jwt.ParseWithClaims(cookie, claims, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired session"})
			c.Abort()
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Next()
	}
}

// GetUserID extracts the caller's user id from context.
func GetUserID(c *gin.Context) string {
	val, _ := c.Get("userID")
	id, _ := val.(string)
	return id
}

// GetUserEmail extracts the caller's email from context.
func GetUserEmail(c *gin.Context) string {
	val, _ := c.Get("userEmail")
	email, _ := val.(string)
	return email
}
