package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/http/response"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/apierr"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/ctxutil"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

// AccessClaims is the HS256 token body issued by the account service. Older
// tokens carry the user id in "id" instead of "sub".
type AccessClaims struct {
	LegacyID string `json:"id,omitempty"`
	jwt.RegisteredClaims
}

func (c *AccessClaims) UserID() string {
	if s := strings.TrimSpace(c.Subject); s != "" {
		return s
	}
	return strings.TrimSpace(c.LegacyID)
}

type AuthMiddleware struct {
	log    *logger.Logger
	secret []byte
}

func NewAuthMiddleware(log *logger.Logger, secret string) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("Middleware", "AuthMiddleware"), secret: []byte(secret)}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractTokenFromAll(c)
		if tokenString == "" {
			response.AbortErr(c, apierr.Unauthorized("missing or invalid token"))
			return
		}
		userID, err := am.Verify(tokenString)
		if err != nil {
			am.log.Debug("token rejected", "error", err)
			response.AbortErr(c, apierr.Unauthorized("missing or invalid token"))
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			UserID:      userID,
			TokenString: tokenString,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Verify checks the signature and expiry of tokenString and returns its user id.
func (am *AuthMiddleware) Verify(tokenString string) (string, error) {
	if len(am.secret) == 0 {
		return "", errors.New("jwt secret not configured")
	}
	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return am.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !parsed.Valid {
		return "", errors.New("invalid token")
	}
	userID := claims.UserID()
	if userID == "" {
		return "", errors.New("token has no subject")
	}
	return userID, nil
}

func extractTokenFromAll(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return strings.TrimSpace(c.Query("token"))
}
