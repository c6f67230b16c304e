package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/apperr"
	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/server/respond"
)

const callerKey = "coopledger.caller"

// Authenticator resolves a bearer credential to the calling user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// RequireAuth rejects requests without a valid bearer credential with 401 and
// stores the resolved caller on the context.
func RequireAuth(authn Authenticator, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			respond.Error(c, logger, apperr.Unauthenticated("missing bearer token"))
			return
		}

		caller, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication rejected", zap.Error(err))
			respond.Error(c, logger, err)
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// Caller returns the authenticated user stored by RequireAuth.
func Caller(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return models.User{}, false
	}
	caller, ok := v.(models.User)
	return caller, ok
}

// SetCaller stores caller on the context.
func SetCaller(c *gin.Context, caller models.User) {
	c.Set(callerKey, caller)
}

func bearerToken(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
