package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/contractpay-backend/internal/http/response"
	"github.com/yungbote/contractpay-backend/internal/platform/ctxutil"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
	"github.com/yungbote/contractpay-backend/internal/services"
)

// HeaderProfileID names the caller's profile. It identifies, it does not authenticate.
const HeaderProfileID = "profile_id"

type ProfileMiddleware struct {
	log      *logger.Logger
	profiles services.ProfileService
}

func NewProfileMiddleware(log *logger.Logger, profiles services.ProfileService) *ProfileMiddleware {
	return &ProfileMiddleware{log: log.With("Middleware", "ProfileMiddleware"), profiles: profiles}
}

// RequireProfile resolves the calling profile and stores it in the request context.
func (pm *ProfileMiddleware) RequireProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderProfileID))
		if raw == "" {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errUnauthorized)
			c.Abort()
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errUnauthorized)
			c.Abort()
			return
		}
		profile, err := pm.profiles.Resolve(c.Request.Context(), id)
		if err != nil {
			pm.log.Debug("profile resolution failed", "profile_id", raw, "error", err)
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errUnauthorized)
			c.Abort()
			return
		}
		ctx, scope := ctxutil.EnsureScope(c.Request.Context())
		scope.ProfileID = profile.ID
		scope.Profile = profile
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

var errUnauthorized = errors.New("unknown or missing profile")
