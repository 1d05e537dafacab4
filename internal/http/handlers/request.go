package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/http/response"
	"github.com/yungbote/contractpay-backend/internal/platform/ctxutil"
	"github.com/yungbote/contractpay-backend/internal/platform/timeutil"
)

// callerID returns the profile resolved by the profile middleware.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	scope := ctxutil.ScopeFrom(c.Request.Context())
	if !scope.Authenticated() {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errMissingProfile)
		return uuid.Nil, false
	}
	return scope.ProfileID, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, string(domainagg.CodeInvalidArgument), err)
		return uuid.Nil, false
	}
	return id, true
}

func reportWindow(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := timeutil.ParseBound(c.Query("start"), false)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, string(domainagg.CodeInvalidArgument), errBadStart)
		return time.Time{}, time.Time{}, false
	}
	end, err := timeutil.ParseBound(c.Query("end"), true)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, string(domainagg.CodeInvalidArgument), errBadEnd)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
