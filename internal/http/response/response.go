package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError maps err through apierr. Server-side failures hide the cause from the client.
func RespondAPIError(c *gin.Context, err error) {
	apiErr := apierr.From(err)
	if apiErr == nil {
		apiErr = apierr.New(http.StatusInternalServerError, "internal", nil)
	}
	if err != nil {
		_ = c.Error(err)
	}
	var aggErr *domainagg.Error
	switch {
	case errors.As(err, &aggErr) && aggErr.Code.IsRejection() && aggErr.Message != "":
		RespondError(c, apiErr.Status, apiErr.Code, errors.New(aggErr.Message))
	case apiErr.Status >= http.StatusInternalServerError:
		RespondError(c, apiErr.Status, apiErr.Code, errors.New(http.StatusText(apiErr.Status)))
	default:
		RespondError(c, apiErr.Status, apiErr.Code, apiErr)
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
