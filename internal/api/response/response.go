package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope around every JSON body the server writes.
// Extras holds the payload on success and {"message": ...} on failure.
type Response struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Extras  any  `json:"extras"`
}

// NewResponse builds an envelope; code repeats the HTTP status.
func NewResponse(success bool, code int, extras any) Response {
	return Response{
		Success: success,
		Code:    code,
		Extras:  extras,
	}
}

// SuccessResponse writes a 200 envelope carrying extras as the payload.
func SuccessResponse(c *gin.Context, extras any) {
	c.JSON(
		http.StatusOK,
		NewResponse(
			true,
			http.StatusOK,
			extras,
		))
}

// ErrorResponse writes a failed envelope with status code and message.
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(
		code,
		NewResponse(
			false,
			code,
			map[string]any{
				"message": message,
			},
		))
}
