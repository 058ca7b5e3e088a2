package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an error that carries the HTTP status it should be reported with.
type Error struct {
	Code    int
	Message string
}

func (e Error) Error() string {
	return e.Message
}

// NewError creates an Error reported with the given status.
func NewError(code int, message string) Error {
	return Error{
		Code:    code,
		Message: message,
	}
}

// AbortWithError writes err as an error response and aborts the chain.
// Errors that are not an Error are reported as 500.
func AbortWithError(c *gin.Context, err error) {
	var e Error
	if !errors.As(err, &e) {
		e = NewError(http.StatusInternalServerError, err.Error())
	}
	ErrorResponse(c, e.Code, e.Message)
	c.Abort()
}
