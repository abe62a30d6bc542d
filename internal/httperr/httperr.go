package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError is the body of every non-2xx JSON response.
type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{Code: code, Message: message})
}

// Abort writes the error and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{Code: code, Message: message})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

// InvalidBody answers a request whose body could not be decoded.
func InvalidBody(c *gin.Context) {
	BadRequest(c, CodeValidation, "Datos inválidos.")
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError renders err, mapping business codes to their status and
// message. Anything else is a persistence/internal failure.
func FromError(c *gin.Context, err error) {
	if be, ok := AsBusiness(err); ok {
		m := lookup(be.Code)
		c.JSON(m.status, HTTPError{
			Code:    be.Code,
			Message: m.message,
			Detail:  be.Detail,
		})
		return
	}

	_ = c.Error(err)
	Internal(c, CodePersistence, "Error interno, intenta de nuevo.")
}
