package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

// Status maps a business error kind to its HTTP status.
func Status(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// Respond writes err as a JSON error. Business errors keep their code and
// message; anything else is logged and reported as a generic 500.
func Respond(c *gin.Context, log logrus.FieldLogger, err error) {
	if be, ok := AsBusiness(err); ok {
		Write(c, Status(be.Kind), be.Code, be.Error())
		return
	}
	log.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}).WithError(err).Error("request failed")
	Internal(c, "internal_error", "Something went wrong, please try again.")
}

// RespondBadRequest is Respond for endpoints that report every rejection
// as 400.
func RespondBadRequest(c *gin.Context, log logrus.FieldLogger, err error) {
	if be, ok := AsBusiness(err); ok {
		BadRequest(c, be.Code, be.Error())
		return
	}
	Respond(c, log, err)
}
