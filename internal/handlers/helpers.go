package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/fishmaster-api/internal/auth"
	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
	"github.com/BruksfildServices01/fishmaster-api/internal/middleware"
)

// principal fetches the caller or writes a 401.
func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Authentication required")
		return auth.Principal{}, false
	}
	return p, true
}

// pathID parses a positive numeric path parameter or writes a 400.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Path parameter "+name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.Write(c, http.StatusBadRequest, "invalid_request", err.Error())
		return false
	}
	return true
}
