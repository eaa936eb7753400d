package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
	"github.com/BruksfildServices01/fishmaster-api/internal/httpresp"
	"github.com/BruksfildServices01/fishmaster-api/internal/usecase/profile"
)

// AuditLogs lists the caller's audit trail. Dates are days in the caller's
// timezone.
//
//	GET /users/me/audit-logs?action=&entity=&from=YYYY-MM-DD&to=YYYY-MM-DD&page=&limit=
func (h *MeHandler) AuditLogs(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	res, err := h.profile.AuditLogs(c.Request.Context(), p, profile.AuditQuery{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, res)
}
