package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
	"github.com/BruksfildServices01/fishmaster-api/internal/httpresp"
	"github.com/BruksfildServices01/fishmaster-api/internal/usecase/profile"
)

type MeHandler struct {
	profile *profile.Service
	log     logrus.FieldLogger
}

func NewMeHandler(svc *profile.Service, log logrus.FieldLogger) *MeHandler {
	return &MeHandler{profile: svc, log: log}
}

type UpdateMeRequest struct {
	Name               *string `json:"name" binding:"omitempty,max=100"`
	ContactNumber      *string `json:"contactNumber" binding:"omitempty,max=30"`
	EmailNotifications *bool   `json:"emailNotifications"`
	SMSNotifications   *bool   `json:"smsNotifications"`
	Timezone           *string `json:"timezone" binding:"omitempty,timezone"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	me, err := h.profile.Me(c.Request.Context(), p)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, me)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	me, err := h.profile.Update(c.Request.Context(), p, profile.UpdateInput{
		Name:               req.Name,
		ContactNumber:      req.ContactNumber,
		EmailNotifications: req.EmailNotifications,
		SMSNotifications:   req.SMSNotifications,
		Timezone:           req.Timezone,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, me)
}

func (h *MeHandler) DeleteMe(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	if err := h.profile.Delete(c.Request.Context(), p); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.NoContent(c)
}
