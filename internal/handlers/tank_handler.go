package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
	"github.com/BruksfildServices01/fishmaster-api/internal/httpresp"
	"github.com/BruksfildServices01/fishmaster-api/internal/imaging"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
	"github.com/BruksfildServices01/fishmaster-api/internal/usecase/tank"
)

// the multipart envelope gets some room on top of the image itself
const maxPhotoBytes = imaging.MaxUploadBytes + 1<<20

type TankHandler struct {
	tanks *tank.Service
	log   logrus.FieldLogger
}

func NewTankHandler(svc *tank.Service, log logrus.FieldLogger) *TankHandler {
	return &TankHandler{tanks: svc, log: log}
}

// --------- Requests ---------

type TankRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	SizeLiters int    `json:"sizeLiters" binding:"required,gt=0"`
}

type AddFishRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	FishTypeID uint   `json:"fishTypeId" binding:"required"`
}

type WaterParametersRequest struct {
	Ph          *float64 `json:"ph" binding:"required,ph"`
	Temperature *float64 `json:"temperature" binding:"required"`
}

type AlertThresholdsRequest struct {
	GlobalAlertsEnabled bool `json:"globalAlertsEnabled"`
	EmailAlertsEnabled  bool `json:"emailAlertsEnabled"`
	InAppAlertsEnabled  bool `json:"inAppAlertsEnabled"`

	TemperatureEnabled bool     `json:"temperatureEnabled"`
	TemperatureMin     *float64 `json:"temperatureMin" binding:"omitempty,gte=0"`
	TemperatureMax     *float64 `json:"temperatureMax" binding:"omitempty,gte=0"`

	PhEnabled bool     `json:"phEnabled"`
	PhMin     *float64 `json:"phMin" binding:"omitempty,ph"`
	PhMax     *float64 `json:"phMax" binding:"omitempty,ph"`

	TurbidityEnabled bool     `json:"turbidityEnabled"`
	TurbidityMax     *float64 `json:"turbidityMax" binding:"omitempty,gte=0"`

	AmmoniaEnabled bool     `json:"ammoniaEnabled"`
	AmmoniaMax     *float64 `json:"ammoniaMax" binding:"omitempty,gte=0"`
}

func (r AlertThresholdsRequest) model() models.AlertThreshold {
	return models.AlertThreshold{
		GlobalAlertsEnabled: r.GlobalAlertsEnabled,
		EmailAlertsEnabled:  r.EmailAlertsEnabled,
		InAppAlertsEnabled:  r.InAppAlertsEnabled,
		TemperatureEnabled:  r.TemperatureEnabled,
		TemperatureMin:      r.TemperatureMin,
		TemperatureMax:      r.TemperatureMax,
		PhEnabled:           r.PhEnabled,
		PhMin:               r.PhMin,
		PhMax:               r.PhMax,
		TurbidityEnabled:    r.TurbidityEnabled,
		TurbidityMax:        r.TurbidityMax,
		AmmoniaEnabled:      r.AmmoniaEnabled,
		AmmoniaMax:          r.AmmoniaMax,
	}
}

// --------- Tanks ---------

func (h *TankHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	tanks, err := h.tanks.List(c.Request.Context(), p)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, tanks)
}

func (h *TankHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	t, err := h.tanks.Get(c.Request.Context(), p, id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, t)
}

func (h *TankHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req TankRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.tanks.Create(c.Request.Context(), p, tank.TankInput{Name: req.Name, SizeLiters: req.SizeLiters})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, t)
}

func (h *TankHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req TankRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.tanks.Update(c.Request.Context(), p, id, tank.TankInput{Name: req.Name, SizeLiters: req.SizeLiters})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, t)
}

func (h *TankHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.tanks.Delete(c.Request.Context(), p, id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.NoContent(c)
}

// --------- Fish ---------

func (h *TankHandler) AddFish(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AddFishRequest
	if !bindJSON(c, &req) {
		return
	}

	fish, water, err := h.tanks.AddFish(c.Request.Context(), p, id, tank.FishInput{Name: req.Name, FishTypeID: req.FishTypeID})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, gin.H{
		"fish":            fish,
		"waterParameters": water.WaterParameters,
		"warnings":        water.Warnings,
	})
}

func (h *TankHandler) RemoveFish(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fishID, ok := pathID(c, "fishId")
	if !ok {
		return
	}

	water, err := h.tanks.RemoveFish(c.Request.Context(), p, id, fishID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, water)
}

// --------- Water parameters ---------

func (h *TankHandler) GetWaterParameters(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	wp, err := h.tanks.GetWaterParameters(c.Request.Context(), p, id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, wp)
}

func (h *TankHandler) SetWaterParameters(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req WaterParametersRequest
	if !bindJSON(c, &req) {
		return
	}

	wp, err := h.tanks.SetWaterParameters(c.Request.Context(), p, id, *req.Ph, *req.Temperature)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, wp)
}

func (h *TankHandler) RecalculateWaterParameters(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	res, err := h.tanks.RecalculateWaterParameters(c.Request.Context(), p, id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, res)
}

// --------- Alerts ---------

func (h *TankHandler) GetAlerts(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	at, err := h.tanks.GetAlertThresholds(c.Request.Context(), p, id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, at)
}

func (h *TankHandler) SetAlerts(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AlertThresholdsRequest
	if !bindJSON(c, &req) {
		return
	}

	at, err := h.tanks.SetAlertThresholds(c.Request.Context(), p, id, req.model())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, at)
}

// --------- Photo ---------

func (h *TankHandler) UploadPhoto(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes)
	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "photo_required", "Multipart field 'photo' is required (max 10 MB)")
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	defer f.Close()

	url, err := h.tanks.UploadPhoto(c.Request.Context(), p, id, f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *TankHandler) Photo(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	url, err := h.tanks.PhotoURL(c.Request.Context(), p, id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
