package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
	"github.com/BruksfildServices01/fishmaster-api/internal/httpresp"
	"github.com/BruksfildServices01/fishmaster-api/internal/usecase/onboarding"
)

type OnboardingHandler struct {
	fishTypes *onboarding.ListFishTypes
	status    *onboarding.GetStatus
	complete  *onboarding.Complete
	log       logrus.FieldLogger
}

func NewOnboardingHandler(
	fishTypes *onboarding.ListFishTypes,
	status *onboarding.GetStatus,
	complete *onboarding.Complete,
	log logrus.FieldLogger,
) *OnboardingHandler {
	return &OnboardingHandler{
		fishTypes: fishTypes,
		status:    status,
		complete:  complete,
		log:       log,
	}
}

type OnboardingFishRequest struct {
	Name       string `json:"name"`
	FishTypeID uint   `json:"fishTypeId"`
}

type OnboardingWaterRequest struct {
	Ph          *float64 `json:"ph"`
	Temperature *float64 `json:"temperature"`
}

// Field checks live in the use case so that every failure carries its own
// error code.
type CompleteOnboardingRequest struct {
	UserName        string                  `json:"userName"`
	TankName        string                  `json:"tankName"`
	TankSize        int                     `json:"tankSize"`
	Fish            []OnboardingFishRequest `json:"fish"`
	WaterParameters *OnboardingWaterRequest `json:"waterParameters"`
}

func (h *OnboardingHandler) FishTypes(c *gin.Context) {
	types, err := h.fishTypes.Execute(c.Request.Context(), c.Query("careLevel"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, types)
}

func (h *OnboardingHandler) Status(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	st, err := h.status.Execute(c.Request.Context(), p)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, st)
}

func (h *OnboardingHandler) Complete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req CompleteOnboardingRequest
	if !bindJSON(c, &req) {
		return
	}

	in := onboarding.CompleteInput{
		UserName: req.UserName,
		TankName: req.TankName,
		TankSize: req.TankSize,
		Fish:     make([]onboarding.FishInput, 0, len(req.Fish)),
	}
	for _, f := range req.Fish {
		in.Fish = append(in.Fish, onboarding.FishInput{Name: f.Name, FishTypeID: f.FishTypeID})
	}
	if req.WaterParameters != nil {
		in.WaterParameters = &onboarding.WaterInput{
			Ph:          req.WaterParameters.Ph,
			Temperature: req.WaterParameters.Temperature,
		}
	}

	res, err := h.complete.Execute(c.Request.Context(), p, in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, res)
}
