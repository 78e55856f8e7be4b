package predict

import (
	"cardia/riskapi/internal/app/domains/entity/etassessment"
	"cardia/riskapi/internal/app/domains/services/svpredict"
	"cardia/riskapi/internal/app/infra/session"
	"cardia/riskapi/internal/app/pkg/logger"
	"cardia/riskapi/internal/app/server/views"
)

// PredictHandler serves the HTML forms, the combined results page and the JSON API.
type PredictHandler struct {
	predictService *svpredict.PredictService
	sessions       *session.Store
	log            logger.Logger
	nav            []views.NavLink
}

// NewPredictHandler builds the navigation once from the service's assessments.
func NewPredictHandler(predictService *svpredict.PredictService, sessions *session.Store, log logger.Logger) *PredictHandler {
	return &PredictHandler{
		predictService: predictService,
		sessions:       sessions,
		log:            log,
		nav:            views.Navigation(predictService.Assessments(), predictService.Default().Name),
	}
}

func (h *PredictHandler) newForm(a *etassessment.Assessment, raw etassessment.RawSubmission) *views.Form {
	defaultName := h.predictService.Default().Name
	return views.NewForm(a, views.ActionPath(a.Name, defaultName), raw, h.nav)
}
