package predict

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cardia/riskapi/internal/app/domains/entity/etassessment"
	"cardia/riskapi/internal/app/pkg/errorx"
	"cardia/riskapi/internal/app/server/views"
)

// Index renders a blank form for the default assessment.
// GET /
func (h *PredictHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, views.FormPage, h.newForm(h.predictService.Default(), nil))
}

// Predict scores the default assessment.
// POST /predict
func (h *PredictHandler) Predict(c *gin.Context) {
	h.predictForm(c, h.predictService.Default())
}

// AssessIndex renders a blank form for a named assessment.
// GET /assess/:name
func (h *PredictHandler) AssessIndex(c *gin.Context) {
	a, ok := h.lookup(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, views.FormPage, h.newForm(a, nil))
}

// AssessPredict scores a named assessment.
// POST /assess/:name/predict
func (h *PredictHandler) AssessPredict(c *gin.Context) {
	a, ok := h.lookup(c)
	if !ok {
		return
	}
	h.predictForm(c, a)
}

func (h *PredictHandler) lookup(c *gin.Context) (*etassessment.Assessment, bool) {
	a, ok := h.predictService.Assessment(c.Param("name"))
	if !ok {
		c.HTML(http.StatusNotFound, views.ErrorPage, &views.ErrorView{
			PageTitle: "Not Found",
			Message:   "No such assessment.",
			Nav:       h.nav,
		})
		return nil, false
	}
	return a, true
}

// predictForm re-renders the form with the submitted values and either the
// result or a short error message.
func (h *PredictHandler) predictForm(c *gin.Context, a *etassessment.Assessment) {
	raw := make(etassessment.RawSubmission, len(a.Features))
	for _, name := range a.Features {
		raw[name] = c.PostForm(name)
	}
	form := h.newForm(a, raw)
	ctx := c.Request.Context()

	result, err := h.predictService.Predict(ctx, a.Name, raw)
	if err != nil {
		status := http.StatusInternalServerError
		var fieldErr *errorx.FieldError
		if errors.As(err, &fieldErr) {
			status = http.StatusBadRequest
		}
		c.HTML(status, views.FormPage, form.WithError(errorx.UserMessage(err)))
		return
	}

	if err := h.sessions.Record(c.Writer, c.Request, a.Name, result.Probability); err != nil {
		h.log.Warnf(ctx, "store session risk failed: %v", err)
	}
	c.HTML(http.StatusOK, views.FormPage, form.WithResult(result))
}
