package predict

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cardia/riskapi/internal/app/domains/services/svpredict"
	"cardia/riskapi/internal/app/server/views"
)

// Results shows the combined risk once every assessment has been completed
// in this session; otherwise it sends the user back to the first form.
// GET /results
func (h *PredictHandler) Results(c *gin.Context) {
	risks := h.sessions.Read(c.Request)

	combined, err := h.predictService.Combine(risks)
	if errors.Is(err, svpredict.ErrIncompleteResults) {
		c.Redirect(http.StatusFound, views.HomePath)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.HTML(http.StatusOK, views.ResultsPage,
		views.NewResults(h.predictService.Assessments(), risks, combined, h.nav))
}
