package predict

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cardia/riskapi/internal/app/domains/apimodel/request"
	"cardia/riskapi/internal/app/domains/apimodel/response"
	"cardia/riskapi/internal/app/domains/services/svpredict"
	"cardia/riskapi/internal/app/pkg/errorx"
	"cardia/riskapi/internal/app/pkg/ginx"
)

// APIPredict scores a JSON submission.
// POST /api/v1/predict/:name
func (h *PredictHandler) APIPredict(c *gin.Context) {
	name := c.Param("name")
	if _, ok := h.predictService.Assessment(name); !ok {
		ginx.NotFound(c, "assessment not found")
		return
	}

	var req request.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	result, err := h.predictService.Predict(c.Request.Context(), name, req.ToRawSubmission())
	if err != nil {
		var fieldErr *errorx.FieldError
		switch {
		case errors.As(err, &fieldErr):
			ginx.BadRequestWithFieldError(c, fieldErr)
		case errors.Is(err, svpredict.ErrUnknownAssessment):
			ginx.NotFound(c, "assessment not found")
		default:
			ginx.InternalError(c, errorx.UserMessage(err))
		}
		return
	}

	if err := h.sessions.Record(c.Writer, c.Request, name, result.Probability); err != nil {
		h.log.Warnf(c.Request.Context(), "store session risk failed: %v", err)
	}
	ginx.Success(c, response.FromPredictionResult(name, result))
}

// APIAssessments lists the configured assessments and their input rules.
// GET /api/v1/assessments
func (h *PredictHandler) APIAssessments(c *gin.Context) {
	assessments := h.predictService.Assessments()
	out := make([]*response.AssessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		out = append(out, response.FromAssessment(a))
	}
	ginx.Success(c, out)
}

// APIResults returns the combined risk stored in the session cookie.
// GET /api/v1/results
func (h *PredictHandler) APIResults(c *gin.Context) {
	risks := h.sessions.Read(c.Request)

	combined, err := h.predictService.Combine(risks)
	if errors.Is(err, svpredict.ErrIncompleteResults) {
		ginx.Error(c, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.log.Errorf(c.Request.Context(), "combine risks failed: %v", err)
		ginx.InternalError(c, errorx.UserMessage(err))
		return
	}

	ginx.Success(c, response.FromCombined(risks, combined))
}
