package predict

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness and outcome counters.
// GET /health
func (h *PredictHandler) Health(c *gin.Context) {
	names := make([]string, 0)
	for _, a := range h.predictService.Assessments() {
		names = append(names, a.Name)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"service":     "riskapi",
		"assessments": names,
		"stats":       h.predictService.Counters().Snapshot(),
	})
}
