package routers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"cardia/riskapi/internal/app/pkg/logger"
	"cardia/riskapi/internal/app/server/handlers/predict"
	"cardia/riskapi/internal/app/server/middlewares"
	"cardia/riskapi/internal/app/server/views"
)

// Options holds the router settings that come from configuration.
type Options struct {
	CORSOrigins []string
}

// SetupRoutes builds the gin engine: HTML pages at the root, JSON under /api/v1.
func SetupRoutes(predictHandler *predict.PredictHandler, log logger.Logger, opts Options) (*gin.Engine, error) {
	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates failed: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	r.Use(middlewares.RequestID())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.Recovery(log))
	r.Use(middlewares.ErrorHandler(log))
	r.Use(middlewares.CORS(opts.CORSOrigins))

	r.GET("/health", predictHandler.Health)

	r.GET("/", predictHandler.Index)
	r.POST("/predict", predictHandler.Predict)
	r.GET("/results", predictHandler.Results)

	assess := r.Group("/assess")
	{
		assess.GET("/:name", predictHandler.AssessIndex)
		assess.POST("/:name/predict", predictHandler.AssessPredict)
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/assessments", predictHandler.APIAssessments)
		v1.POST("/predict/:name", predictHandler.APIPredict)
		v1.GET("/results", predictHandler.APIResults)
	}

	return r, nil
}
