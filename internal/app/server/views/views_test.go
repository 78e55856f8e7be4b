package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardia/riskapi/internal/app/domains/entity/etassessment"
	"cardia/riskapi/internal/app/domains/modules/mdrisk"
)

type nopClassifier struct{}

func (nopClassifier) Predict(context.Context, []float64) (float64, error) { return 0, nil }
func (nopClassifier) InputWidth() int                                    { return 3 }

func testAssessment(t *testing.T, name string) *etassessment.Assessment {
	t.Helper()
	a, err := etassessment.NewAssessment(name, etassessment.FeatureSpec{"age", "sex", "chol"},
		etassessment.ScalerParams{Mean: []float64{0, 0, 0}, Scale: []float64{1, 1, 1}}, nopClassifier{})
	require.NoError(t, err)
	a.Constraints = etassessment.DefaultHeartConstraints()
	a.Categorical = map[string]etassessment.CategoricalField{"sex": etassessment.DefaultSexField()}
	return a
}

func render(t *testing.T, name string, data any) string {
	t.Helper()
	tmpl, err := Templates()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data))
	return buf.String()
}

func TestFormEchoesValuesWithResult(t *testing.T) {
	a := testAssessment(t, "heart")
	raw := etassessment.RawSubmission{"age": "45", "sex": "Male", "chol": "250"}

	form := NewForm(a, "/predict", raw, Navigation([]*etassessment.Assessment{a}, "heart")).
		WithResult(etassessment.Classify(0.73))
	html := render(t, FormPage, form)

	assert.Contains(t, html, `value="45"`)
	assert.Contains(t, html, `value="Male"`)
	assert.Contains(t, html, `value="250"`)
	assert.Contains(t, html, "Prediction: Positive")
	assert.Contains(t, html, "alert-danger")
	assert.Contains(t, html, "73.00%")
	assert.Contains(t, html, `action="/predict"`)
	assert.Contains(t, html, "100 to 600")
}

func TestFormShowsError(t *testing.T) {
	a := testAssessment(t, "heart")
	form := NewForm(a, "/predict", etassessment.RawSubmission{"age": "150"}, nil).
		WithResult(etassessment.Classify(0.1)).
		WithError("'age' must be between 0 and 120.")
	html := render(t, FormPage, form)

	assert.Contains(t, html, "&#39;age&#39; must be between 0 and 120.")
	assert.Contains(t, html, `value="150"`)
	assert.NotContains(t, html, "Prediction:")
}

func TestBlankForm(t *testing.T) {
	a := testAssessment(t, "heart")
	html := render(t, FormPage, NewForm(a, "/predict", nil, nil))

	assert.Contains(t, html, `value=""`)
	assert.Contains(t, html, `placeholder="male"`)
	assert.NotContains(t, html, `role="alert"`)
	assert.NotContains(t, html, `role="status"`)
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/", FormPath("heart", "heart"))
	assert.Equal(t, "/assess/kidney", FormPath("kidney", "heart"))
	assert.Equal(t, "/predict", ActionPath("heart", "heart"))
	assert.Equal(t, "/assess/kidney/predict", ActionPath("kidney", "heart"))
}

func TestResultsPage(t *testing.T) {
	heart := testAssessment(t, "heart")
	heart.Title = "Heart Disease"
	kidney := testAssessment(t, "kidney")
	kidney.Title = "Kidney Disease"
	all := []*etassessment.Assessment{heart, kidney}

	risks := map[string]float64{"heart": 0.95, "kidney": 0.2}
	combined := mdrisk.Combined{Risk: 0.9, Overridden: true, Tier: mdrisk.TierFor(0.9)}
	page := NewResults(all, risks, combined, Navigation(all, "heart"))

	require.Len(t, page.Rows, 2)
	assert.Equal(t, "heart", page.Rows[0].Name)
	assert.Equal(t, "danger", page.Class)

	html := render(t, ResultsPage, page)
	assert.Contains(t, html, "Overall risk: 90.00%")
	assert.Contains(t, html, "Premium tier: Critical")
	assert.Contains(t, html, "critical individual result")
	assert.Contains(t, html, `href="/assess/kidney"`)
}

func TestErrorPage(t *testing.T) {
	html := render(t, ErrorPage, &ErrorView{PageTitle: "Not Found", Message: "No such assessment."})
	assert.Contains(t, html, "No such assessment.")
}
