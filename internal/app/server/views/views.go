package views

import (
	"embed"
	"html/template"
	"sort"

	"cardia/riskapi/internal/app/domains/entity/etassessment"
	"cardia/riskapi/internal/app/domains/modules/mdrisk"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by gin's c.HTML.
const (
	FormPage    = "form.html"
	ResultsPage = "results.html"
	ErrorPage   = "error.html"
)

// Templates parses every embedded page once at startup.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// NavLink is one entry of the assessment navigation bar.
type NavLink struct {
	Href  string
	Title string
}

// FieldView is one form input. Value is the raw text last submitted.
type FieldView struct {
	Name        string
	Value       string
	Placeholder string
	HasBound    bool
	Min         float64
	Max         float64
}

// ResultView is the outcome banner shown under the form.
type ResultView struct {
	Label   etassessment.Label
	Class   string
	Percent float64
}

// Form is the prediction page. At most one of Result and Error is set.
type Form struct {
	PageTitle string
	Action    string
	Nav       []NavLink
	Fields    []FieldView
	Result    *ResultView
	Error     string
}

// HomePath is where the default assessment is served.
const HomePath = "/"

// FormPath returns the page path for an assessment.
func FormPath(name, defaultName string) string {
	if name == defaultName {
		return HomePath
	}
	return "/assess/" + name
}

// ActionPath returns the POST target for an assessment.
func ActionPath(name, defaultName string) string {
	if name == defaultName {
		return "/predict"
	}
	return "/assess/" + name + "/predict"
}

// Navigation lists one link per assessment in configuration order.
func Navigation(assessments []*etassessment.Assessment, defaultName string) []NavLink {
	nav := make([]NavLink, 0, len(assessments))
	for _, a := range assessments {
		nav = append(nav, NavLink{Href: FormPath(a.Name, defaultName), Title: a.Title})
	}
	return nav
}

// NewForm builds the form for a, echoing raw (nil for a blank form).
func NewForm(a *etassessment.Assessment, action string, raw etassessment.RawSubmission, nav []NavLink) *Form {
	fields := make([]FieldView, 0, len(a.Features))
	for _, name := range a.Features {
		fv := FieldView{Name: name, Value: raw[name]}
		if cat, ok := a.IsCategorical(name); ok {
			fv.Placeholder = cat.Positive
		}
		if b, ok := a.Bound(name); ok {
			fv.HasBound = true
			fv.Min, fv.Max = b.Min, b.Max
		}
		fields = append(fields, fv)
	}
	return &Form{
		PageTitle: a.Title,
		Action:    action,
		Nav:       nav,
		Fields:    fields,
	}
}

// WithResult sets the outcome banner and clears any error.
func (f *Form) WithResult(r etassessment.PredictionResult) *Form {
	f.Result = &ResultView{Label: r.Label, Class: r.Label.DisplayClass(), Percent: r.Percent()}
	f.Error = ""
	return f
}

// WithError sets the error banner and clears any result.
func (f *Form) WithError(msg string) *Form {
	f.Error = msg
	f.Result = nil
	return f
}

// ResultRow is one assessment's stored risk on the results page.
type ResultRow struct {
	Name    string
	Title   string
	Percent float64
	Weight  float64
}

// Results is the combined risk page.
type Results struct {
	PageTitle  string
	Nav        []NavLink
	Rows       []ResultRow
	Percent    float64
	Class      string
	Overridden bool
	Tier       mdrisk.PremiumTier
}

// NewResults lists the stored risk of every assessment next to the aggregate.
func NewResults(assessments []*etassessment.Assessment, risks map[string]float64, combined mdrisk.Combined, nav []NavLink) *Results {
	rows := make([]ResultRow, 0, len(assessments))
	for _, a := range assessments {
		risk, ok := risks[a.Name]
		if !ok {
			continue
		}
		rows = append(rows, ResultRow{Name: a.Name, Title: a.Title, Percent: risk * 100, Weight: a.Weight})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Percent > rows[j].Percent })

	return &Results{
		PageTitle:  "Combined Risk",
		Nav:        nav,
		Rows:       rows,
		Percent:    combined.Risk * 100,
		Class:      etassessment.Classify(combined.Risk).Label.DisplayClass(),
		Overridden: combined.Overridden,
		Tier:       combined.Tier,
	}
}

// ErrorView renders a standalone error page.
type ErrorView struct {
	PageTitle string
	Message   string
	Nav       []NavLink
}
