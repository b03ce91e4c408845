package ui

import (
	"insightflow/app"
	"insightflow/domain/insight"
	"insightflow/domain/leaderboard"
	"insightflow/domain/profile"
	"insightflow/domain/schema"
	"insightflow/domain/workflow"
	"insightflow/internal/analysis"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// stageView is the display state every stage response starts with.
type stageView struct {
	Phase       string `json:"phase"`
	Error       string `json:"error,omitempty"`
	BlockReason string `json:"block_reason,omitempty"`
}

type uploadView struct {
	DatasetID string                   `json:"dataset_id"`
	Filename  string                   `json:"filename"`
	Rows      int                      `json:"rows"`
	Columns   int                      `json:"columns"`
	Preview   []map[string]interface{} `json:"preview,omitempty"`
}

type correlationCellView struct {
	X        string  `json:"x"`
	Y        string  `json:"y"`
	R        float64 `json:"r"`
	Strength string  `json:"strength"`
}

type profileView struct {
	Columns          []string              `json:"columns"`
	RowCount         int                   `json:"row_count"`
	TotalMissing     int                   `json:"total_missing"`
	TypeComposition  []profile.TypeSlice   `json:"type_composition"`
	MissingValues    []profile.NamedCount  `json:"missing_values"`
	Summary          []profile.SummaryRow  `json:"summary"`
	SummaryTruncated bool                  `json:"summary_truncated"`
	Correlations     []correlationCellView `json:"correlations,omitempty"`
}

type scatterView struct {
	Active  bool                    `json:"active"`
	X       string                  `json:"x"`
	Y       string                  `json:"y"`
	Columns []string                `json:"columns"`
	Points  []profile.ScatterPoint  `json:"points,omitempty"`
	Summary *analysis.SampleSummary `json:"summary,omitempty"`
}

type analyzeView struct {
	stageView
	Upload  *uploadView  `json:"upload,omitempty"`
	Profile *profileView `json:"profile,omitempty"`
	Scatter *scatterView `json:"scatter,omitempty"`
}

type trainView struct {
	stageView
	Columns        []string          `json:"columns,omitempty"`
	ProblemType    string            `json:"problem_type,omitempty"`
	Results        []leaderboard.Row `json:"results,omitempty"`
	BestModel      string            `json:"best_model,omitempty"`
	DroppedColumns []string          `json:"dropped_columns,omitempty"`
}

type explainView struct {
	stageView
	ModelName  string                      `json:"model_name,omitempty"`
	Importance []insight.FeatureImportance `json:"feature_importance,omitempty"`

	SummaryPhase string `json:"summary_phase"`
	SummaryHTML  string `json:"summary_html,omitempty"`
	SummaryMode  string `json:"summary_mode,omitempty"`
}

type predictView struct {
	stageView
	Target string             `json:"target,omitempty"`
	Fields []schema.FormField `json:"fields,omitempty"`

	PredictionPhase string  `json:"prediction_phase"`
	PredictionError string  `json:"prediction_error,omitempty"`
	Outcome         string  `json:"outcome,omitempty"`
	ModelType       string  `json:"model_type,omitempty"`
	Confidence      float64 `json:"confidence,omitempty"`
	HasConfidence   bool    `json:"has_confidence"`
}

type storySectionView struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
}

type storyView struct {
	stageView
	Sections []storySectionView `json:"sections"`
}

func newStageView(phase workflow.Phase, err error, blockReason string) stageView {
	v := stageView{Phase: string(phase), BlockReason: blockReason}
	if err != nil {
		v.Error = err.Error()
	}
	return v
}

func analyzeViewFrom(snap app.AnalyzeSnapshot) analyzeView {
	view := analyzeView{stageView: newStageView(snap.Phase, snap.Err, "")}

	if snap.Upload != nil {
		upload := &uploadView{
			DatasetID: snap.Upload.DatasetID,
			Filename:  snap.Upload.Filename,
			Preview:   snap.Upload.Preview,
		}
		if len(snap.Upload.Shape) == 2 {
			upload.Rows, upload.Columns = snap.Upload.Shape[0], snap.Upload.Shape[1]
		}
		view.Upload = upload
	}

	if snap.Profile != nil {
		view.Profile = profileViewFrom(snap.Profile)
		view.Scatter = &scatterView{
			Active:  snap.Scatter.Active,
			X:       snap.Scatter.X,
			Y:       snap.Scatter.Y,
			Columns: snap.Scatter.Columns,
			Points:  snap.Scatter.Points,
			Summary: snap.Scatter.Summary,
		}
	}
	return view
}

func profileViewFrom(p *profile.DatasetProfile) *profileView {
	summary, truncated := profile.SummaryRows(p)
	return &profileView{
		Columns:          p.Columns,
		RowCount:         profile.RowCount(p),
		TotalMissing:     profile.TotalMissing(p),
		TypeComposition:  profile.TypeComposition(p),
		MissingValues:    profile.MissingValueSeries(p),
		Summary:          summary,
		SummaryTruncated: truncated,
		Correlations:     correlationCells(p),
	}
}

// correlationCells flattens the matrix into heatmap cells, in column order,
// each tagged with its strength bucket.
func correlationCells(p *profile.DatasetProfile) []correlationCellView {
	if len(p.Correlations) == 0 {
		return nil
	}
	numeric := profile.NumericColumns(p)
	cells := make([]correlationCellView, 0, len(numeric)*len(numeric))
	for _, x := range numeric {
		for _, y := range numeric {
			r, ok := profile.CorrelationCell(p, x, y)
			if !ok {
				continue
			}
			cells = append(cells, correlationCellView{
				X:        x,
				Y:        y,
				R:        r,
				Strength: string(profile.StrengthFor(r)),
			})
		}
	}
	return cells
}

func trainViewFrom(snap app.TrainSnapshot) trainView {
	view := trainView{
		stageView: newStageView(snap.Phase, snap.Err, snap.BlockReason),
		Columns:   snap.Columns,
	}
	if snap.Outcome != nil {
		view.ProblemType = string(snap.Outcome.ProblemType)
		view.Results = snap.Rows
		view.DroppedColumns = snap.Outcome.DroppedColumns
		if best, err := leaderboard.Best(snap.Outcome); err == nil {
			view.BestModel = best.Model
		}
	}
	return view
}

func explainViewFrom(snap app.ExplainSnapshot) explainView {
	view := explainView{
		stageView:    newStageView(snap.Phase, snap.Err, snap.BlockReason),
		SummaryPhase: string(snap.SummaryPhase),
	}
	if snap.Explanation != nil {
		view.ModelName = snap.Explanation.ModelName
		view.Importance = snap.Explanation.Importance
	}
	if snap.Summary != nil {
		view.SummaryHTML = renderMarkdown(snap.Summary.Response)
		view.SummaryMode = snap.Summary.Mode
	}
	return view
}

func predictViewFrom(snap app.PredictSnapshot) predictView {
	view := predictView{
		stageView:       newStageView(snap.Phase, snap.Err, snap.BlockReason),
		Target:          snap.Target,
		Fields:          snap.Fields,
		PredictionPhase: string(snap.PredictionPhase),
	}
	if snap.PredictionErr != nil {
		view.PredictionError = snap.PredictionErr.Error()
	}
	if snap.Prediction != nil {
		view.Outcome = snap.Outcome
		view.ModelType = snap.Prediction.ModelType
		view.Confidence = snap.Confidence
		view.HasConfidence = snap.HasConf
	}
	return view
}

func storyViewFrom(snap app.StorySnapshot) storyView {
	view := storyView{
		stageView: newStageView(snap.Phase, snap.Err, snap.BlockReason),
		Sections:  make([]storySectionView, 0, len(snap.Sections)),
	}
	for _, section := range snap.Sections {
		view.Sections = append(view.Sections, storySectionView{
			Title: section.Title,
			HTML:  renderMarkdown(section.Text),
		})
	}
	return view
}

// renderMarkdown converts backend prose to HTML. Parser and renderer are
// single-use, hence the fresh instances per call.
func renderMarkdown(src string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(src), p, renderer))
}
