// Package excel exports workflow results as an Excel workbook.
package excel

import (
	"context"
	"fmt"
	"log"

	"insightflow/domain/core"
	"insightflow/domain/leaderboard"
	"insightflow/domain/narrative"
	"insightflow/domain/profile"
	"insightflow/ports"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// Reporter builds dataset reports. The profile and narrative are fetched
// concurrently; the leaderboard sheet is included only when a training
// outcome is supplied, since training is not something a report should
// trigger.
type Reporter struct {
	data    ports.DataService
	stories ports.StoryService
}

// Report is the fetched material a workbook is built from.
type Report struct {
	Profile  *profile.DatasetProfile
	Sections []narrative.Section
	Outcome  *leaderboard.TrainingOutcome
}

// NewReporter creates a new report builder.
func NewReporter(data ports.DataService, stories ports.StoryService) *Reporter {
	return &Reporter{data: data, stories: stories}
}

// Fetch gathers the report material for a dataset. A narrative failure
// degrades the report (no story sheet) rather than failing it.
func (r *Reporter) Fetch(ctx context.Context, dataset core.DatasetID) (*Report, error) {
	report := &Report{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := r.data.Profile(ctx, dataset)
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		report.Profile = p
		return nil
	})
	g.Go(func() error {
		sections, err := r.stories.Story(ctx, dataset)
		if err != nil {
			log.Printf("[Reporter] Story fetch failed for %s: %v", dataset, err)
			return nil
		}
		report.Sections = sections
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// WriteFile renders the report as a workbook at path.
func (r *Reporter) WriteFile(report *Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeProfileSheet(f, report.Profile); err != nil {
		return err
	}
	if err := writeCorrelationSheet(f, report.Profile); err != nil {
		return err
	}
	if report.Outcome != nil {
		if err := writeModelSheet(f, report.Outcome); err != nil {
			return err
		}
	}
	if len(report.Sections) > 0 {
		if err := writeStorySheet(f, report.Sections); err != nil {
			return err
		}
	}

	// excelize seeds every workbook with "Sheet1"; ours start at Profile.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeProfileSheet(f *excelize.File, p *profile.DatasetProfile) error {
	const sheet = "Profile"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheet, err)
	}

	header := []interface{}{"Column", "Type", "Missing", "Count", "Mean", "Std", "Min", "Max", "Unique", "Top"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, col := range p.Columns {
		stats := p.Description[col]
		row := []interface{}{
			col,
			p.Dtypes[col],
			p.Missing[col],
			statCell(stats.Count),
			statCell(stats.Mean),
			statCell(stats.Std),
			statCell(stats.Min),
			statCell(stats.Max),
			statCell(stats.Unique),
			topCell(stats.Top),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeCorrelationSheet(f *excelize.File, p *profile.DatasetProfile) error {
	if len(p.Correlations) == 0 {
		return nil
	}
	const sheet = "Correlations"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheet, err)
	}

	numeric := profile.NumericColumns(p)
	header := make([]interface{}, 0, len(numeric)+1)
	header = append(header, "")
	for _, col := range numeric {
		header = append(header, col)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, rowCol := range numeric {
		row := make([]interface{}, 0, len(numeric)+1)
		row = append(row, rowCol)
		for _, colCol := range numeric {
			if r, ok := profile.CorrelationCell(p, rowCol, colCol); ok {
				row = append(row, r)
			} else {
				row = append(row, "")
			}
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeModelSheet(f *excelize.File, outcome *leaderboard.TrainingOutcome) error {
	const sheet = "Models"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheet, err)
	}

	secondary := leaderboard.SecondaryLabel(outcome.ProblemType)
	header := []interface{}{"Rank", "Model", "Score", "Primary", secondary, "Best"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range leaderboard.Rows(outcome) {
		record := []interface{}{i + 1, row.Model, row.Score, row.Primary, row.Secondary, row.Best}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return err
		}
	}
	return nil
}

func writeStorySheet(f *excelize.File, sections []narrative.Section) error {
	const sheet = "Story"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheet, err)
	}
	for i, section := range sections {
		row := []interface{}{section.Title, section.Text}
		cell := fmt.Sprintf("A%d", i+2)
		if i == 0 {
			header := []interface{}{"Section", "Text"}
			if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
				return err
			}
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func statCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func topCell(v *string) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
