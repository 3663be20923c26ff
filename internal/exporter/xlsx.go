package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"staffgap/pkg/contracts/domain"
)

const (
	// LegendSheet holds the availability legend in exported workbooks.
	LegendSheet = "Current Staff Availability"

	// NoDataMessage replaces the grid of a view without values.
	NoDataMessage = "No data for selected period"

	defaultSheet = "Sheet1"
	gridBorder   = "#D3D3D3"
	gapNumFmt    = "0.0"

	// heat-map grid origin: titles in row 1, week header in row 3
	headerRow    = 3
	firstDataRow = 4
)

// SheetName returns the worksheet name of a view, e.g. "Active 13w".
func SheetName(v domain.GapView) string {
	scope := "Active"
	if v.Scope == domain.ViewScopeCombined {
		scope = "Combined"
	}
	return fmt.Sprintf("%s %dw", scope, v.WindowWeeks)
}

// WriteWorkbook renders every view of the report as a heat-map sheet,
// followed by the availability legend sheet, and writes the xlsx to w.
func WriteWorkbook(w io.Writer, report *domain.HeadcountReport) error {
	f := excelize.NewFile()
	defer f.Close()

	styles := newStyleBook(f)

	for i, view := range report.Views {
		name := SheetName(view)
		if err := addSheet(f, i == 0, name); err != nil {
			return err
		}
		if err := writeHeatmapSheet(f, styles, name, view); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", name, err)
		}
	}

	if err := addSheet(f, len(report.Views) == 0, LegendSheet); err != nil {
		return err
	}
	if err := writeLegendSheet(f, styles, report.Available); err != nil {
		return fmt.Errorf("failed to write legend sheet: %w", err)
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// addSheet reuses the default sheet for the first sheet of the workbook
func addSheet(f *excelize.File, first bool, name string) error {
	if first {
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("failed to rename sheet: %w", err)
		}
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}
	return nil
}

func writeHeatmapSheet(f *excelize.File, styles *styleBook, sheet string, view domain.GapView) error {
	bold, err := styles.bold()
	if err != nil {
		return err
	}
	if err := setCell(f, sheet, 1, 1, view.Title, bold); err != nil {
		return err
	}

	m := view.Matrix
	if m.Empty() {
		return setCell(f, sheet, 1, headerRow, NoDataMessage, 0)
	}

	if err := setCell(f, sheet, 1, headerRow, "Department", bold); err != nil {
		return err
	}
	for j, label := range m.WeekLabels {
		if err := setCell(f, sheet, j+2, headerRow, label, bold); err != nil {
			return err
		}
	}

	scale := NewColorScale(m)
	for i, d := range m.Departments {
		row := firstDataRow + i
		if err := setCell(f, sheet, 1, row, string(d), bold); err != nil {
			return err
		}
		for j, c := range m.Cells[i] {
			if c == nil {
				style, err := styles.empty()
				if err != nil {
					return err
				}
				if err := setCell(f, sheet, j+2, row, nil, style); err != nil {
					return err
				}
				continue
			}
			style, err := styles.heat(scale.Fill(*c), scale.TextColor(*c))
			if err != nil {
				return err
			}
			if err := setCell(f, sheet, j+2, row, *c, style); err != nil {
				return err
			}
		}
	}

	if err := writeScaleKey(f, styles, sheet, firstDataRow+len(m.Departments)+1, scale); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(m.WeekLabels) + 1)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", last, 12)
}

// writeScaleKey prints the colour scale end points under the grid
func writeScaleKey(f *excelize.File, styles *styleBook, sheet string, row int, scale ColorScale) error {
	bold, err := styles.bold()
	if err != nil {
		return err
	}
	if err := setCell(f, sheet, 1, row, "Headcount Gap", bold); err != nil {
		return err
	}
	for j, v := range []float64{scale.Min, 0, scale.Max} {
		style, err := styles.heat(scale.Fill(v), scale.TextColor(v))
		if err != nil {
			return err
		}
		if err := setCell(f, sheet, j+2, row, v, style); err != nil {
			return err
		}
	}
	return nil
}

func writeLegendSheet(f *excelize.File, styles *styleBook, available domain.AvailableHeadcount) error {
	bold, err := styles.bold()
	if err != nil {
		return err
	}
	if err := setCell(f, LegendSheet, 1, 1, LegendSheet, bold); err != nil {
		return err
	}

	for col, group := range domain.LegendGroups {
		x := col + 1
		if err := setCell(f, LegendSheet, x, headerRow, group.Name, bold); err != nil {
			return err
		}
		for i, line := range legendLines(group, available) {
			style := 0
			if line.total {
				style = bold
			}
			if err := setCell(f, LegendSheet, x, firstDataRow+i, line.text, style); err != nil {
				return err
			}
		}
	}

	last, err := excelize.ColumnNumberToName(len(domain.LegendGroups))
	if err != nil {
		return err
	}
	return f.SetColWidth(LegendSheet, "A", last, 26)
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if value != nil {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	if style != 0 {
		return f.SetCellStyle(sheet, cell, cell, style)
	}
	return nil
}

// styleBook registers each distinct cell style once per workbook
type styleBook struct {
	f     *excelize.File
	cache map[string]int
}

func newStyleBook(f *excelize.File) *styleBook {
	return &styleBook{f: f, cache: make(map[string]int)}
}

func (b *styleBook) get(key string, build func() *excelize.Style) (int, error) {
	if id, ok := b.cache[key]; ok {
		return id, nil
	}
	id, err := b.f.NewStyle(build())
	if err != nil {
		return 0, fmt.Errorf("failed to create style %s: %w", key, err)
	}
	b.cache[key] = id
	return id, nil
}

func (b *styleBook) bold() (int, error) {
	return b.get("bold", func() *excelize.Style {
		return &excelize.Style{Font: &excelize.Font{Bold: true}}
	})
}

func (b *styleBook) empty() (int, error) {
	return b.get("empty", func() *excelize.Style {
		return &excelize.Style{Border: gridBorders()}
	})
}

func (b *styleBook) heat(fill, text string) (int, error) {
	return b.get("heat"+fill+text, func() *excelize.Style {
		numFmt := gapNumFmt
		return &excelize.Style{
			Fill:         excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
			Font:         &excelize.Font{Color: text, Size: 9},
			Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:       gridBorders(),
			CustomNumFmt: &numFmt,
		}
	})
}

func gridBorders() []excelize.Border {
	borders := make([]excelize.Border, 0, 4)
	for _, side := range []string{"left", "top", "right", "bottom"} {
		borders = append(borders, excelize.Border{Type: side, Color: gridBorder, Style: 1})
	}
	return borders
}
