package exporter

import (
	"fmt"
	"io"
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"staffgap/pkg/contracts/domain"
)

const legendCSS = `
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; padding: 24px; }
.legend { border: 1px solid #000; border-radius: 8px; padding: 12px; }
.legend h2 { margin: 0 0 12px 0; font-size: 18px; }
.cols { display: grid; grid-template-columns: repeat(5, 1fr); gap: 16px; }
.name { font-weight: 500; }
.row { margin: 4px 0; }
.row.total { margin-top: 8px; }
.num { font-variant-numeric: tabular-nums; }
`

// WriteLegendHTML renders the "Current Staff Availability" legend as a
// standalone HTML document.
func WriteLegendHTML(w io.Writer, available domain.AvailableHeadcount) error {
	if err := LegendPage(available).Render(w); err != nil {
		return fmt.Errorf("failed to render legend: %w", err)
	}
	return nil
}

// LegendPage builds the legend document node.
func LegendPage(available domain.AvailableHeadcount) g.Node {
	return h.Doctype(
		h.HTML(
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.TitleEl(g.Text("Staff Availability Legend")),
				h.StyleEl(g.Raw(legendCSS)),
			),
			h.Body(
				h.Div(h.Class("legend"),
					h.H2(g.Text(LegendSheet)),
					h.Div(h.Class("cols"),
						g.Map(domain.LegendGroups, func(group domain.LegendGroup) g.Node {
							return legendColumn(group, available)
						}),
					),
				),
			),
		),
	)
}

func legendColumn(group domain.LegendGroup, available domain.AvailableHeadcount) g.Node {
	return h.Div(
		h.Div(h.Class("col-title"), h.Strong(g.Text(group.Name))),
		g.Map(legendLines(group, available), func(line legendLine) g.Node {
			if line.total {
				return h.Div(h.Class("row total"), h.Strong(g.Text(line.text)))
			}
			return h.Div(h.Class("row"),
				h.Span(h.Class("name"), g.Text(string(line.department))),
				g.Text(": "),
				h.Span(h.Class("num"), g.Text(strconv.Itoa(line.count))),
			)
		}),
	)
}
