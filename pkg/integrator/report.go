package integrator

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// BootstrapTable renders the normalization constants as a text table
func BootstrapTable(normalization *Normalization) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Path length", "b[k]", "Selection pdf", "Non-zero samples"})

	selection := normalization.Distribution()
	for i, e := range normalization.Estimates {
		nonZero := 0.0
		if e.Samples > 0 {
			nonZero = 100 * float64(e.NonZero) / float64(e.Samples)
		}
		table.Append([]string{
			fmt.Sprintf("%d", e.PathLength),
			fmt.Sprintf("%.6g", e.Mean),
			fmt.Sprintf("%.4f", selection.PDF(i)),
			fmt.Sprintf("%s (%02.1f %%)", humanize.Comma(int64(e.NonZero)), nonZero),
		})
	}
	table.SetFooter([]string{"TOTAL", fmt.Sprintf("%.6g", normalization.Total()), "", ""})

	table.Render()
	return buf.String()
}

// SummaryTable renders render statistics as a text table
func SummaryTable(stats Stats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Iterations", "Acceptance rate", "Large steps", "Empty proposals", "Bootstrap time", "Render time"})
	table.Append([]string{
		humanize.Comma(stats.Iterations),
		fmt.Sprintf("%02.1f %%", 100*stats.AcceptanceRate()),
		humanize.Comma(stats.LargeSteps),
		humanize.Comma(stats.EmptyProposals),
		stats.BootstrapElapsed.String(),
		stats.Elapsed.String(),
	})

	table.Render()
	return buf.String()
}
