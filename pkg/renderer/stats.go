package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// WorkerStats contains statistics for a single worker
type WorkerStats struct {
	ID         int
	Rows       int           // Rows rendered by this worker
	Samples    int           // Camera samples taken by this worker
	RenderTime time.Duration // Time spent rendering rows
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Workers      []WorkerStats
	TotalRows    int
	TotalSamples int
	RenderTime   time.Duration // Wall clock time for the entire frame
}

// SamplesPerSecond returns the camera sample throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.RenderTime <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.RenderTime.Seconds()
}

// FormatTable renders the statistics as a text table
func (s RenderStats) FormatTable() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "Samples", "% of frame", "Render time"})
	for _, worker := range s.Workers {
		percent := 0.0
		if s.TotalRows > 0 {
			percent = 100 * float64(worker.Rows) / float64(s.TotalRows)
		}
		table.Append([]string{
			fmt.Sprintf("%d", worker.ID),
			fmt.Sprintf("%d", worker.Rows),
			fmt.Sprintf("%d", worker.Samples),
			fmt.Sprintf("%02.1f %%", percent),
			worker.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%d", s.TotalSamples), "TOTAL", s.RenderTime.String()})

	table.Render()
	return buf.String()
}
