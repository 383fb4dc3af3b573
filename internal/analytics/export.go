package analytics

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"reditrend/internal/model"
)

// ExportToExcel writes all tracked videos and their metric history to
// an xlsx workbook at outputFilePath. Videos and metrics land on
// separate sheets so the history stays flat.
func ExportToExcel(videos []model.TrackedVideo, outputFilePath string) error {
	file := xlsx.NewFile()

	videoSheet, err := file.AddSheet("Videos")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := videoSheet.AddRow()
	headerRow.AddCell().Value = "Video ID"
	headerRow.AddCell().Value = "Title"
	headerRow.AddCell().Value = "Upload Date"
	headerRow.AddCell().Value = "Source Type"
	headerRow.AddCell().Value = "Latest Views"
	headerRow.AddCell().Value = "Latest Likes"
	headerRow.AddCell().Value = "Latest Comments"

	for _, v := range videos {
		row := videoSheet.AddRow()
		row.AddCell().Value = v.VideoID
		row.AddCell().Value = v.Title
		row.AddCell().Value = v.UploadDate.Format(time.RFC3339)
		row.AddCell().Value = v.SourceType
		var latest model.MetricSample
		if len(v.Metrics) > 0 {
			latest = v.Metrics[len(v.Metrics)-1]
		}
		row.AddCell().Value = fmt.Sprint(latest.Views)
		row.AddCell().Value = fmt.Sprint(latest.Likes)
		row.AddCell().Value = fmt.Sprint(latest.Comments)
	}

	metricsSheet, err := file.AddSheet("Metrics")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	metricsHeader := metricsSheet.AddRow()
	metricsHeader.AddCell().Value = "Video ID"
	metricsHeader.AddCell().Value = "Date"
	metricsHeader.AddCell().Value = "Views"
	metricsHeader.AddCell().Value = "Likes"
	metricsHeader.AddCell().Value = "Comments"
	metricsHeader.AddCell().Value = "Estimated Revenue"
	metricsHeader.AddCell().Value = "Watch Time (h)"

	for _, v := range videos {
		for _, m := range v.Metrics {
			row := metricsSheet.AddRow()
			row.AddCell().Value = v.VideoID
			row.AddCell().Value = m.Date.Format(time.RFC3339)
			row.AddCell().Value = fmt.Sprint(m.Views)
			row.AddCell().Value = fmt.Sprint(m.Likes)
			row.AddCell().Value = fmt.Sprint(m.Comments)
			row.AddCell().Value = fmt.Sprintf("%.2f", m.EstimatedRevenue)
			row.AddCell().Value = fmt.Sprintf("%.2f", m.WatchTimeHours)
		}
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
