package export

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"reditrend/internal/analytics"
	"reditrend/internal/app"
	"reditrend/internal/model"
)

var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export tracked video analytics to excel",
	Long: `Export tracked video analytics to excel

- One sheet of videos with their latest numbers, one sheet of the full metric history`,
	Run: func(cmd *cobra.Command, args []string) {
		dao, err := app.InitializeVideoDAO()
		if err != nil {
			log.Fatal(err)
		}
		defer dao.Close()

		videos, err := dao.ListVideos()
		if err != nil {
			log.Fatal(err)
		}

		// ListVideos skips metric history, so load it per video.
		full := make([]model.TrackedVideo, 0, len(videos))
		for _, v := range videos {
			loaded, err := dao.GetVideo(v.VideoID)
			if err != nil {
				log.Fatal(err)
			}
			full = append(full, *loaded)
		}

		if err := analytics.ExportToExcel(full, outputFilePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
