package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"reditrend/internal/app"
	"reditrend/internal/upload"
)

var (
	videoFile   string
	title       string
	description string
	tags        []string
	privacy     string
)

func init() {
	Cmd.Flags().StringVarP(&videoFile, "file", "f", "", "video file to upload")
	Cmd.Flags().StringVarP(&title, "title", "t", "", "video title")
	Cmd.Flags().StringVarP(&description, "description", "d", "", "video description")
	Cmd.Flags().StringSliceVar(&tags, "tags", nil, "video tags")
	Cmd.Flags().StringVar(&privacy, "privacy", "private", "privacy status (private, unlisted, public)")

	Cmd.MarkFlagRequired("file")
	Cmd.MarkFlagRequired("title")
}

// Cmd represents the upload command
var Cmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a rendered video to YouTube",
	Long: `Upload a rendered video to YouTube with a progress bar. When no
authorization token is saved yet, the command prints the consent URL
and exits; complete the flow through the upload service callback.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := app.InitializeAuthenticator()
		if err != nil {
			return err
		}
		if !auth.Authorized() {
			fmt.Println("YouTube authorization required. Open this URL and complete the flow:")
			fmt.Println(auth.AuthURL())
			return nil
		}

		uploader := upload.NewUploader(auth)
		events := make(chan upload.ProgressEvent, 16)

		progress := mpb.New(mpb.WithRefreshRate(120 * time.Millisecond))
		var bar *mpb.Bar

		done := make(chan struct{})
		go func() {
			defer close(done)
			for event := range events {
				if bar == nil {
					bar = progress.AddBar(event.TotalBytes,
						mpb.PrependDecorators(
							decor.Name("upload ", decor.WC{W: 7, C: decor.DindentRight}),
							decor.CountersKibiByte("% .2f / % .2f", decor.WCSyncWidth),
						),
						mpb.AppendDecorators(
							decor.NewPercentage("%d", decor.WCSyncSpace),
						),
					)
				}
				bar.SetCurrent(event.BytesSent)
			}
			if bar != nil {
				bar.Abort(false)
			}
		}()

		result, err := uploader.Upload(context.Background(), upload.UploadRequest{
			VideoFile:   videoFile,
			Title:       title,
			Description: description,
			Tags:        tags,
			Privacy:     privacy,
		}, events)
		<-done
		progress.Wait()
		if err != nil {
			return err
		}

		fmt.Printf("upload finished: %s\n", result.YoutubeURL)
		return nil
	},
}
