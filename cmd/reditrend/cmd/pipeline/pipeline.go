package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"reditrend/internal/config"
	"reditrend/internal/model"
	"reditrend/internal/orchestrator"
)

var (
	subreddits    []string
	searchType    string
	customPrompt  string
	scriptStyle   string
	scriptLength  string
	voiceProvider string
	voiceID       string
	videoStyle    string
	videoDuration string
	theme         string
	genre         string
	uploadFlag    bool
	configPath    string
	runsDir       string
)

func init() {
	Cmd.Flags().StringSliceVarP(&subreddits, "subreddits", "s", []string{"all"}, "subreddits to scan")
	Cmd.Flags().StringVar(&searchType, "search", "hot", "search type (hot, top, new, rising)")
	Cmd.Flags().StringVar(&customPrompt, "prompt", "", "keyword filter for trend selection")
	Cmd.Flags().StringVar(&scriptStyle, "style", "storytelling", "script style")
	Cmd.Flags().StringVar(&scriptLength, "length", "medium", "script length preset")
	Cmd.Flags().StringVar(&voiceProvider, "voice-provider", "", "voice provider")
	Cmd.Flags().StringVar(&voiceID, "voice", "", "voice id")
	Cmd.Flags().StringVar(&videoStyle, "video-style", "slideshow", "video composition style")
	Cmd.Flags().StringVar(&videoDuration, "duration", "standard", "video duration (short, standard, long)")
	Cmd.Flags().StringVar(&theme, "theme", "", "visual theme for generated imagery")
	Cmd.Flags().StringVar(&genre, "genre", "", "visual genre for generated imagery")
	Cmd.Flags().BoolVarP(&uploadFlag, "upload", "u", false, "upload the result to YouTube")
	Cmd.Flags().StringVarP(&configPath, "config", "c", "config/services.yaml", "services config file")
	Cmd.Flags().StringVar(&runsDir, "runs-dir", "data/runs", "directory for per-run result artifacts")
}

// Cmd represents the pipeline command
var Cmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full pipeline against the running services",
	Long: `Run the full pipeline against the running services: fetch
trends, write a script, synthesize the voiceover, render the video and
optionally upload the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

		services, err := config.LoadServices(configPath)
		if err != nil {
			return err
		}

		clients := orchestrator.NewClients(services)
		metrics := orchestrator.NewMetrics(prometheus.NewRegistry())
		runner := orchestrator.NewRunner(clients, metrics, logger)

		stages := 4
		if uploadFlag {
			stages = 6
		}

		progress := mpb.New(mpb.WithRefreshRate(120 * time.Millisecond))
		bar := progress.AddBar(int64(stages),
			mpb.PrependDecorators(
				decor.Name("pipeline ", decor.WC{W: 9, C: decor.DindentRight}),
				decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.OnComplete(decor.Name("running"), "done"),
			),
		)
		runner.OnStageComplete = func(stage model.Stage) {
			bar.Increment()
		}

		result, stageErr := runner.Run(context.Background(), model.PipelineRequest{
			Subreddits:      subreddits,
			SearchType:      searchType,
			CustomPrompt:    customPrompt,
			ScriptStyle:     scriptStyle,
			ScriptLength:    scriptLength,
			VoiceProvider:   voiceProvider,
			VoiceID:         voiceID,
			VideoStyle:      videoStyle,
			VideoDuration:   videoDuration,
			Theme:           theme,
			Genre:           genre,
			UploadToYoutube: uploadFlag,
		})
		bar.Abort(false)
		progress.Wait()

		if stageErr != nil {
			return fmt.Errorf("pipeline failed at stage %s: %w", stageErr.Stage, stageErr.Err)
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))

		// Each run leaves its result on disk so later inspection does
		// not depend on scrollback.
		resultPath, err := writeRunResult(runsDir, out)
		if err != nil {
			return err
		}
		fmt.Printf("Run result written to %s\n", resultPath)
		return nil
	},
}

// writeRunResult stores the pipeline result JSON under a timestamped run
// directory and returns the path of the written file.
func writeRunResult(runsDir string, result []byte) (string, error) {
	runDir := filepath.Join(runsDir, time.Now().Format("20060102-150405"))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}
	resultPath := filepath.Join(runDir, "result.json")
	if err := os.WriteFile(resultPath, result, 0644); err != nil {
		return "", fmt.Errorf("write run result: %w", err)
	}
	return resultPath, nil
}
