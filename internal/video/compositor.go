package video

import (
	"context"
	"fmt"
	"strings"

	"reditrend/internal/model"
)

// transitionFilters maps requested slideshow transitions to the ffmpeg
// xfade transition names used to drive them. Unknown names fall back
// to a plain crossfade.
var transitionFilters = map[string]string{
	"fade":    "fade",
	"slide":   "slideleft",
	"dynamic": "wipeleft",
}

const transitionDuration = 0.5

// slideInput pairs a section image with the estimated display time that
// drives the xfade offsets.
type slideInput struct {
	ImagePath   string
	DurationSec float64
}

// buildSlideshowArgs assembles the ffmpeg invocation for the slideshow
// style: every image becomes a looped finite input, consecutive pairs
// are chained with xfade at offsets derived from the cumulative
// estimated durations, and the voiceover audio is mapped alongside.
// The -shortest flag ends the encode at the measured audio length so
// estimation drift never pads the tail.
func buildSlideshowArgs(slides []slideInput, audioPath, transition, outputPath string, dims model.Dimensions) []string {
	xfade, ok := transitionFilters[transition]
	if !ok {
		xfade = transitionFilters["fade"]
	}

	args := make([]string, 0, len(slides)*4+16)
	for _, s := range slides {
		args = append(args, "-loop", "1", "-t", fmt.Sprintf("%.2f", s.DurationSec), "-i", s.ImagePath)
	}
	args = append(args, "-i", audioPath)
	audioIndex := len(slides)

	var filter strings.Builder
	for i := range slides {
		fmt.Fprintf(&filter, "[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1[v%d];",
			i, dims.Width, dims.Height, dims.Width, dims.Height, i)
	}

	if len(slides) == 1 {
		filter.WriteString("[v0]format=yuv420p[vout]")
	} else {
		// Chain xfades pairwise; each offset is the cumulative display
		// time minus the transition overlap so slides hand off smoothly.
		offset := 0.0
		prev := "v0"
		for i := 1; i < len(slides); i++ {
			offset += slides[i-1].DurationSec - transitionDuration
			out := fmt.Sprintf("x%d", i)
			if i == len(slides)-1 {
				out = "vx"
			}
			fmt.Fprintf(&filter, "[%s][v%d]xfade=transition=%s:duration=%.2f:offset=%.2f[%s];",
				prev, i, xfade, transitionDuration, offset, out)
			prev = out
		}
		filter.WriteString("[vx]format=yuv420p[vout]")
	}

	args = append(args,
		"-filter_complex", filter.String(),
		"-map", "[vout]",
		"-map", fmt.Sprintf("%d:a", audioIndex),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		outputPath,
	)
	return args
}

// buildStillArgs assembles the ffmpeg invocation for styles backed by a
// single still image (podcast and reddit): loop the image over the full
// audio track.
func buildStillArgs(imagePath, audioPath, outputPath string, dims model.Dimensions) []string {
	return []string{
		"-loop", "1",
		"-i", imagePath,
		"-i", audioPath,
		"-vf", fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1",
			dims.Width, dims.Height, dims.Width, dims.Height),
		"-c:v", "libx264",
		"-tune", "stillimage",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		outputPath,
	}
}

// buildCaptionsArgs assembles the ffmpeg invocation for the captions
// style: a solid background with burned-in subtitles over the audio.
func buildCaptionsArgs(srtPath, audioPath, outputPath string, dims model.Dimensions, totalDuration float64) []string {
	return []string{
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=black:s=%dx%d:d=%.2f", dims.Width, dims.Height, totalDuration),
		"-i", audioPath,
		"-vf", fmt.Sprintf("subtitles=%s:force_style='FontSize=28,Alignment=10'", srtPath),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		outputPath,
	}
}

// Compose runs the assembled ffmpeg arguments and probes the finished
// file so the reported duration reflects the actual encode, not the
// word-count estimate.
func Compose(ctx context.Context, args []string, outputPath string) (float64, error) {
	if err := runFFmpeg(ctx, args...); err != nil {
		return 0, fmt.Errorf("compose video: %w", err)
	}
	duration, err := ProbeDuration(ctx, outputPath)
	if err != nil {
		return 0, fmt.Errorf("probe composed video: %w", err)
	}
	return duration, nil
}
