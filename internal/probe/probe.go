// Package probe extracts media metadata from local files. Duration probing
// sits behind the Prober interface so validation logic can be tested without
// a real media pipeline.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mghilardi/vidlib/internal/execx"
)

// ErrUnreadable marks files the media pipeline cannot decode (unsupported
// codec or container). Match with errors.Is.
var ErrUnreadable = errors.New("unreadable media")

// Prober measures the duration of a media file.
type Prober interface {
	// ProbeDuration returns the duration in seconds, or an error wrapping
	// ErrUnreadable when the file cannot be decoded.
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// FFProbe probes files by running the ffprobe binary and parsing its JSON
// output.
type FFProbe struct {
	binPath string
	runner  execx.Runner
}

func NewFFProbe(binPath string, runner execx.Runner) *FFProbe {
	return &FFProbe{binPath: binPath, runner: runner}
}

type ffprobeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Duration  string `json:"duration,omitempty"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func (p *FFProbe) ProbeDuration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}

	out, err := p.runner.Run(ctx, p.binPath, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	var data ffprobeOutput
	if err := json.Unmarshal(out, &data); err != nil {
		return 0, fmt.Errorf("%w: parse ffprobe output: %v", ErrUnreadable, err)
	}

	if data.Format.Duration != "" {
		if d, err := strconv.ParseFloat(data.Format.Duration, 64); err == nil {
			return d, nil
		}
	}

	// Some containers only report duration on the video stream.
	for _, stream := range data.Streams {
		if stream.CodecType != "video" || stream.Duration == "" {
			continue
		}
		if d, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
			return d, nil
		}
	}

	return 0, fmt.Errorf("%w: no duration reported", ErrUnreadable)
}
