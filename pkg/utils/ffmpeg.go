package utils

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Prober reads the duration of a media file.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// FFProbe shells out to ffprobe.
type FFProbe struct{}

func (FFProbe) Duration(ctx context.Context, path string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, errors.WithMessage(err, "Failed to probe the video")
	}
	return ParseProbeDuration(out)
}

// ParseProbeDuration extracts format.duration (seconds) from ffprobe json output.
func ParseProbeDuration(probe string) (float64, error) {
	raw := gjson.Get(probe, "format.duration")
	if !raw.Exists() {
		return 0, errors.New("ffprobe output has no format.duration")
	}
	d, err := strconv.ParseFloat(raw.String(), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "bad duration %q", raw.String())
	}
	return d, nil
}

// StaticProber always reports the same duration.
type StaticProber struct {
	Seconds float64
	Err     error
}

func (p StaticProber) Duration(context.Context, string) (float64, error) {
	return p.Seconds, p.Err
}
