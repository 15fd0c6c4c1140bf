package upload

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// DurationProber đọc thời lượng (giây) của một tệp media
type DurationProber interface {
	Duration(localPath string) (float64, error)
}

// FFProbe dùng ffprobe để đọc format.duration
type FFProbe struct{}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration chạy ffprobe trên tệp
func (FFProbe) Duration(localPath string) (float64, error) {
	out, err := ffmpeg.Probe(localPath)
	if err != nil {
		return 0, errors.WithMessage(err, "chạy ffprobe")
	}
	return parseProbeDuration(out)
}

func parseProbeDuration(out string) (float64, error) {
	var p probeOutput
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		return 0, errors.WithMessage(err, "đọc kết quả ffprobe")
	}
	if p.Format.Duration == "" {
		return 0, errors.New("ffprobe không trả về duration")
	}
	d, err := strconv.ParseFloat(p.Format.Duration, 64)
	if err != nil {
		return 0, errors.WithMessage(err, "parse duration")
	}
	return d, nil
}
