// Package metadata stamps media files via exiftool: explicit fields derived
// from a Takeout sidecar, or a verbatim clone of every tag from another file.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/mediaport/internal/runner"
	"github.com/vmunix/mediaport/pkg/takeout"
)

// ErrExifTool indicates the metadata tool exited non-zero.
var ErrExifTool = errors.New("exiftool failed")

// ExifTimeLayout is the timestamp format exiftool expects.
const ExifTimeLayout = "2006:01:02 15:04:05"

// Applier writes metadata with an external exiftool binary.
type Applier struct {
	run      runner.Runner
	log      *slog.Logger
	exiftool string
}

// New creates an Applier invoking the given exiftool binary.
func New(run runner.Runner, exiftool string, log *slog.Logger) *Applier {
	return &Applier{run: run, log: log, exiftool: exiftool}
}

// ApplySidecar stamps target with the fields carried by the sidecar bag:
// capture/creation/modify timestamps, GPS coordinates with hemisphere
// references, and the description. Fields the bag does not carry are left
// alone, and the tool is invoked even when the bag contributes nothing.
func (a *Applier) ApplySidecar(ctx context.Context, target string, md takeout.Metadata) error {
	args := []string{"-overwrite_original"}

	if raw, ok := md.Timestamp(); ok {
		if epoch, err := strconv.ParseInt(raw, 10, 64); err != nil {
			a.log.Warn("unable to parse sidecar timestamp", "timestamp", raw, "path", target)
		} else {
			stamp := time.Unix(epoch, 0).UTC().Format(ExifTimeLayout)
			args = append(args,
				"-DateTimeOriginal="+stamp,
				"-CreateDate="+stamp,
				"-ModifyDate="+stamp,
			)
		}
	}

	if lat, lon, ok := md.Coordinates(); ok {
		args = append(args,
			"-GPSLatitude="+formatCoord(lat),
			"-GPSLongitude="+formatCoord(lon),
			"-GPSLatitudeRef="+hemisphere(lat, "N", "S"),
			"-GPSLongitudeRef="+hemisphere(lon, "E", "W"),
		)
	}

	if md.Description != "" {
		args = append(args, "-ImageDescription="+md.Description)
	}

	args = append(args, target)

	a.log.Info("updating metadata", "path", target)
	out, err := a.run.Run(ctx, a.exiftool, args...)
	if err != nil {
		return fmt.Errorf("%w: %s: %v (output: %s)", ErrExifTool, target, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Clone copies every tag from src onto dst. Transcoding discards embedded
// metadata, so when no sidecar exists the source file's own tags are the
// best available substitute.
func (a *Applier) Clone(ctx context.Context, src, dst string) error {
	a.log.Info("cloning metadata", "src", src, "dst", dst)
	out, err := a.run.Run(ctx, a.exiftool,
		"-overwrite_original",
		"-TagsFromFile", src,
		"-All:All",
		dst,
	)
	if err != nil {
		return fmt.Errorf("%w: %s -> %s: %v (output: %s)", ErrExifTool, src, dst, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// hemisphere picks the reference letter from the coordinate's sign; zero
// counts as the positive side.
func hemisphere(v float64, pos, neg string) string {
	if v >= 0 {
		return pos
	}
	return neg
}
