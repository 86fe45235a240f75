// Package takeout models the JSON metadata sidecars that Google Takeout
// writes alongside exported media files.
package takeout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// minCoordinate is the null-island guard: exports that do not know a
// location write 0.0/0.0, so coordinates are only trusted when at least
// one of them is farther than this from zero.
const minCoordinate = 0.00001

// Metadata is the parsed content of a sidecar. Every field is optional;
// zero values mean the export did not carry that field.
type Metadata struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	PhotoTakenTime TimeInfo `json:"photoTakenTime"`
	CreationTime   TimeInfo `json:"creationTime"`
	GeoData        GeoData  `json:"geoData"`
	GeoDataExif    GeoData  `json:"geoDataExif"`
}

// TimeInfo is one of the sidecar's timestamp blocks. Timestamp holds Unix
// epoch seconds as a decimal string.
type TimeInfo struct {
	Timestamp string `json:"timestamp"`
}

// GeoData holds sidecar coordinates. Pointers distinguish an absent field
// from a literal zero.
type GeoData struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// FindSidecar locates the sidecar for a media file. Takeout names sidecars
// two ways: the media filename with ".json" appended ("IMG_1234.jpg.json"),
// or the media suffix replaced with ".json" ("IMG_1234.json"). The appended
// form wins when both exist. Returns "" when neither exists; a missing
// sidecar is a normal outcome, not an error.
func FindSidecar(mediaPath string) string {
	appended := mediaPath + ".json"
	if isRegularFile(appended) {
		return appended
	}
	replaced := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + ".json"
	if isRegularFile(replaced) {
		return replaced
	}
	return ""
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Load reads and parses the sidecar at path.
func Load(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("read sidecar: %w", err)
	}
	return ParseMetadata(data)
}

// ParseMetadata decodes sidecar JSON. Some exports wrap the object in an
// array; the first element is used and an empty array yields an empty bag.
// A document that cannot be decoded returns an error so callers can degrade
// to an empty bag instead of failing the file.
func ParseMetadata(data []byte) (Metadata, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []Metadata
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return Metadata{}, fmt.Errorf("parse sidecar array: %w", err)
		}
		if len(list) == 0 {
			return Metadata{}, nil
		}
		return list[0], nil
	}

	var m Metadata
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return Metadata{}, fmt.Errorf("parse sidecar: %w", err)
	}
	return m, nil
}

// Timestamp returns the preferred capture time as epoch seconds (decimal
// string): photoTakenTime when present, creationTime as fallback. The
// boolean is false when neither block carries one.
func (m Metadata) Timestamp() (string, bool) {
	if m.PhotoTakenTime.Timestamp != "" {
		return m.PhotoTakenTime.Timestamp, true
	}
	if m.CreationTime.Timestamp != "" {
		return m.CreationTime.Timestamp, true
	}
	return "", false
}

// Coordinates returns the preferred location: geoData when it carries both
// coordinates, geoDataExif as fallback. The boolean is false when no block
// has both coordinates or when the pair fails the null-island guard.
func (m Metadata) Coordinates() (lat, lon float64, ok bool) {
	for _, g := range []GeoData{m.GeoData, m.GeoDataExif} {
		if g.Latitude == nil || g.Longitude == nil {
			continue
		}
		lat, lon = *g.Latitude, *g.Longitude
		if math.Abs(lat) > minCoordinate || math.Abs(lon) > minCoordinate {
			return lat, lon, true
		}
		return 0, 0, false
	}
	return 0, 0, false
}
