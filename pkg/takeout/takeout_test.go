package takeout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFindSidecar(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "IMG_1234.jpg")
	writeFile(t, media, "jpeg bytes")

	t.Run("no sidecar", func(t *testing.T) {
		assert.Empty(t, FindSidecar(media))
	})

	t.Run("suffix replaced form", func(t *testing.T) {
		replaced := filepath.Join(dir, "IMG_1234.json")
		writeFile(t, replaced, "{}")
		assert.Equal(t, replaced, FindSidecar(media))
	})

	t.Run("appended form wins over replaced form", func(t *testing.T) {
		appended := filepath.Join(dir, "IMG_1234.jpg.json")
		writeFile(t, appended, "{}")
		assert.Equal(t, appended, FindSidecar(media))
	})

	t.Run("directory is not a sidecar", func(t *testing.T) {
		other := filepath.Join(dir, "VID_0001.mp4")
		writeFile(t, other, "mp4 bytes")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "VID_0001.mp4.json"), 0755))
		assert.Empty(t, FindSidecar(other))
	})
}

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Metadata
		wantErr bool
	}{
		{
			name:  "full object",
			input: `{"title":"IMG_1234.jpg","description":"beach day","photoTakenTime":{"timestamp":"1600000000"},"geoData":{"latitude":37.0,"longitude":-122.0}}`,
			want: Metadata{
				Title:          "IMG_1234.jpg",
				Description:    "beach day",
				PhotoTakenTime: TimeInfo{Timestamp: "1600000000"},
				GeoData:        GeoData{Latitude: ptr(37.0), Longitude: ptr(-122.0)},
			},
		},
		{
			name:  "array root uses first element",
			input: `[{"description":"first"},{"description":"second"}]`,
			want:  Metadata{Description: "first"},
		},
		{
			name:  "empty array is an empty bag",
			input: `[]`,
			want:  Metadata{},
		},
		{
			name:  "unknown keys ignored",
			input: `{"imageViews":"12","googlePhotosOrigin":{"mobileUpload":{}}}`,
			want:  Metadata{},
		},
		{
			name:    "malformed document",
			input:   `{"title": "IMG`,
			wantErr: true,
		},
		{
			name:    "non-object root",
			input:   `"just a string"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetadata([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "IMG_1234.jpg.json")
	writeFile(t, path, `{"photoTakenTime":{"timestamp":"1700000000"}}`)

	m, err := Load(path)
	require.NoError(t, err)
	ts, ok := m.Timestamp()
	assert.True(t, ok)
	assert.Equal(t, "1700000000", ts)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestMetadataTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		m      Metadata
		want   string
		wantOK bool
	}{
		{
			name: "photoTakenTime preferred",
			m: Metadata{
				PhotoTakenTime: TimeInfo{Timestamp: "1600000000"},
				CreationTime:   TimeInfo{Timestamp: "1500000000"},
			},
			want:   "1600000000",
			wantOK: true,
		},
		{
			name:   "creationTime fallback",
			m:      Metadata{CreationTime: TimeInfo{Timestamp: "1500000000"}},
			want:   "1500000000",
			wantOK: true,
		},
		{
			name: "neither",
			m:    Metadata{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.m.Timestamp()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetadataCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		m       Metadata
		wantLat float64
		wantLon float64
		wantOK  bool
	}{
		{
			name:    "geoData with both coordinates",
			m:       Metadata{GeoData: GeoData{Latitude: ptr(37.0), Longitude: ptr(-122.0)}},
			wantLat: 37.0,
			wantLon: -122.0,
			wantOK:  true,
		},
		{
			name:    "geoDataExif fallback",
			m:       Metadata{GeoDataExif: GeoData{Latitude: ptr(-33.86), Longitude: ptr(151.2)}},
			wantLat: -33.86,
			wantLon: 151.2,
			wantOK:  true,
		},
		{
			name: "null island suppressed",
			m:    Metadata{GeoData: GeoData{Latitude: ptr(0.0), Longitude: ptr(0.0)}},
		},
		{
			name: "near-zero pair suppressed",
			m:    Metadata{GeoData: GeoData{Latitude: ptr(0.000001), Longitude: ptr(-0.000001)}},
		},
		{
			name:    "one coordinate far from zero passes",
			m:       Metadata{GeoData: GeoData{Latitude: ptr(0.0), Longitude: ptr(151.2)}},
			wantLon: 151.2,
			wantOK:  true,
		},
		{
			name: "missing longitude",
			m:    Metadata{GeoData: GeoData{Latitude: ptr(37.0)}},
		},
		{
			name: "no location at all",
			m:    Metadata{},
		},
		{
			name: "zero geoData does not fall through to geoDataExif",
			m: Metadata{
				GeoData:     GeoData{Latitude: ptr(0.0), Longitude: ptr(0.0)},
				GeoDataExif: GeoData{Latitude: ptr(37.0), Longitude: ptr(-122.0)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, ok := tt.m.Coordinates()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLat, lat)
			assert.Equal(t, tt.wantLon, lon)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
