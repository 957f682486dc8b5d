package library

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/marcos-nsantos/photo-locations/internal/domain"
	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
)

var manifestDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

// ManifestSource reads the JSON produced by `osxphotos query --json`, or any
// document with the same shape: an array of photo objects, optionally
// wrapped in {"photos": [...]}.
type ManifestSource struct {
	name string
	data []byte
}

func NewManifestSource(name string, data []byte) *ManifestSource {
	return &ManifestSource{name: name, data: data}
}

func LoadManifest(path string) (*ManifestSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return NewManifestSource(path, data), nil
}

// ManifestReader parses manifests received in memory, such as request bodies.
type ManifestReader struct{}

func NewManifestReader() *ManifestReader {
	return &ManifestReader{}
}

func (r *ManifestReader) Read(ctx context.Context, data []byte) ([]entity.Photo, error) {
	return NewManifestSource("upload", data).Photos(ctx)
}

func (s *ManifestSource) Name() string {
	return "manifest:" + s.name
}

func (s *ManifestSource) Photos(ctx context.Context) ([]entity.Photo, error) {
	if len(strings.TrimSpace(string(s.data))) == 0 {
		return nil, domain.ErrEmptyManifest
	}
	if !gjson.ValidBytes(s.data) {
		return nil, domain.ErrInvalidManifest
	}

	root := gjson.ParseBytes(s.data)
	if root.IsObject() {
		root = root.Get("photos")
	}
	if !root.IsArray() {
		return nil, domain.ErrInvalidManifest
	}

	photos := make([]entity.Photo, 0)
	var ctxErr error
	root.ForEach(func(_, item gjson.Result) bool {
		if ctxErr = ctx.Err(); ctxErr != nil {
			return false
		}
		if item.IsObject() {
			photos = append(photos, manifestPhoto(item))
		}
		return true
	})
	if ctxErr != nil {
		return nil, ctxErr
	}

	return photos, nil
}

func manifestPhoto(item gjson.Result) *entity.RawPhoto {
	photo := &entity.RawPhoto{
		UUID:       item.Get("uuid").String(),
		Filename:   item.Get("original_filename").String(),
		PhotoTitle: item.Get("title").String(),
		PhotoDesc:  item.Get("description").String(),
		Movie:      item.Get("ismovie").Bool(),
		Favorite:   item.Get("favorite").Bool(),
	}
	if photo.Filename == "" {
		photo.Filename = item.Get("filename").String()
	}

	if lat := item.Get("latitude"); lat.Type == gjson.Number {
		v := lat.Float()
		photo.Latitude = &v
	}
	if lng := item.Get("longitude"); lng.Type == gjson.Number {
		v := lng.Float()
		photo.Longitude = &v
	}
	photo.HasLocation = photo.Latitude != nil || photo.Longitude != nil

	if date := item.Get("date").String(); date != "" {
		if t, ok := parseManifestDate(date); ok {
			photo.TakenAt = &t
		}
	}

	if exif := item.Get("exif_info"); exif.IsObject() {
		photo.Exif = &entity.Exif{
			Make:  exif.Get("camera_make").String(),
			Model: exif.Get("camera_model").String(),
		}
	}

	if place := item.Get("place"); place.IsObject() {
		switch {
		case place.Get("country").Exists():
			photo.PlaceInfo = entity.Country{CountryName: place.Get("country").String()}
		case place.Get("address.country").Exists():
			photo.PlaceInfo = entity.Country{CountryName: place.Get("address.country").String()}
		case place.Get("name").Exists():
			photo.PlaceInfo = entity.PlaceName{Text: place.Get("name").String()}
		}
	}

	return photo
}

func parseManifestDate(value string) (time.Time, bool) {
	for _, layout := range manifestDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
