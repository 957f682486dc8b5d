package extract

import (
	"strings"

	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
)

// IsCameraMedia reports whether the item was captured by a camera. Items
// without camera make and model (screenshots, saved images, most imports)
// are not.
func IsCameraMedia(photo entity.Photo) bool {
	camera := photo.Camera()
	if camera == nil {
		return false
	}
	return strings.TrimSpace(camera.CameraMake()) != "" || strings.TrimSpace(camera.CameraModel()) != ""
}

// ResolveRegion derives a best-effort region label from place metadata. A
// structured country wins; otherwise the last segment of a comma-separated
// place name is used. This is a heuristic, not geocoding.
func ResolveRegion(place any) string {
	switch p := place.(type) {
	case entity.CountryPlace:
		if country := strings.TrimSpace(p.Country()); country != "" {
			return country
		}
	case entity.NamedPlace:
		name := p.Name()
		if strings.Contains(name, ",") {
			parts := strings.Split(name, ",")
			if last := strings.TrimSpace(parts[len(parts)-1]); last != "" {
				return last
			}
		}
	}
	return entity.UnknownRegion
}
