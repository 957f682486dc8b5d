package export

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
)

// GeoJSONEncoder groups records by region, one MultiPoint feature per
// region, regions in lexical order.
type GeoJSONEncoder struct {
	Indent string
}

func NewGeoJSONEncoder() *GeoJSONEncoder {
	return &GeoJSONEncoder{Indent: "  "}
}

func (e *GeoJSONEncoder) Encode(w io.Writer, records []entity.LocationRecord) error {
	fc := BuildFeatureCollection(records)

	enc := json.NewEncoder(w)
	enc.SetIndent("", e.Indent)
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("encoding geojson: %w", err)
	}
	return nil
}

func (e *GeoJSONEncoder) ContentType() string {
	return "application/geo+json"
}

func (e *GeoJSONEncoder) Extension() string {
	return ".geojson"
}

func BuildFeatureCollection(records []entity.LocationRecord) *geojson.FeatureCollection {
	byRegion := make(map[string]orb.MultiPoint)
	for _, rec := range records {
		coord := rec.MapCoordinate()
		if !coord.IsValid() {
			continue
		}
		region := rec.Region
		if region == "" {
			region = entity.UnknownRegion
		}
		byRegion[region] = append(byRegion[region], orb.Point{coord.Longitude, coord.Latitude})
	}

	regions := make([]string, 0, len(byRegion))
	for region := range byRegion {
		regions = append(regions, region)
	}
	slices.Sort(regions)

	fc := geojson.NewFeatureCollection()
	for _, region := range regions {
		f := geojson.NewFeature(byRegion[region])
		f.Properties["region"] = region
		fc.Append(f)
	}
	return fc
}
