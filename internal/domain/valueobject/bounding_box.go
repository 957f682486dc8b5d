package valueobject

// BoundingBox is the extent of a set of coordinates.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

func NewBoundingBox(minLat, maxLat, minLng, maxLng float64) *BoundingBox {
	return &BoundingBox{
		MinLat: minLat,
		MaxLat: maxLat,
		MinLng: minLng,
		MaxLng: maxLng,
	}
}

// BoundingBoxOf returns the smallest box containing every coordinate, or nil
// when coords is empty.
func BoundingBoxOf(coords []Coordinate) *BoundingBox {
	if len(coords) == 0 {
		return nil
	}

	bb := NewBoundingBox(coords[0].Latitude, coords[0].Latitude, coords[0].Longitude, coords[0].Longitude)
	for _, c := range coords[1:] {
		bb.Extend(c)
	}
	return bb
}

func (bb *BoundingBox) Extend(c Coordinate) {
	bb.MinLat = min(bb.MinLat, c.Latitude)
	bb.MaxLat = max(bb.MaxLat, c.Latitude)
	bb.MinLng = min(bb.MinLng, c.Longitude)
	bb.MaxLng = max(bb.MaxLng, c.Longitude)
}

func (bb *BoundingBox) IsValid() bool {
	return bb.MinLat <= bb.MaxLat &&
		bb.MinLng <= bb.MaxLng &&
		bb.MinLat >= -90 && bb.MaxLat <= 90 &&
		bb.MinLng >= -180 && bb.MaxLng <= 180
}

func (bb *BoundingBox) Contains(c Coordinate) bool {
	return c.Latitude >= bb.MinLat && c.Latitude <= bb.MaxLat &&
		c.Longitude >= bb.MinLng && c.Longitude <= bb.MaxLng
}
