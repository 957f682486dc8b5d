package entity

import "time"

// Photo is a raw media item as exposed by a photo library. Camera and place
// metadata are optional capabilities: Camera returns nil when the item has no
// EXIF block, and Place returns nil or a value implementing CountryPlace
// and/or NamedPlace.
type Photo interface {
	ID() string
	OriginalFilename() string
	Title() string
	Description() string
	// Location reports whether the item is geotagged at all. lat or lng may
	// still be nil when the library stored a partial fix.
	Location() (lat, lng *float64, ok bool)
	Date() (time.Time, bool)
	IsMovie() bool
	IsFavorite() bool
	Camera() CameraInfo
	Place() any
}

type CameraInfo interface {
	CameraMake() string
	CameraModel() string
}

// CountryPlace is place metadata carrying a structured country field.
type CountryPlace interface {
	Country() string
}

// NamedPlace is place metadata carrying a free-text name such as
// "Shibuya, Tokyo, Japan".
type NamedPlace interface {
	Name() string
}

// RawPhoto is a plain Photo implementation shared by the library readers.
type RawPhoto struct {
	UUID        string
	Filename    string
	PhotoTitle  string
	PhotoDesc   string
	Latitude    *float64
	Longitude   *float64
	HasLocation bool
	TakenAt     *time.Time
	Movie       bool
	Favorite    bool
	Exif        *Exif
	PlaceInfo   any
}

func (p *RawPhoto) ID() string               { return p.UUID }
func (p *RawPhoto) OriginalFilename() string { return p.Filename }
func (p *RawPhoto) Title() string            { return p.PhotoTitle }
func (p *RawPhoto) Description() string      { return p.PhotoDesc }
func (p *RawPhoto) IsMovie() bool            { return p.Movie }
func (p *RawPhoto) IsFavorite() bool         { return p.Favorite }
func (p *RawPhoto) Place() any               { return p.PlaceInfo }

func (p *RawPhoto) Location() (*float64, *float64, bool) {
	return p.Latitude, p.Longitude, p.HasLocation
}

func (p *RawPhoto) Date() (time.Time, bool) {
	if p.TakenAt == nil {
		return time.Time{}, false
	}
	return *p.TakenAt, true
}

func (p *RawPhoto) Camera() CameraInfo {
	if p.Exif == nil {
		return nil
	}
	return p.Exif
}

type Exif struct {
	Make  string
	Model string
}

func (e *Exif) CameraMake() string  { return e.Make }
func (e *Exif) CameraModel() string { return e.Model }

// Country is place metadata with a structured country.
type Country struct {
	CountryName string
}

func (c Country) Country() string { return c.CountryName }

// PlaceName is place metadata with only a free-text name.
type PlaceName struct {
	Text string
}

func (p PlaceName) Name() string { return p.Text }
