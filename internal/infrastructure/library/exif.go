package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
)

var exifExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

func init() {
	exif.RegisterParsers(mknote.All...)
}

// ExifSource walks a bucket of image files and builds photos from their EXIF
// headers. Files that cannot be decoded still produce a photo, without
// coordinates or camera information.
type ExifSource struct {
	location string
	bucket   *blob.Bucket
}

// NewExifSource opens location as a bucket. A plain directory path is opened
// with the local file driver; anything with a scheme goes through
// blob.OpenBucket.
func NewExifSource(ctx context.Context, location string) (*ExifSource, error) {
	var (
		bucket *blob.Bucket
		err    error
	)
	if strings.Contains(location, "://") {
		bucket, err = blob.OpenBucket(ctx, location)
	} else {
		bucket, err = fileblob.OpenBucket(location, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("opening image bucket: %w", err)
	}

	return NewExifSourceWithBucket(location, bucket), nil
}

func NewExifSourceWithBucket(location string, bucket *blob.Bucket) *ExifSource {
	return &ExifSource{location: location, bucket: bucket}
}

func (s *ExifSource) Name() string {
	return "images:" + s.location
}

func (s *ExifSource) Close() error {
	return s.bucket.Close()
}

func (s *ExifSource) Photos(ctx context.Context) ([]entity.Photo, error) {
	photos := make([]entity.Photo, 0)

	it := s.bucket.List(nil)
	for {
		obj, err := it.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing images: %w", err)
		}
		if obj.IsDir || !exifExtensions[strings.ToLower(path.Ext(obj.Key))] {
			continue
		}

		photo, err := s.readPhoto(ctx, obj.Key)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}

	return photos, nil
}

func (s *ExifSource) readPhoto(ctx context.Context, key string) (*entity.RawPhoto, error) {
	photo := &entity.RawPhoto{
		UUID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte(s.location+"/"+key)).String(),
		Filename:    path.Base(key),
		HasLocation: true,
	}

	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", key, err)
	}
	defer r.Close()

	x, err := exif.Decode(r)
	if err != nil {
		return photo, nil
	}

	if lat, lng, err := x.LatLong(); err == nil {
		photo.Latitude = &lat
		photo.Longitude = &lng
	}

	if taken, err := x.DateTime(); err == nil {
		photo.TakenAt = &taken
	}

	photo.Exif = &entity.Exif{
		Make:  exifString(x, exif.Make),
		Model: exifString(x, exif.Model),
	}
	photo.PhotoDesc = exifString(x, exif.ImageDescription)

	return photo, nil
}

func exifString(x *exif.Exif, field exif.FieldName) string {
	tag, err := x.Get(field)
	if err != nil {
		return ""
	}
	v, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimRight(v, "\x00 ")
}
