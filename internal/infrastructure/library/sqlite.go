package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
)

const (
	// Photos stores capture dates as Core Data timestamps, seconds since
	// 2001-01-01T00:00:00Z.
	coreDataEpoch = 978307200

	// Photos marks assets without a location with -180 for both axes.
	noLocationSentinel = -180.0

	assetKindVideo = 1
)

const assetsQuery = `
	SELECT a.ZUUID, a.ZFILENAME, aa.ZORIGINALFILENAME, aa.ZTITLE, d.ZLONGDESCRIPTION,
	       a.ZLATITUDE, a.ZLONGITUDE, a.ZDATECREATED, aa.ZTIMEZONEOFFSET,
	       a.ZKIND, a.ZFAVORITE, e.Z_PK, e.ZCAMERAMAKE, e.ZCAMERAMODEL, m.ZTITLE
	FROM ZASSET a
	LEFT JOIN ZADDITIONALASSETATTRIBUTES aa ON aa.ZASSET = a.Z_PK
	LEFT JOIN ZASSETDESCRIPTION d ON d.Z_PK = aa.ZASSETDESCRIPTION
	LEFT JOIN ZEXTENDEDATTRIBUTES e ON e.ZASSET = a.Z_PK
	LEFT JOIN ZMOMENT m ON m.Z_PK = a.ZMOMENT
	WHERE COALESCE(a.ZTRASHEDSTATE, 0) = 0
	ORDER BY a.Z_PK
`

// SQLiteSource reads assets straight from a Photos library database
// (Photos.sqlite). The database is opened read-only.
type SQLiteSource struct {
	path string
}

// NewSQLiteSource accepts either the database file or a .photoslibrary
// bundle, in which case database/Photos.sqlite inside it is used.
func NewSQLiteSource(path string) (*SQLiteSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening photos library: %w", err)
	}
	if info.IsDir() {
		path = filepath.Join(path, "database", "Photos.sqlite")
	}
	return &SQLiteSource{path: path}, nil
}

func (s *SQLiteSource) Name() string {
	return "photos-db:" + s.path
}

func (s *SQLiteSource) Photos(ctx context.Context) ([]entity.Photo, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("opening photos database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("setting read-only mode: %w", err)
	}

	rows, err := db.QueryContext(ctx, assetsQuery)
	if err != nil {
		return nil, fmt.Errorf("querying assets: %w", err)
	}
	defer rows.Close()

	photos := make([]entity.Photo, 0)
	for rows.Next() {
		var (
			uuid, filename                  sql.NullString
			originalFilename, title, desc   sql.NullString
			lat, lng, created               sql.NullFloat64
			tzOffset, kind, favorite, extPK sql.NullInt64
			cameraMake, cameraModel, moment sql.NullString
		)
		if err := rows.Scan(
			&uuid, &filename, &originalFilename, &title, &desc,
			&lat, &lng, &created, &tzOffset,
			&kind, &favorite, &extPK, &cameraMake, &cameraModel, &moment,
		); err != nil {
			return nil, fmt.Errorf("scanning asset: %w", err)
		}

		photo := &entity.RawPhoto{
			UUID:       uuid.String,
			Filename:   originalFilename.String,
			PhotoTitle: title.String,
			PhotoDesc:  desc.String,
			Movie:      kind.Valid && kind.Int64 == assetKindVideo,
			Favorite:   favorite.Valid && favorite.Int64 != 0,
		}
		if photo.Filename == "" {
			photo.Filename = filename.String
		}

		photo.HasLocation = (lat.Valid || lng.Valid) &&
			!(lat.Float64 == noLocationSentinel && lng.Float64 == noLocationSentinel)
		if lat.Valid {
			photo.Latitude = &lat.Float64
		}
		if lng.Valid {
			photo.Longitude = &lng.Float64
		}

		if created.Valid {
			taken := coreDataTime(created.Float64, tzOffset.Int64)
			photo.TakenAt = &taken
		}

		if extPK.Valid {
			photo.Exif = &entity.Exif{Make: cameraMake.String, Model: cameraModel.String}
		}

		if moment.Valid && moment.String != "" {
			photo.PlaceInfo = entity.PlaceName{Text: moment.String}
		}

		photos = append(photos, photo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assets: %w", err)
	}

	return photos, nil
}

func coreDataTime(seconds float64, tzOffsetSeconds int64) time.Time {
	sec := int64(seconds)
	nsec := int64((seconds - float64(sec)) * float64(time.Second))
	zone := time.FixedZone("", int(tzOffsetSeconds))
	return time.Unix(coreDataEpoch+sec, nsec).In(zone)
}
