package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
)

var csvHeader = []string{"Latitude", "Longitude"}

// CSVEncoder writes a two column coordinate table. A record that carries a
// panorama is written at the panorama position.
type CSVEncoder struct{}

func NewCSVEncoder() *CSVEncoder {
	return &CSVEncoder{}
}

func (e *CSVEncoder) Encode(w io.Writer, records []entity.LocationRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, rec := range records {
		coord := rec.MapCoordinate()
		if !coord.IsValid() {
			continue
		}
		row := []string{
			strconv.FormatFloat(coord.Latitude, 'f', -1, 64),
			strconv.FormatFloat(coord.Longitude, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

func (e *CSVEncoder) ContentType() string {
	return "text/csv"
}

func (e *CSVEncoder) Extension() string {
	return ".csv"
}
