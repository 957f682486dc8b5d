package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	exportUC "github.com/marcos-nsantos/photo-locations/internal/usecase/export"
	"github.com/marcos-nsantos/photo-locations/internal/usecase/pipeline"
)

const reportRule = "=================================================="

type reportOptions struct {
	Dedupe         bool
	DedupeDistance float64
	FilterPanos    bool
}

func printReport(w io.Writer, result *pipeline.Result, opts reportOptions) {
	fmt.Fprintf(w, "\nFound %d photos/videos with location data\n", result.TotalFound)
	if result.SkippedNonCamera > 0 {
		fmt.Fprintf(w, "Skipped %d screenshots/non-camera media\n", result.SkippedNonCamera)
	}
	if result.NullCoordinates > 0 {
		fmt.Fprintf(w, "Skipped %d photos/videos with null coordinates\n", result.NullCoordinates)
	}
	if result.DateFiltered > 0 {
		fmt.Fprintf(w, "Skipped %d photos/videos outside date range\n", result.DateFiltered)
	}

	if opts.Dedupe {
		fmt.Fprintf(w, "\nDeduplicated (%gm): removed %d duplicate locations (%d unique locations remaining)\n",
			opts.DedupeDistance, result.DuplicatesRemoved, result.TotalFound-result.DuplicatesRemoved)
	}
	if opts.FilterPanos {
		switch {
		case result.PanoramasSkipped:
			fmt.Fprintln(w, "\nWarning: --filter-panos requires MAP_API_KEY. Skipping panorama filtering.")
		case result.PanoramaFiltered > 0:
			fmt.Fprintf(w, "\nFiltered out %d locations without Street View panoramas or with panoramas too far away\n", result.PanoramaFiltered)
			fmt.Fprintf(w, "(%d locations with valid panoramas remaining)\n", len(result.Records))
		default:
			fmt.Fprintf(w, "\nAll %d locations have valid Street View panoramas\n", len(result.Records))
		}
	}

	st := result.Stats
	fmt.Fprintf(w, "\n%s\nSTATISTICS\n%s\n", reportRule, reportRule)
	fmt.Fprintf(w, "Total photos/videos with location: %d\n", st.Total)
	fmt.Fprintf(w, "  - Photos: %d\n", st.PhotoCount)
	fmt.Fprintf(w, "  - Videos: %d\n", st.VideoCount)
	fmt.Fprintf(w, "  - Favorites: %d\n", st.FavoriteCount)
	fmt.Fprintf(w, "  - With description: %d\n", st.WithDescriptionCount)
	fmt.Fprintf(w, "  - Regions: %d\n", st.RegionCount)
	if result.NullCoordinates > 0 {
		fmt.Fprintf(w, "  - Null coordinates filtered: %d\n", result.NullCoordinates)
	}
	if opts.Dedupe && result.DuplicatesRemoved > 0 {
		fmt.Fprintf(w, "  - Duplicates removed: %d\n", result.DuplicatesRemoved)
	}
	if opts.FilterPanos && result.PanoramaFiltered > 0 {
		fmt.Fprintf(w, "  - No Street View panorama (or too far): %d\n", result.PanoramaFiltered)
	}
	if st.Earliest != nil && st.Latest != nil {
		fmt.Fprintln(w, "\nDate range:")
		fmt.Fprintf(w, "  - Earliest: %s\n", st.Earliest.Format(time.DateTime))
		fmt.Fprintf(w, "  - Latest: %s\n", st.Latest.Format(time.DateTime))
	}
	fmt.Fprintf(w, "%s\n\n", reportRule)
}

func printOutputs(w io.Writer, outputs []exportUC.Output) {
	for _, out := range outputs {
		fmt.Fprintf(w, "Saved %s\n", absPath(out.Path))
		if out.URL != "" {
			fmt.Fprintf(w, "  published: %s\n", out.URL)
		}
		if out.SignedURL != "" {
			fmt.Fprintf(w, "  signed:    %s\n", out.SignedURL)
		}
	}
	fmt.Fprintln(w, "\nExport complete!")
}

// progress redraws a single status line as panorama lookups complete.
type progress struct {
	mu    sync.Mutex
	w     io.Writer
	label string
	last  time.Time
}

func newProgress(w io.Writer, label string) *progress {
	return &progress{w: w, label: label}
}

func (p *progress) LookupDone(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	if done < total && now.Sub(p.last) < 200*time.Millisecond {
		return
	}
	p.last = now

	width := 30
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	fmt.Fprintf(p.w, "\r%s [%s%s] %d/%d", p.label,
		strings.Repeat("#", filled), strings.Repeat(" ", width-filled), done, total)
	if done == total {
		fmt.Fprintln(p.w)
	}
}
