package stats

import (
	"math"

	"github.com/inmodata/pisos-dashboard/internal/model"
)

// Outlier tags for the price histogram.
const (
	TagNormal   = "normal"
	TagAtypical = "atypical"
)

// TaggedListing is a listing annotated with its z-score within the current
// view. Tags are a per-filter-state computation: the same listing can flip
// between normal and atypical as the view changes.
type TaggedListing struct {
	model.Listing
	ZScore float64 `json:"z_score"`
	Tag    string  `json:"tag"`
}

// TagOutliers computes the population z-score of price over exactly the given
// subset and tags rows whose |z| reaches the threshold as atypical. The
// comparison is inclusive so a value landing exactly on the threshold counts
// as atypical. A zero-variance or empty subset yields all-normal tags with
// z=0; no division is attempted.
func TagOutliers(listings []model.Listing, threshold float64) []TaggedListing {
	out := make([]TaggedListing, 0, len(listings))
	if len(listings) == 0 {
		return out
	}

	var sum float64
	for _, l := range listings {
		sum += l.Price
	}
	n := float64(len(listings))
	mean := sum / n

	var sq float64
	for _, l := range listings {
		d := l.Price - mean
		sq += d * d
	}
	std := math.Sqrt(sq / n)

	for _, l := range listings {
		t := TaggedListing{Listing: l, Tag: TagNormal}
		if std > 0 {
			t.ZScore = (l.Price - mean) / std
			if math.Abs(t.ZScore) >= threshold {
				t.Tag = TagAtypical
			}
		}
		out = append(out, t)
	}
	return out
}
