package reference

import (
	"math"

	"github.com/montanaflynn/stats"

	"courtlens/domain/core"
	"courtlens/domain/player"
)

// Config sets the qualification thresholds used to carve reference
// subsets out of the population. All values are externally supplied so
// recalibration never needs a code change.
type Config struct {
	MinShotVolume float64 // qualified: minimum season attempts
	MinUsage      float64 // qualified: minimum usage fraction
	CreatorUsage  float64 // creator subset: usage at or above this
	StarUsage     float64 // star benchmark subset for flash projection
	BucketWidth   float64 // usage bucket width for projection medians
	MinBucketSize int     // smallest bucket considered stable
}

// DefaultConfig returns the calibrated qualification thresholds
func DefaultConfig() Config {
	return Config{
		MinShotVolume: 200,
		MinUsage:      0.12,
		CreatorUsage:  0.20,
		StarUsage:     0.28,
		BucketWidth:   0.04,
		MinBucketSize: 8,
	}
}

// NamedPercentiles are the percentile points frozen at build time
var NamedPercentiles = []float64{15, 20, 25, 35, 60, 70, 75, 80}

// table holds frozen percentiles and the median for one feature
type table struct {
	percentiles map[float64]float64
	median      float64
	n           int
}

// Distribution is the immutable population summary every prediction
// shares. Build it once per dataset load; callers must treat it as
// read-only configuration.
type Distribution struct {
	cfg Config

	all       map[string]table
	qualified map[string]table
	creator   map[string]table

	// usage-bucket medians for volume features, keyed by bucket index
	buckets map[int]map[string]float64
	// medians among star-usage players, for the flash override
	star map[string]float64

	qualifiedN int
	creatorN   int
}

// VolumeFeatures are the usage-sensitive metrics the projector rewrites
func VolumeFeatures() []string {
	return []string{
		player.FeatShotVolume,
		player.FeatCreationVolumeRatio,
		player.FeatRimPressureRate,
	}
}

// Build computes the reference distribution from a full dataset. It is
// the explicit constructor the rest of the engine depends on: no lazy
// module-level caches, no partial views.
func Build(ds player.Dataset, cfg Config) (*Distribution, error) {
	d := &Distribution{
		cfg:       cfg,
		all:       map[string]table{},
		qualified: map[string]table{},
		creator:   map[string]table{},
		buckets:   map[int]map[string]float64{},
		star:      map[string]float64{},
	}

	// Normalize once up front so every table, the population one
	// included, summarizes the same fraction-scale values.
	var all, qualified, creators, starUsage player.Dataset
	for _, raw := range ds {
		v := raw.Normalize()
		all = append(all, v)
		if !v.UsageRate.Known {
			continue
		}
		if v.ShotVolume.Or(0) >= cfg.MinShotVolume && v.UsageRate.Value >= cfg.MinUsage {
			qualified = append(qualified, v)
		}
		if v.UsageRate.Value >= cfg.CreatorUsage {
			creators = append(creators, v)
		}
		if v.UsageRate.Value >= cfg.StarUsage {
			starUsage = append(starUsage, v)
		}
	}
	d.qualifiedN = len(qualified)
	d.creatorN = len(creators)

	for _, name := range player.FeatureNames() {
		if t, ok := summarize(all, name); ok {
			d.all[name] = t
		}
		if t, ok := summarize(qualified, name); ok {
			d.qualified[name] = t
		}
		if t, ok := summarize(creators, name); ok {
			d.creator[name] = t
		}
	}

	d.buildBuckets(qualified)
	for _, name := range VolumeFeatures() {
		if med, ok := subsetMedian(starUsage, name); ok {
			d.star[name] = med
		}
	}

	return d, nil
}

// summarize freezes the named percentiles and median for one feature
func summarize(ds player.Dataset, feature string) (table, bool) {
	values := collect(ds, feature)
	if len(values) == 0 {
		return table{}, false
	}
	t := table{percentiles: map[float64]float64{}, n: len(values)}
	for _, p := range NamedPercentiles {
		v, err := stats.Percentile(values, p)
		if err != nil {
			return table{}, false
		}
		t.percentiles[p] = v
	}
	med, err := stats.Median(values)
	if err != nil {
		return table{}, false
	}
	t.median = med
	return t, true
}

func collect(ds player.Dataset, feature string) []float64 {
	out := make([]float64, 0, len(ds))
	for _, v := range ds {
		if m := v.Metric(feature); m.Known {
			out = append(out, m.Value)
		}
	}
	return out
}

func subsetMedian(ds player.Dataset, feature string) (float64, bool) {
	values := collect(ds, feature)
	if len(values) == 0 {
		return 0, false
	}
	med, err := stats.Median(values)
	if err != nil {
		return 0, false
	}
	return med, true
}

func (d *Distribution) buildBuckets(qualified player.Dataset) {
	byBucket := map[int]player.Dataset{}
	for _, v := range qualified {
		idx := d.BucketIndex(v.UsageRate.Value)
		byBucket[idx] = append(byBucket[idx], v)
	}
	for idx, rows := range byBucket {
		if len(rows) < d.cfg.MinBucketSize {
			continue
		}
		medians := map[string]float64{}
		for _, name := range VolumeFeatures() {
			if med, ok := subsetMedian(rows, name); ok {
				medians[name] = med
			}
		}
		if len(medians) > 0 {
			d.buckets[idx] = medians
		}
	}
}

// BucketIndex maps a usage fraction to its bucket
func (d *Distribution) BucketIndex(usage float64) int {
	if d.cfg.BucketWidth <= 0 {
		return 0
	}
	return int(math.Floor(usage / d.cfg.BucketWidth))
}

// Config returns the build-time qualification thresholds
func (d *Distribution) Config() Config { return d.cfg }

// QualifiedCount reports the size of the qualified subset
func (d *Distribution) QualifiedCount() int { return d.qualifiedN }

// CreatorCount reports the size of the creator subset
func (d *Distribution) CreatorCount() int { return d.creatorN }

func lookup(tables map[string]table, feature string, p float64) (float64, error) {
	t, ok := tables[feature]
	if !ok {
		return 0, core.NewReferenceError(feature, p)
	}
	v, ok := t.percentiles[p]
	if !ok {
		return 0, core.NewReferenceError(feature, p)
	}
	return v, nil
}

// Percentile returns a named percentile over the whole population
func (d *Distribution) Percentile(feature string, p float64) (float64, error) {
	return lookup(d.all, feature, p)
}

// QualifiedPercentile returns a named percentile over the qualified subset
func (d *Distribution) QualifiedPercentile(feature string, p float64) (float64, error) {
	return lookup(d.qualified, feature, p)
}

// CreatorPercentile returns a named percentile over the creator subset
// (usage at or above the creator threshold), used by the path router
func (d *Distribution) CreatorPercentile(feature string, p float64) (float64, error) {
	return lookup(d.creator, feature, p)
}

// QualifiedMedian returns the qualified-subset median; this satisfies
// player.MedianSource for the centralized default-filling step
func (d *Distribution) QualifiedMedian(feature string) (float64, error) {
	t, ok := d.qualified[feature]
	if !ok {
		return 0, core.NewReferenceError(feature, 50)
	}
	return t.median, nil
}

// BucketMedian returns the empirical median of a volume feature among
// qualified players whose usage falls in the bucket containing usage.
// An unstable or empty bucket surfaces ErrInsufficientReferenceData so
// the projector can fall back to its adjusted scaling factor.
func (d *Distribution) BucketMedian(feature string, usage float64) (float64, error) {
	bucket, ok := d.buckets[d.BucketIndex(usage)]
	if !ok {
		return 0, core.NewReferenceError(feature, 50)
	}
	med, ok := bucket[feature]
	if !ok {
		return 0, core.NewReferenceError(feature, 50)
	}
	return med, nil
}

// StarMedian returns the median of a volume feature among star-usage
// reference players, the benchmark the flash-potential override targets
func (d *Distribution) StarMedian(feature string) (float64, error) {
	med, ok := d.star[feature]
	if !ok {
		return 0, core.NewReferenceError(feature, 50)
	}
	return med, nil
}
