package domain

import (
	"fmt"
	"time"
)

// Quality selects the rendering quality requested from the image gateway.
type Quality string

const (
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"
)

// Qualities is the interactive choice list, default first.
var Qualities = []Quality{QualityHigh, QualityMedium, QualityLow}

// Aspect selects the output aspect ratio.
type Aspect string

const (
	AspectSquare       Aspect = "square"
	AspectPortrait     Aspect = "portrait"
	AspectLandscape    Aspect = "landscape"
	AspectKeepOriginal Aspect = "keep-original"
)

// GenerationAspects are offered when generating from text.
var GenerationAspects = []Aspect{AspectSquare, AspectPortrait, AspectLandscape}

// ModificationAspects are offered when modifying an existing image.
var ModificationAspects = []Aspect{AspectSquare, AspectPortrait, AspectLandscape, AspectKeepOriginal}

// ParseQuality validates a quality name.
func ParseQuality(value string) (Quality, error) {
	for _, q := range Qualities {
		if string(q) == value {
			return q, nil
		}
	}
	return "", fmt.Errorf("unsupported quality %q", value)
}

// ParseAspect validates an aspect name.
func ParseAspect(value string) (Aspect, error) {
	for _, a := range ModificationAspects {
		if string(a) == value {
			return a, nil
		}
	}
	return "", fmt.Errorf("unsupported aspect ratio %q", value)
}

// GenerationSettings are the per-invocation knobs for image actions.
type GenerationSettings struct {
	Quality Quality
	Aspect  Aspect
	Count   int
	Timeout time.Duration
}

// TimeoutSeconds reports the timeout as whole seconds for display and metadata.
func (s GenerationSettings) TimeoutSeconds() int {
	return int(s.Timeout / time.Second)
}

// ClampCount keeps count within [MinImageCount, MaxImageCount]. Out-of-range
// values fall back to DefaultImageCount and report clamped=true so callers can
// warn without failing.
func ClampCount(count int) (value int, clamped bool) {
	if count < MinImageCount || count > MaxImageCount {
		return DefaultImageCount, true
	}
	return count, false
}
