package state

import "fmt"

// Quality is the render quality level.
type Quality string

const (
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"
)

// Valid reports whether q is one of the three levels.
func (q Quality) Valid() bool {
	switch q {
	case QualityHigh, QualityMedium, QualityLow:
		return true
	}
	return false
}

// Lower returns the next level down, or q itself at the floor.
func (q Quality) Lower() Quality {
	switch q {
	case QualityHigh:
		return QualityMedium
	case QualityMedium:
		return QualityLow
	}
	return q
}

// Higher returns the next level up, or q itself at the ceiling.
func (q Quality) Higher() Quality {
	switch q {
	case QualityLow:
		return QualityMedium
	case QualityMedium:
		return QualityHigh
	}
	return q
}

// ParseQuality parses a quality level name.
func ParseQuality(s string) (Quality, error) {
	q := Quality(s)
	if !q.Valid() {
		return "", fmt.Errorf("unknown quality level %q", s)
	}
	return q, nil
}
