package calendar

import "fmt"

// Band is the event density of a week row.
type Band int

const (
	BandNone Band = iota
	BandLow
	BandHigh
	// BandNeutral is only ever assigned to cells outside the displayed month.
	BandNeutral
)

var bandNames = [...]string{"none", "low", "high", "neutral"}

// Classify maps the number of events in a week to a Band.
func Classify(events int) Band {
	switch {
	case events > 1:
		return BandHigh
	case events == 1:
		return BandLow
	default:
		return BandNone
	}
}

func (b Band) String() string {
	if b < 0 || int(b) >= len(bandNames) {
		return fmt.Sprintf("Band(%d)", int(b))
	}
	return bandNames[b]
}

// MarshalText implements encoding.TextMarshaler.
func (b Band) MarshalText() ([]byte, error) {
	if b < 0 || int(b) >= len(bandNames) {
		return nil, fmt.Errorf("invalid band %d", int(b))
	}
	return []byte(bandNames[b]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Band) UnmarshalText(text []byte) error {
	for i, name := range bandNames {
		if name == string(text) {
			*b = Band(i)
			return nil
		}
	}
	return fmt.Errorf("invalid band %q", text)
}
