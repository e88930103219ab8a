package bind

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Speed specifies how long a binder waits. It is either an explicit duration
// created with Millis or Duration, or a symbolic name looked up in Speeds. The zero
// value is unspecified and resolves to the default duration.
type Speed struct {
	name     string
	duration time.Duration
	explicit bool
}

// Predefined symbolic speeds.
var (
	Slow = Named("slow")
	Fast = Named("fast")
)

// Millis returns an explicit Speed of n milliseconds. Negative values are
// passed through as-is.
func Millis(n int) Speed {
	return Duration(time.Duration(n) * time.Millisecond)
}

// Duration returns an explicit Speed of d.
func Duration(d time.Duration) Speed {
	return Speed{duration: d, explicit: true}
}

// Named returns a symbolic Speed, resolved by name against Speeds.Table.
func Named(name string) Speed {
	return Speed{name: name}
}

// String returns the name of a symbolic speed, or the duration of an explicit
// one.
func (s Speed) String() string {
	if s.explicit {
		return s.duration.String()
	}
	if s.name == "" {
		return "default"
	}

	return s.name
}

// Speeds configures how a Speed resolves into a duration.
type Speeds struct {
	// Table maps symbolic names to durations.
	Table map[string]time.Duration

	// Default is used for unspecified and unknown names.
	Default time.Duration

	// Off collapses every duration to zero.
	Off bool
}

// DefaultSpeeds returns the standard speed table: slow is 600ms, fast is
// 200ms, and everything else is 400ms.
func DefaultSpeeds() Speeds {
	return Speeds{
		Table: map[string]time.Duration{
			"slow": 600 * time.Millisecond,
			"fast": 200 * time.Millisecond,
		},
		Default: 400 * time.Millisecond,
	}
}

func (s Speeds) clone() Speeds {
	if s.Table == nil {
		return s
	}

	table := make(map[string]time.Duration, len(s.Table))
	for name, d := range s.Table {
		table[name] = d
	}
	s.Table = table

	return s
}

// Resolve returns the duration s stands for under speeds. It never fails:
// when effects are off it is always zero, explicit durations are returned
// unchanged, and unknown names fall back to speeds.Default.
func Resolve(s Speed, speeds Speeds) time.Duration {
	switch {
	case speeds.Off:
		return 0
	case s.explicit:
		return s.duration
	}

	if d, ok := speeds.Table[s.name]; ok && s.name != "" {
		return d
	}

	return speeds.Default
}

type speedsFile struct {
	Off     *bool          `yaml:"off"`
	Default *int           `yaml:"default"`
	Speeds  map[string]int `yaml:"speeds"`
}

// ParseSpeeds parses a YAML speed configuration. Durations are given in
// milliseconds:
//
//	off: false
//	default: 400
//	speeds:
//	  slow: 600
//	  fast: 200
//	  glacial: 2000
//
// Anything left out keeps its value from DefaultSpeeds, and names listed under
// speeds are added to or override the default table.
func ParseSpeeds(data []byte) (Speeds, error) {
	return LoadSpeeds(bytes.NewReader(data))
}

// LoadSpeeds reads a YAML speed configuration from r. See ParseSpeeds for the
// format.
func LoadSpeeds(r io.Reader) (Speeds, error) {
	speeds := DefaultSpeeds()

	var f speedsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return Speeds{}, fmt.Errorf("bind: failed to parse speeds: %w", err)
	}

	if f.Off != nil {
		speeds.Off = *f.Off
	}
	if f.Default != nil {
		speeds.Default = time.Duration(*f.Default) * time.Millisecond
	}
	for name, ms := range f.Speeds {
		speeds.Table[name] = time.Duration(ms) * time.Millisecond
	}

	return speeds, nil
}
