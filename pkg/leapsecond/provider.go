package leapsecond

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"

	"github.com/BYTE-6D65/timescale/pkg/calendar"
)

// Provider supplies the leap-second event list from some external data
// source. Providers are consulted once per table build; the resulting
// Table is immutable, so a slow or remote provider never sits on a hot
// path.
type Provider interface {
	Events() ([]Event, error)
}

// BuiltinProvider serves the compiled-in IERS list.
type BuiltinProvider struct{}

func (BuiltinProvider) Events() ([]Event, error) {
	events := make([]Event, len(builtinEvents))
	copy(events, builtinEvents)
	return events, nil
}

// fileEvent is the on-disk representation of one event, shared by the
// JSON and YAML formats:
//
//	[{"date": "2016-12-31", "shift": 1}, ...]
type fileEvent struct {
	Date  string `json:"date" yaml:"date"`
	Shift int    `json:"shift" yaml:"shift"`
}

// FileProvider reads an event list from a .json, .yaml or .yml file.
type FileProvider struct {
	Path string
}

func (p FileProvider) Events() ([]Event, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("leapsecond: read %s: %w", p.Path, err)
	}

	var raw []fileEvent
	switch ext := strings.ToLower(filepath.Ext(p.Path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("leapsecond: parse %s: %w", p.Path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("leapsecond: parse %s: %w", p.Path, err)
		}
	default:
		return nil, fmt.Errorf("leapsecond: unsupported leap table format %q", ext)
	}

	events := make([]Event, 0, len(raw))
	for _, fe := range raw {
		date, err := ParseDate(fe.Date)
		if err != nil {
			return nil, err
		}
		events = append(events, Event{Date: date, Shift: fe.Shift})
	}
	return events, nil
}

// FromProvider builds a validated table from a provider's event list.
func FromProvider(p Provider) (*Table, error) {
	events, err := p.Events()
	if err != nil {
		return nil, err
	}
	return New(events)
}

// ParseDate parses a "YYYY-MM-DD" UTC day. Leap-second events all fall
// after 1972, so negative years are not accepted here.
func ParseDate(s string) (calendar.Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return calendar.Date{}, fmt.Errorf("leapsecond: bad date %q, want YYYY-MM-DD", s)
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return calendar.Date{}, fmt.Errorf("leapsecond: bad date %q, want YYYY-MM-DD", s)
	}
	d := calendar.Date{Year: year, Month: month, Day: day}
	if !d.Valid() {
		return calendar.Date{}, fmt.Errorf("leapsecond: %q is not a calendar day", s)
	}
	return d, nil
}
