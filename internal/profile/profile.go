// Package profile reads birth profiles, the files that carry the birth data
// of one person, from TOML or YAML.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/papapumpkin/kundali/internal/chart"
	"github.com/papapumpkin/kundali/internal/ephemeris"
)

// ErrUnsupportedFormat is returned for a file extension other than .toml,
// .yaml or .yml.
var ErrUnsupportedFormat = errors.New("unsupported profile format")

// Profile is the birth data of one person. Ayanamsa may be empty, in which
// case the caller's default applies.
type Profile struct {
	Name      string  `toml:"name" yaml:"name"`
	Year      int     `toml:"year" yaml:"year"`
	Month     int     `toml:"month" yaml:"month"`
	Day       int     `toml:"day" yaml:"day"`
	Hour      int     `toml:"hour" yaml:"hour"`
	Minute    int     `toml:"minute" yaml:"minute"`
	Latitude  float64 `toml:"latitude" yaml:"latitude"`
	Longitude float64 `toml:"longitude" yaml:"longitude"`
	Timezone  float64 `toml:"timezone" yaml:"timezone"`
	Ayanamsa  string  `toml:"ayanamsa,omitempty" yaml:"ayanamsa,omitempty"`

	// Path is the file the profile was read from.
	Path string `toml:"-" yaml:"-"`
}

// IsProfile reports whether path has a profile file extension.
func IsProfile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads the profile at path. Unknown keys are rejected so that a typo
// never silently drops a birth field. A profile without a name is named after
// its file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var p Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&p)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&p)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	p.Path = path
	return &p, nil
}

// Paths lists the profile files directly inside dir, sorted by name.
func Paths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading profile directory: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !IsProfile(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	slices.Sort(out)
	return out, nil
}

// Input converts the profile to chart input. def is used when the profile
// names no ayanamsa; it is the only default applied.
func (p *Profile) Input(def ephemeris.Ayanamsa) (chart.BirthInput, error) {
	mode := def
	if p.Ayanamsa != "" {
		var err error
		if mode, err = ephemeris.ParseAyanamsa(p.Ayanamsa); err != nil {
			return chart.BirthInput{}, fmt.Errorf("profile %s: %w", p.Name, err)
		}
	}
	return chart.BirthInput{
		Year:      p.Year,
		Month:     p.Month,
		Day:       p.Day,
		Hour:      p.Hour,
		Minute:    p.Minute,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Timezone:  p.Timezone,
		Ayanamsa:  mode,
	}, nil
}
