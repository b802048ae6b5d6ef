// Package site holds named observing locations.
package site

import (
	"fmt"
	"sort"
	"strings"
)

// Site is a named observer location.
type Site struct {
	Name   string  `json:"name" yaml:"name"`
	LatDeg float64 `json:"lat" yaml:"lat"`
	LonDeg float64 `json:"lon" yaml:"lon"`
}

var presets = []Site{
	{Name: "London", LatDeg: 51.5074, LonDeg: -0.1278},
	{Name: "Paris", LatDeg: 48.8566, LonDeg: 2.3522},
	{Name: "Moscow", LatDeg: 55.7558, LonDeg: 37.6173},
	{Name: "Prague", LatDeg: 50.0755, LonDeg: 14.4378},
	{Name: "Berlin", LatDeg: 52.5200, LonDeg: 13.4050},
	{Name: "Rome", LatDeg: 41.9028, LonDeg: 12.4964},
	{Name: "Madrid", LatDeg: 40.4168, LonDeg: -3.7038},
	{Name: "New York", LatDeg: 40.7128, LonDeg: -74.0060},
}

// Presets returns the built-in sites in display order.
func Presets() []Site {
	out := make([]Site, len(presets))
	copy(out, presets)
	return out
}

// Validate checks the site has a name and coordinates on Earth.
func (s Site) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("site has no name")
	}
	if s.LatDeg < -90 || s.LatDeg > 90 {
		return fmt.Errorf("site %q: latitude %v outside [-90, 90]", s.Name, s.LatDeg)
	}
	if s.LonDeg < -180 || s.LonDeg > 180 {
		return fmt.Errorf("site %q: longitude %v outside [-180, 180]", s.Name, s.LonDeg)
	}
	return nil
}

// Registry resolves site names. It is read-only after construction.
type Registry struct {
	sites  []Site
	byName map[string]int
}

// NewRegistry builds a registry from the presets plus extra sites. An extra
// site with the name of an existing one replaces it in place.
func NewRegistry(extra ...Site) (*Registry, error) {
	r := &Registry{byName: make(map[string]int)}
	for _, s := range presets {
		r.add(s)
	}
	for _, s := range extra {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		r.add(s)
	}
	return r, nil
}

func (r *Registry) add(s Site) {
	key := normalize(s.Name)
	if i, ok := r.byName[key]; ok {
		r.sites[i] = s
		return
	}
	r.byName[key] = len(r.sites)
	r.sites = append(r.sites, s)
}

// Lookup returns the site with the given name (case-insensitive).
func (r *Registry) Lookup(name string) (Site, bool) {
	i, ok := r.byName[normalize(name)]
	if !ok {
		return Site{}, false
	}
	return r.sites[i], true
}

// Sites returns all sites in registration order.
func (r *Registry) Sites() []Site {
	out := make([]Site, len(r.sites))
	copy(out, r.sites)
	return out
}

// Names returns the site names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, len(r.sites))
	for i, s := range r.sites {
		names[i] = s.Name
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
