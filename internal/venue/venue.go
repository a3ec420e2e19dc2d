package venue

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hpetersen/cityevents/internal/event"
)

// Profile is the per-venue configuration record.
type Profile struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	City    string `yaml:"city" json:"city"`
	Address string `yaml:"address,omitempty" json:"address,omitempty"`
	// URL is the venue's events page.
	URL string `yaml:"url" json:"url"`
	// Strategy forces an extraction strategy ("structured",
	// "selector", "heuristic"). Empty means the default ladder.
	Strategy event.Source `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	// Selector overrides the event container selector for this venue.
	Selector string `yaml:"selector,omitempty" json:"selector,omitempty"`
}

// Registry maps venue IDs to profiles. It starts from the built-in
// table; a YAML file can add venues or override built-ins.
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry creates a registry seeded with the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]*Profile, len(builtinProfiles))}
	for id, p := range builtinProfiles {
		copied := *p
		copied.ID = id
		r.profiles[id] = &copied
	}
	return r
}

// LoadFile merges venue profiles from a YAML file into the registry.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading venue file: %w", err)
	}

	var file struct {
		Venues []*Profile `yaml:"venues"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing venue file: %w", err)
	}

	for _, p := range file.Venues {
		id := normalizeID(p.ID)
		if id == "" {
			return fmt.Errorf("venue entry %q missing id", p.Name)
		}
		if p.URL == "" {
			return fmt.Errorf("venue %s missing url", id)
		}
		p.ID = id
		r.profiles[id] = p
	}
	return nil
}

// Lookup returns the profile for a venue ID, or nil when unknown.
func (r *Registry) Lookup(id string) *Profile {
	return r.profiles[normalizeID(id)]
}

// All returns every profile sorted by ID.
func (r *Registry) All() []*Profile {
	out := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered venues.
func (r *Registry) Len() int {
	return len(r.profiles)
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
