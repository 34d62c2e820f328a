package resourcelimits

import (
	"os"
	"sort"

	"github.com/core-tools/hsu-rlimit/pkg/errors"
	"github.com/core-tools/hsu-rlimit/pkg/logging"

	"gopkg.in/yaml.v3"
)

// Profile is a set of limit updates, loaded from YAML:
//
//	limits:
//	  nofile: { soft: 4096 }
//	  core: { soft: 0, hard: 0 }
//	  cpu: { soft: null }
//
// An omitted side stays unchanged, null means unbounded.
type Profile struct {
	Limits map[string]Update
}

type profileDocument struct {
	Limits map[string]interface{} `yaml:"limits"`
}

// UnmarshalYAML decodes the limits through ParseUpdate so that a missing key
// and an explicit null stay distinguishable.
func (p *Profile) UnmarshalYAML(node *yaml.Node) error {
	var doc profileDocument
	if err := node.Decode(&doc); err != nil {
		return err
	}
	p.Limits = make(map[string]Update, len(doc.Limits))
	for name, raw := range doc.Limits {
		if raw == nil {
			p.Limits[name] = Update{}
			continue
		}
		update, err := ParseUpdate(raw)
		if err != nil {
			return errors.NewValidationError("invalid limits for resource", err).WithContext("resource", name)
		}
		p.Limits[name] = update
	}
	return nil
}

// ParseProfile parses a YAML profile
func ParseProfile(data []byte) (*Profile, error) {
	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		if errors.IsValidationError(err) {
			return nil, err
		}
		return nil, errors.NewValidationError("failed to parse YAML profile", err)
	}
	if profile.Limits == nil {
		profile.Limits = map[string]Update{}
	}
	return &profile, nil
}

// LoadProfileFromFile reads and parses a YAML profile
func LoadProfileFromFile(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.NewIOError("failed to read profile file", err).WithContext("filename", filename)
	}
	profile, err := ParseProfile(data)
	if err != nil {
		return nil, errors.NewValidationError("invalid profile file", err).WithContext("filename", filename)
	}
	return profile, nil
}

// ValidateProfile checks that every resource name is known on this platform
func ValidateProfile(profile *Profile) error {
	if profile == nil {
		return errors.NewValidationError("profile cannot be nil", nil)
	}
	collection := errors.NewErrorCollection()
	for _, name := range profile.Names() {
		if _, ok := Lookup(name); !ok {
			collection.Add(errors.NewUnknownResourceError(name))
		}
	}
	return collection.ToError()
}

// ApplyProfile applies each update in name order. Failures are collected and
// the remaining resources are still applied.
func (m *Manager) ApplyProfile(profile *Profile) error {
	return ApplyProfileTo(m, profile, m.logger)
}

// ApplyProfileTo applies a profile through any writer, such as a remote
// gateway adapted to LimitWriter.
func ApplyProfileTo(writer LimitWriter, profile *Profile, logger logging.Logger) error {
	if profile == nil {
		return errors.NewValidationError("profile cannot be nil", nil)
	}
	collection := errors.NewErrorCollection()
	applied := 0
	for _, name := range profile.Names() {
		update := profile.Limits[name]
		if err := writer.Set(name, update); err != nil {
			logger.Errorf("Failed to apply %s (%s): %v", name, update, err)
			collection.Add(err)
			continue
		}
		applied++
	}
	logger.Infof("Applied %d of %d resource limits", applied, len(profile.Limits))
	return collection.ToError()
}

// Names returns the resource names of the profile, sorted
func (p *Profile) Names() []string {
	names := make([]string, 0, len(p.Limits))
	for name := range p.Limits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
