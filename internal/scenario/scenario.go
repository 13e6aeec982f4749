// Package scenario loads YAML descriptions of hooks, plugins and calls so
// dispatch behavior can be inspected offline with the hookplan tool.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/hookrelay"
)

// Hook describes one hook specification.
type Hook struct {
	Name        string   `yaml:"name"`
	Params      []string `yaml:"params"`
	Defaults    []string `yaml:"defaults"`
	FirstResult bool     `yaml:"firstresult"`
	Historic    bool     `yaml:"historic"`
}

// Impl describes one implementation a plugin contributes. Ordinary
// implementations return the configured Result literal (omit it for an
// absent result); wrappers pass the outcome through untouched.
type Impl struct {
	Hook     string   `yaml:"hook"`
	Params   []string `yaml:"params"`
	Result   any      `yaml:"result"`
	Wrapper  bool     `yaml:"wrapper"`
	Optional bool     `yaml:"optional"`
	TryFirst bool     `yaml:"tryfirst"`
	TryLast  bool     `yaml:"trylast"`
}

// Plugin is a named owner plus the implementations it registers.
type Plugin struct {
	Name  string `yaml:"name"`
	Impls []Impl `yaml:"impls"`
}

// Call is one invocation to execute against the assembled registry.
type Call struct {
	Hook string         `yaml:"hook"`
	Args map[string]any `yaml:"args"`
}

// Scenario is the full file: specifications, plugins and the calls to run.
type Scenario struct {
	Hooks   []Hook   `yaml:"hooks"`
	Plugins []Plugin `yaml:"plugins"`
	Calls   []Call   `yaml:"calls"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied scenario path
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario strictly: unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	seen := make(map[string]struct{}, len(s.Hooks))
	for _, h := range s.Hooks {
		if h.Name == "" {
			return fmt.Errorf("scenario: hook with empty name")
		}
		if _, ok := seen[h.Name]; ok {
			return fmt.Errorf("scenario: duplicate hook %q", h.Name)
		}
		seen[h.Name] = struct{}{}
	}
	for _, p := range s.Plugins {
		if p.Name == "" {
			return fmt.Errorf("scenario: plugin with empty name")
		}
		hooks := make(map[string]struct{}, len(p.Impls))
		for _, im := range p.Impls {
			if im.Hook == "" {
				return fmt.Errorf("scenario: plugin %q has an implementation with no hook", p.Name)
			}
			if _, ok := hooks[im.Hook]; ok {
				return fmt.Errorf("scenario: plugin %q implements hook %q twice", p.Name, im.Hook)
			}
			hooks[im.Hook] = struct{}{}
		}
	}
	for _, c := range s.Calls {
		if c.Hook == "" {
			return fmt.Errorf("scenario: call with empty hook name")
		}
	}
	return nil
}

// Build assembles a registry from the scenario: specifications first, then
// every plugin's implementations.
func (s *Scenario) Build(logger zerolog.Logger) (*hookrelay.Registry, error) {
	reg := hookrelay.NewRegistry(hookrelay.WithRegistryLogger(logger))

	specs := make([]*hookrelay.Spec, 0, len(s.Hooks))
	for _, h := range s.Hooks {
		spec, err := hookrelay.NewSpec(h.Name, hookrelay.SpecOpts{
			Params:      h.Params,
			Defaults:    h.Defaults,
			FirstResult: h.FirstResult,
			Historic:    h.Historic,
		})
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	if err := reg.AddSpecs(specs...); err != nil {
		return nil, err
	}

	for _, p := range s.Plugins {
		impls := make(map[string]*hookrelay.Impl, len(p.Impls))
		for _, im := range p.Impls {
			built, err := buildImpl(im)
			if err != nil {
				return nil, fmt.Errorf("plugin %q: %w", p.Name, err)
			}
			impls[im.Hook] = built
		}
		if err := reg.Register(nil, p.Name, impls); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

func buildImpl(im Impl) (*hookrelay.Impl, error) {
	opts := hookrelay.ImplOpts{
		Params:   im.Params,
		Optional: im.Optional,
		TryFirst: im.TryFirst,
		TryLast:  im.TryLast,
	}
	if im.Wrapper {
		return hookrelay.NewWrapper(im.Hook, passthroughWrapper, opts)
	}
	result := im.Result
	return hookrelay.NewImpl(im.Hook, func(hookrelay.Args) (any, error) {
		return result, nil
	}, opts)
}

func passthroughWrapper(hookrelay.Args) (hookrelay.Teardown, error) {
	return func(*hookrelay.Outcome) {}, nil
}
