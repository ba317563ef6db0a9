package problem

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadBindings reads a placeholder binding map (label -> value) from r.
func LoadBindings(r io.Reader) (map[string]float64, error) {
	var feed map[string]float64
	if err := yaml.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("could not parse bindings: %w", err)
	}
	return feed, nil
}

// LoadBindingsFile reads bindings from the named file.
func LoadBindingsFile(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadBindings(f)
}

// SampleSet is a list of samples to decode, with the vartype their values
// are expressed in ("BINARY" when omitted).
type SampleSet struct {
	Vartype string           `yaml:"vartype"`
	Samples []map[string]int `yaml:"samples"`
}

// LoadSamples reads a sample set from r.
func LoadSamples(r io.Reader) (*SampleSet, error) {
	var s SampleSet
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("could not parse samples: %w", err)
	}
	if s.Vartype == "" {
		s.Vartype = "BINARY"
	}
	return &s, nil
}

// LoadSamplesFile reads a sample set from the named file.
func LoadSamplesFile(path string) (*SampleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSamples(f)
}
