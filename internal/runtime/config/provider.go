package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Provider supplies configuration values that were not set explicitly.
type Provider interface {
	Lookup(key string) (string, bool)
}

// EnvProvider reads the process environment.
type EnvProvider struct{}

func (EnvProvider) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapProvider serves values from a fixed map. A nil map provides nothing.
type MapProvider map[string]string

func (m MapProvider) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// ChainProvider asks each provider in order and returns the first non-empty
// value.
type ChainProvider []Provider

func (c ChainProvider) Lookup(key string) (string, bool) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if v, ok := p.Lookup(key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FileProvider serves values loaded from a YAML document such as:
//
//	experiment_id: exp42
//	sender_id: node1
//	server: tcp:collector.example.org:3003
type FileProvider struct {
	ExperimentID string `yaml:"experiment_id"`
	SenderID     string `yaml:"sender_id"`
	Server       string `yaml:"server"`
}

// LoadFile reads a FileProvider from path.
func LoadFile(path string) (*FileProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFile(data)
}

// ParseFile decodes a FileProvider from YAML bytes.
func ParseFile(data []byte) (*FileProvider, error) {
	fp := &FileProvider{}
	if err := yaml.Unmarshal(data, fp); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	return fp, nil
}

func (f *FileProvider) Lookup(key string) (string, bool) {
	if f == nil {
		return "", false
	}
	var v string
	switch key {
	case KeyExperimentID:
		v = f.ExperimentID
	case KeySenderID:
		v = f.SenderID
	case KeyServerURI:
		v = f.Server
	}
	return v, v != ""
}
