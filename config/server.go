package config

import (
	"fmt"
	"os"
	"time"

	"github.com/tsingjyujing/vireview/text"
	"gopkg.in/yaml.v3"
)

type Envelope struct {
	Server        Server            `yaml:"server"`
	Lexicon       text.LexiconPaths `yaml:"lexicon"`
	Pipeline      Pipeline          `yaml:"pipeline"`
	Tagger        Tagger            `yaml:"tagger"`
	Classifier    *ModelConfig      `yaml:"classifier"`
	Summarization *ModelConfig      `yaml:"summarization"`
}

type Server struct {
	Address  string   `yaml:"address"`
	Database string   `yaml:"database"`
	Tokens   []string `yaml:"tokens"`
}

type Pipeline struct {
	NegationMarkers  []string `yaml:"negation_markers"`
	Workers          int      `yaml:"workers"`
	TranslateEnglish bool     `yaml:"translate_english"`
}

const (
	TaggerGSE    = "gse"
	TaggerRemote = "remote"
)

// Tagger selects the word segmentation and POS tagging backend.
type Tagger struct {
	Type       string        `yaml:"type"`
	Dictionary string        `yaml:"dictionary"`
	Endpoint   string        `yaml:"endpoint"`
	Timeout    time.Duration `yaml:"timeout"`
}

// ModelConfig is a model type plus its free-form settings, decoded by the
// models package.
type ModelConfig struct {
	ID     string                 `yaml:"id"`
	Type   string                 `yaml:"type"`
	Config map[string]interface{} `yaml:"config"`
}

// Default returns the configuration used when no file is given.
func Default() *Envelope {
	return &Envelope{
		Server: Server{
			Address:  ":8080",
			Database: "db.sqlite",
		},
		Tagger: Tagger{
			Type:    TaggerGSE,
			Timeout: text.DefaultRemoteTimeout,
		},
	}
}

// LoadConfigFromFile reads a YAML configuration on top of Default.
func LoadConfigFromFile(path string) (*Envelope, error) {
	envelope := Default()
	if path == "" {
		return envelope, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, envelope); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := envelope.Validate(); err != nil {
		return nil, err
	}
	return envelope, nil
}

// Validate checks the settings that cannot be defaulted.
func (e *Envelope) Validate() error {
	switch e.Tagger.Type {
	case "", TaggerGSE:
	case TaggerRemote:
		if e.Tagger.Endpoint == "" {
			return fmt.Errorf("tagger: endpoint is required for type %q", TaggerRemote)
		}
	default:
		return fmt.Errorf("tagger: unknown type %q", e.Tagger.Type)
	}
	if e.Pipeline.Workers < 0 {
		return fmt.Errorf("pipeline: workers must not be negative, got %d", e.Pipeline.Workers)
	}
	return nil
}
