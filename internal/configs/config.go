// Package configs for work with configurations
package configs

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Generator modes of the client
const (
	ModeHTTP  = "http"
	ModeDemo  = "demo"
	ModeLocal = "local"
)

// Conf for config yaml
type Conf struct {
	Client       Client  `yaml:"client"`
	Service      Service `yaml:"service"`
	Cache        Cache   `yaml:"cache"`
	Speech       Speech  `yaml:"speech"`
	CloudStorage struct {
		Archive     bool   `yaml:"archive"`
		EndPointURL string `yaml:"endpoint_url"`
		Bucket      string `yaml:"bucket"`
		Region      string `yaml:"region"`
		Secrets     struct {
			Key    string `yaml:"aws_key"`
			Secret string `yaml:"aws_secret"`
		} `yaml:"secrets"`
	} `yaml:"cloud_storage"`
}

// Client defines the dashboard client section
type Client struct {
	Mode         string        `yaml:"mode"`
	Endpoint     string        `yaml:"endpoint"`
	Timeout      time.Duration `yaml:"timeout"`
	Token        string        `yaml:"token"`
	DemoAudioURL string        `yaml:"demo_audio_url"`
	User         string        `yaml:"user"`
}

// Service defines the generation service section
type Service struct {
	Listen          string `yaml:"listen"`
	MaxUploadSize   int64  `yaml:"max_upload_size"`
	SummaryMaxChars int    `yaml:"summary_max_chars"`
	RateLimit       int    `yaml:"rate_limit"`
	AllowedOrigin   string `yaml:"allowed_origin"`
}

// Cache defines the summary cache section
type Cache struct {
	DB string `yaml:"db"`
}

// Speech defines narration of summaries with Amazon Polly.
// Tracks are stored in cloud_storage bucket.
type Speech struct {
	Enabled  bool   `yaml:"enabled"`
	Region   string `yaml:"region"`
	Voice    string `yaml:"voice"`
	Engine   string `yaml:"engine"`
	Language string `yaml:"language"`
}

// Load config from file
func Load(fileName string) (res *Conf, err error) {
	res = &Conf{}
	data, err := os.ReadFile(fileName) // nolint
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, res); err != nil {
		return nil, err
	}
	res.SetDefaults()
	return res, nil
}

// SetDefaults fills empty values, used for a missing or partial config file
func (c *Conf) SetDefaults() {
	if c.Client.Mode == "" {
		c.Client.Mode = ModeHTTP
	}
	if c.Client.Endpoint == "" {
		c.Client.Endpoint = "http://127.0.0.1:5000/api/generate-podcast"
	}
	if c.Client.Timeout == 0 {
		c.Client.Timeout = 2 * time.Minute
	}
	if c.Service.Listen == "" {
		c.Service.Listen = "127.0.0.1:5000"
	}
	if c.Service.MaxUploadSize == 0 {
		c.Service.MaxUploadSize = 32 << 20
	}
	if c.Service.SummaryMaxChars == 0 {
		c.Service.SummaryMaxChars = 2000
	}
	if c.Service.RateLimit == 0 {
		c.Service.RateLimit = 30
	}
	if c.Service.AllowedOrigin == "" {
		c.Service.AllowedOrigin = "*"
	}
	if c.Speech.Region == "" {
		c.Speech.Region = "us-east-1"
	}
	if c.Speech.Voice == "" {
		c.Speech.Voice = "Joanna"
	}
	if c.Speech.Engine == "" {
		c.Speech.Engine = "neural"
	}
}
