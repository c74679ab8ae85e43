package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kasuboski/episodez/pkg/catalog"
	"github.com/kasuboski/episodez/pkg/download"
	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/kasuboski/episodez/pkg/rules"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type Config struct {
	Matching  Matching      `json:"matching" yaml:"matching" mapstructure:"matching"`
	Library   Library       `json:"library" yaml:"library" mapstructure:"library"`
	Catalog   Catalog       `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Downloads Downloads     `json:"downloads" yaml:"downloads" mapstructure:"downloads"`
	Server    Server        `json:"server" yaml:"server" mapstructure:"server"`
	Jobs      Jobs          `json:"jobs" yaml:"jobs" mapstructure:"jobs"`
	Logging   logger.Config `json:"logging" yaml:"logging" mapstructure:"logging"`
}

// Matching controls how file names are identified
type Matching struct {
	Rules      rules.Set `json:"rules" yaml:"rules" mapstructure:"rules" validate:"dive"`
	DateCheck  bool      `json:"dateCheck" yaml:"dateCheck" mapstructure:"dateCheck"`
	Extensions []string  `json:"extensions" yaml:"extensions" mapstructure:"extensions" validate:"dive,startswith=."`
}

type Library struct {
	Shows []catalog.Show `json:"shows" yaml:"shows" mapstructure:"shows" validate:"dive"`
}

// Catalog configuration is assumed to be for sqlite database only currently
type Catalog struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath" validate:"required"`
}

type Downloads struct {
	Transmission download.ClientConfig `json:"transmission" yaml:"transmission" mapstructure:"transmission"`
	QBittorrent  download.ClientConfig `json:"qbittorrent" yaml:"qbittorrent" mapstructure:"qbittorrent"`
	MaxRetries   int                   `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries" validate:"gte=0"`
	BaseBackoff  time.Duration         `json:"backoff" yaml:"backoff" mapstructure:"backoff" validate:"gte=0"`
}

// Clients returns the enabled download clients keyed by implementation
func (d Downloads) Clients() map[string]download.ClientConfig {
	clients := make(map[string]download.ClientConfig)
	if d.Transmission.Enabled {
		clients[download.Transmission] = d.Transmission
	}
	if d.QBittorrent.Enabled {
		clients[download.QBittorrent] = d.QBittorrent
	}

	return clients
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
}

// Jobs are cron expressions for scheduled work, empty disables the job
type Jobs struct {
	Downloads string `json:"downloads" yaml:"downloads" mapstructure:"downloads"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}

// Validate checks field constraints. Rules whose patterns don't compile are not an error, they are skipped when matching.
func (c Config) Validate() error {
	var errs []error

	if err := validator.New().Struct(c); err != nil {
		errs = append(errs, err)
	}

	if c.Jobs.Downloads != "" {
		if _, err := cron.ParseStandard(c.Jobs.Downloads); err != nil {
			errs = append(errs, fmt.Errorf("invalid jobs.downloads schedule %q: %w", c.Jobs.Downloads, err))
		}
	}

	ids := make(map[int64]bool)
	for _, s := range c.Library.Shows {
		if ids[s.ID] {
			errs = append(errs, fmt.Errorf("duplicate show id %d", s.ID))
		}
		ids[s.ID] = true
	}

	return errors.Join(errs...)
}

// Show finds a configured show by id
func (c Config) Show(id int64) (catalog.Show, bool) {
	for _, s := range c.Library.Shows {
		if s.ID == id {
			return s, true
		}
	}

	return catalog.Show{}, false
}
