package cmd

import (
	"context"
	"slices"

	"github.com/kasuboski/episodez/config"
	"github.com/kasuboski/episodez/pkg/download"
	mhttp "github.com/kasuboski/episodez/pkg/http"
	mio "github.com/kasuboski/episodez/pkg/io"
	"github.com/kasuboski/episodez/pkg/library"
	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/kasuboski/episodez/pkg/manager"
	"github.com/kasuboski/episodez/pkg/match"
	"github.com/kasuboski/episodez/pkg/storage/sqlite"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app holds everything a command needs once configuration is loaded
type app struct {
	cfg     config.Config
	store   *sqlite.SQLite
	manager *manager.Manager
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.Get().Debug("failed to close catalog", zap.Error(err))
	}
}

// loadConfig reads and validates configuration and configures logging from it
func loadConfig() config.Config {
	log := logger.Get()

	cfg, err := config.New(viper.GetViper())
	if err != nil {
		log.Fatal("failed to read configurations", zap.Error(err))
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	cfg.Matching.Rules = cfg.Matching.Rules.OrDefault()

	if _, err := logger.Configure(cfg.Logging); err != nil {
		logger.Get().Warn("invalid log level, defaulting to INFO", zap.Error(err))
	}

	return cfg
}

// setup opens the catalog and builds the manager. Download clients are only created when withClients is set.
func setup(ctx context.Context, withClients bool) *app {
	cfg := loadConfig()
	log := logger.Get()

	store, err := sqlite.New(ctx, cfg.Catalog.FilePath)
	if err != nil {
		log.Fatal("failed to create storage connection", zap.Error(err))
	}

	if err := store.RunMigrations(ctx); err != nil {
		log.Fatal("failed to migrate catalog", zap.Error(err))
	}

	fio := &mio.MediaFileSystem{}
	matcher := match.New(match.Config{
		Rules:     cfg.Matching.Rules,
		DateCheck: cfg.Matching.DateCheck,
	}, store)
	reconciler := library.NewReconciler(matcher, store, fio, cfg.Matching.Extensions)

	var clients []download.Client
	if withClients {
		clients = newClients(cfg, reconciler.Extensions())
	}

	for _, i := range cfg.Matching.Rules.Invalid() {
		log.Warn("rule pattern does not compile and will be skipped", zap.Int("rule", i), zap.String("pattern", cfg.Matching.Rules[i].Pattern))
	}

	return &app{
		cfg:     cfg,
		store:   store,
		manager: manager.New(matcher, reconciler, store, fio, clients, cfg.Library.Shows),
	}
}

func newClients(cfg config.Config, extensions []string) []download.Client {
	log := logger.Get()

	fallbackExt := ".mkv"
	if len(extensions) > 0 {
		fallbackExt = extensions[0]
	}

	httpClient := mhttp.NewRetryClient(
		mhttp.WithMaxRetries(cfg.Downloads.MaxRetries),
		mhttp.WithBaseBackoff(cfg.Downloads.BaseBackoff),
	)
	factory := download.NewClientFactory(httpClient, fallbackExt)

	configured := cfg.Downloads.Clients()
	names := make([]string, 0, len(configured))
	for name := range configured {
		names = append(names, name)
	}
	slices.Sort(names)

	clients := make([]download.Client, 0, len(names))
	for _, name := range names {
		c, err := factory.NewClient(name, configured[name])
		if err != nil {
			log.Fatal("failed to create download client", zap.String("client", name), zap.Error(err))
		}
		clients = append(clients, c)
	}

	return clients
}
