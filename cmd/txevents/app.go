package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"txevents/internal/common/fsutil"
	"txevents/internal/config"
	"txevents/internal/listeners"
	"txevents/internal/logging"
	"txevents/internal/props"
	"txevents/internal/publish"
)

// app wires the publisher and the properties assembler from a Config.
type app struct {
	cfg       config.Config
	log       zerolog.Logger
	publisher *publish.Publisher
	loader    *props.Loader
	assembler *props.Assembler
}

func newApp(cfg config.Config, logOut io.Writer) (*app, error) {
	logger := logging.New(logOut, cfg.LogLevel, cfg.LogPretty)
	// Providers build their listeners from the global logger.
	log.Logger = logger

	pub := publish.New(publish.WithLogger(logger))
	if cfg.DiscoverAll() || len(cfg.Listeners) > 0 {
		if err := pub.Discover(cfg.Listeners...); err != nil {
			logger.Warn().Err(err).Msg("event listener discovery incomplete")
		}
	} else {
		logger.Debug().Msg("event listener discovery disabled")
	}

	dirs, err := fsutil.ExpandAll(cfg.SearchPaths)
	if err != nil {
		return nil, err
	}
	resolver, err := props.DefaultResolver(dirs...)
	if err != nil {
		return nil, err
	}
	loader := props.NewLoader(resolver, logger)
	return &app{
		cfg:       cfg,
		log:       logger,
		publisher: pub,
		loader:    loader,
		assembler: props.NewAssembler(loader, cfg.DefaultsName, cfg.Overrides...),
	}, nil
}

// recent returns the memory listener when discovery registered it.
func (a *app) recent() *listeners.MemoryListener {
	for _, name := range a.publisher.Listeners() {
		if name == listeners.Recent.Name() {
			return listeners.Recent
		}
	}
	return nil
}
