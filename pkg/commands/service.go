package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/media"
	"tableflip.dev/cardboard/pkg/printers"
	"tableflip.dev/cardboard/pkg/store"
)

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if root.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

var stderrNotifier = app.NotifierFunc(func(level app.Level, msg string) {
	c := color.New(color.Faint)
	switch level {
	case app.Warning:
		c = color.New(color.FgYellow)
	case app.Error:
		c = color.New(color.FgRed, color.Bold)
	}
	_, _ = c.Fprintf(os.Stderr, "%s: %s\n", level, msg)
})

// open loads the configured dashboard and applies the override file, if
// one is configured and reachable.
func open(ctx context.Context) (*app.Service, store.Config, error) {
	log := newLogger()
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Open(cfg, store.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	s := &app.Service{
		Persistence: p,
		Log:         log,
		Notifier:    stderrNotifier,
		Version:     version,
	}
	if err := s.Open(ctx); err != nil {
		return nil, nil, err
	}
	if ok, err := s.ApplyOverride(ctx, cfg.Override()); err != nil {
		return nil, nil, fmt.Errorf("apply override: %w", err)
	} else if ok {
		log.Info("override applied", zap.String("source", cfg.Override()))
	}
	return s, cfg, nil
}

// printer picks the theme from --dark or the stored dark mode and loads
// the media manifest when one is configured.
func printer(s *app.Service, cfg store.Config, showKey bool) *printers.PrettyPrint {
	theme := card.Light
	if root.Dark || s.Current().DarkMode {
		theme = card.Dark
	}
	pp := printers.NewPretty(theme)
	pp.ShowKey = showKey
	if cfg != nil && cfg.Media() != "" {
		if m, err := media.Load(cfg.Media()); err == nil {
			pp.Media = &m
		} else {
			s.Log.Debug("media manifest unavailable", zap.Error(err))
		}
	}
	return pp
}
