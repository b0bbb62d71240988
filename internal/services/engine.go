package services

import (
	"fmt"
	"time"

	"github.com/localnerve/fleetboard/internal/charts"
	"github.com/localnerve/fleetboard/internal/config"
	"github.com/localnerve/fleetboard/internal/hierarchy"
	"github.com/localnerve/fleetboard/internal/logger"
	"github.com/localnerve/fleetboard/internal/registry"
	"github.com/localnerve/fleetboard/internal/timeseries"
)

// Settings shape how every snapshot engine is built
type Settings struct {
	Location        *time.Location
	HourLayout      string
	DayLayout       string
	OutputReduction timeseries.Reduction
	// Timeframe overrides the snapshot's own when set
	Timeframe     []time.Time
	Layout        charts.DashboardLayout
	ResolverCache bool
}

// SettingsFromConfig validates and converts configuration
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	r, err := timeseries.ParseReduction(cfg.OutputReduction)
	if err != nil {
		return Settings{}, fmt.Errorf("OUTPUT_REDUCTION: %w", err)
	}
	s := Settings{
		Location:        cfg.Location,
		HourLayout:      cfg.HourLabelLayout,
		DayLayout:       cfg.DayLabelLayout,
		OutputReduction: r,
		ResolverCache:   cfg.ResolverCache,
		Layout: charts.DashboardLayout{
			AssetPieSystems:    cfg.DashboardAssetPieSystems,
			TemperatureSystems: cfg.DashboardTemperatureSystems,
			MachineSystem:      cfg.DashboardMachineSystem,
		},
	}
	if cfg.HasTimeframe() {
		if s.Timeframe, err = timeseries.Span(cfg.TimeframeStart, cfg.TimeframeEnd, cfg.TimeframeStep); err != nil {
			return Settings{}, err
		}
	}
	return s, nil
}

// Engine bundles the read-only components of one snapshot
type Engine struct {
	Registry  *registry.Registry
	Resolver  *hierarchy.Resolver
	Assembler *charts.Assembler
	Layout    charts.DashboardLayout
}

// buildEngine applies the timeframe policy then wires the components.
// Precedence: configured span, the source's own timeframe, observed samples.
func buildEngine(in registry.Input, settings Settings, cache *hierarchy.Cache, log logger.Logger, opts ...registry.Option) (*Engine, error) {
	switch {
	case len(settings.Timeframe) > 0:
		in.Timeframe = settings.Timeframe
	case len(in.Timeframe) == 0:
		in.Timeframe = timeseries.ObservedTimeframe(in.Assets)
	}

	reg, err := registry.New(in, opts...)
	if err != nil {
		return nil, err
	}

	resolverOpts := []hierarchy.Option{hierarchy.WithLogger(log)}
	if cache != nil {
		resolverOpts = append(resolverOpts, hierarchy.WithCache(cache))
	}
	resolver := hierarchy.NewResolver(reg, resolverOpts...)

	formatter := timeseries.NewLayoutFormatter(settings.Location, settings.HourLayout, settings.DayLayout)
	bucketer := timeseries.NewBucketer(settings.Location, formatter)

	reduction := settings.OutputReduction
	if reduction == "" {
		reduction = timeseries.Count
	}

	return &Engine{
		Registry:  reg,
		Resolver:  resolver,
		Assembler: charts.NewAssembler(resolver, bucketer, charts.WithOutputReduction(reduction)),
		Layout:    settings.Layout,
	}, nil
}

// Dashboard assembles the configured dashboard
func (e *Engine) Dashboard() *charts.Dashboard {
	return e.Assembler.Dashboard(e.Layout)
}
