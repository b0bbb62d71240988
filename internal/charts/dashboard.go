package charts

import "fmt"

// Dashboard assembles every panel for the layout. A bad id only fails the
// panel that references it; the error is recorded on that panel and in
// Errors.
func (a *Assembler) Dashboard(layout DashboardLayout) *Dashboard {
	d := &Dashboard{
		SnapshotID: a.reg.ID(),
		Generation: a.reg.Generation(),
	}

	d.SystemsByEnvironment = a.piePanel("systems-by-environment", "Systems per environment", SystemsPerEnvironment, nil)
	d.AssetsBySystem = a.piePanel("assets-by-system", "Assets per system", AssetsPerSystem, layout.AssetPieSystems)

	hours := a.HourAxis()
	d.Temperature = make([]ChartConfig, 0, len(layout.TemperatureSystems))
	for _, systemID := range layout.TemperatureSystems {
		d.Temperature = append(d.Temperature, a.temperaturePanel(systemID, hours))
	}

	d.MachineOutputs = a.machinePanel(layout.MachineSystem)

	for _, panel := range d.panels() {
		if panel.Error != "" {
			d.Errors = append(d.Errors, fmt.Sprintf("%s: %s", panel.ID, panel.Error))
		}
	}
	return d
}

func (d *Dashboard) panels() []ChartConfig {
	out := []ChartConfig{d.SystemsByEnvironment, d.AssetsBySystem}
	out = append(out, d.Temperature...)
	return append(out, d.MachineOutputs)
}

func (a *Assembler) piePanel(id, title string, kind CategoryKind, ids []string) ChartConfig {
	cfg := ChartConfig{ID: id, ChartType: "pie", Title: title, ShowLegend: true}
	counts, err := a.CategoryCountSeries(kind, ids)
	if err != nil {
		cfg.Error = err.Error()
		return cfg
	}
	cfg.Categories = counts
	cfg.Colors = assignColors(len(counts))
	return cfg
}

func (a *Assembler) temperaturePanel(systemID string, hours []string) ChartConfig {
	cfg := ChartConfig{
		ID:         "temperature-" + systemID,
		ChartType:  "line",
		Title:      systemID,
		XAxis:      hours,
		Unit:       "°C",
		ShowLegend: true,
	}
	if sys, err := a.reg.System(systemID); err == nil && sys.Name != "" {
		cfg.Title = sys.Name
	}

	lines, err := a.TemperatureSeriesFor(systemID)
	if err != nil {
		cfg.Error = err.Error()
		return cfg
	}
	cfg.Lines = lines
	cfg.Legend = make([]string, len(lines))
	for i, l := range lines {
		cfg.Legend[i] = l.Name
	}
	cfg.Colors = assignColors(len(lines))
	return cfg
}

func (a *Assembler) machinePanel(systemID string) ChartConfig {
	cfg := ChartConfig{
		ID:         "machine-outputs",
		ChartType:  "bar",
		Title:      "Daily output per machine",
		XAxis:      a.DayAxisLabels(),
		ShowLegend: true,
	}
	if systemID == "" {
		cfg.Error = "no machine system configured"
		return cfg
	}
	bars, err := a.MachineOutputSeries(systemID)
	if err != nil {
		cfg.Error = err.Error()
		return cfg
	}
	cfg.Bars = bars
	cfg.Legend = make([]string, len(bars))
	for i, b := range bars {
		cfg.Legend[i] = b.Name
	}
	cfg.Colors = assignColors(len(bars))
	return cfg
}
