package charts

import (
	"fmt"
	"strings"

	"github.com/localnerve/fleetboard/internal/registry"
	"github.com/localnerve/fleetboard/internal/timeseries"
)

// Series names the dashboard reads from assets.
const (
	SeriesTemperature = "temperature"
	SeriesOutput      = "output"
)

// CategoryKind selects what a category count measures.
type CategoryKind string

const (
	// SystemsPerEnvironment counts systems whose environment_id is the category.
	SystemsPerEnvironment CategoryKind = "environments"
	// AssetsPerSystem counts the recursive asset set of the category system.
	AssetsPerSystem CategoryKind = "systems"
)

// ParseCategoryKind accepts the kind names used by the API.
func ParseCategoryKind(s string) (CategoryKind, error) {
	switch k := CategoryKind(strings.ToLower(strings.TrimSpace(s))); k {
	case SystemsPerEnvironment, AssetsPerSystem:
		return k, nil
	case "environment", "systems-per-environment":
		return SystemsPerEnvironment, nil
	case "system", "assets-per-system":
		return AssetsPerSystem, nil
	default:
		return "", fmt.Errorf("unknown category kind %q", s)
	}
}

// CategoryCount is one slice of a pie chart.
type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// LineSeries carries the raw samples of one asset series.
type LineSeries struct {
	Name    string            `json:"name"`
	AssetID string            `json:"assetId"`
	Type    string            `json:"type"`
	Points  []registry.Sample `json:"points"`
}

// BarSeries carries day buckets of one asset series.
type BarSeries struct {
	Name    string              `json:"name"`
	AssetID string              `json:"assetId"`
	Type    string              `json:"type"`
	Stack   string              `json:"stack,omitempty"`
	Points  []timeseries.Bucket `json:"points"`
}

// ChartConfig is a render-ready chart. Exactly one of Categories, Lines or
// Bars is populated depending on ChartType.
type ChartConfig struct {
	ID         string          `json:"id"`
	ChartType  string          `json:"chartType"`
	Title      string          `json:"title"`
	XAxis      []string        `json:"xAxis,omitempty"`
	Unit       string          `json:"unit,omitempty"`
	Legend     []string        `json:"legend,omitempty"`
	Categories []CategoryCount `json:"categories,omitempty"`
	Lines      []LineSeries    `json:"lines,omitempty"`
	Bars       []BarSeries     `json:"bars,omitempty"`
	Colors     []string        `json:"colors,omitempty"`
	ShowLegend bool            `json:"showLegend"`
	Error      string          `json:"error,omitempty"`
}

// DashboardLayout lists which entities feed each dashboard panel.
type DashboardLayout struct {
	AssetPieSystems    []string `json:"assetPieSystems"`
	TemperatureSystems []string `json:"temperatureSystems"`
	MachineSystem      string   `json:"machineSystem"`
}

// Dashboard is the full set of panels for one snapshot.
type Dashboard struct {
	SnapshotID           string        `json:"snapshotId"`
	Generation           uint64        `json:"generation"`
	SystemsByEnvironment ChartConfig   `json:"systemsByEnvironment"`
	AssetsBySystem       ChartConfig   `json:"assetsBySystem"`
	Temperature          []ChartConfig `json:"temperature"`
	MachineOutputs       ChartConfig   `json:"machineOutputs"`
	Errors               []string      `json:"errors,omitempty"`
}

var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
