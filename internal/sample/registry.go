// Package sample holds the embedded sample plant hierarchies: the default
// one the asset tree plants into an empty backend, and the larger demo plant
// written by cmd/seed.
package sample

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFiles embed.FS

// Hierarchy is a tree of sites described in YAML
type Hierarchy struct {
	Locations []Site `yaml:"locations"`
}

// Site is a location (top level) or an area (nested under Areas)
type Site struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Address     string   `yaml:"address"`
	Manager     string   `yaml:"manager"`
	Lat         *float64 `yaml:"lat"`
	Lng         *float64 `yaml:"lng"`
	Areas       []Site   `yaml:"areas"`
	Devices     []Device `yaml:"devices"`
}

// Device is a sample device with its data points
type Device struct {
	Name       string      `yaml:"name"`
	DeviceType string      `yaml:"device_type"`
	Status     string      `yaml:"status"`
	Vendor     string      `yaml:"vendor"`
	Model      string      `yaml:"model"`
	Address    string      `yaml:"address"`
	AlertCount int         `yaml:"alert_count"`
	DataPoints []DataPoint `yaml:"data_points"`
}

// DataPoint is a sample data point
type DataPoint struct {
	Name     string `yaml:"name"`
	DataType string `yaml:"data_type"`
	Unit     string `yaml:"unit"`
	Address  string `yaml:"address"`
}

// Default returns the one-location hierarchy planted into an empty backend
func Default() (*Hierarchy, error) {
	return load("default")
}

// Demo returns the demo plant used by cmd/seed
func Demo() (*Hierarchy, error) {
	return load("demo")
}

func load(name string) (*Hierarchy, error) {
	filename := fmt.Sprintf("data/%s.yaml", name)
	data, err := dataFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var h Hierarchy
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}
	if len(h.Locations) == 0 {
		return nil, fmt.Errorf("%s defines no locations", filename)
	}

	return &h, nil
}

// AreaCount returns the number of areas below the hierarchy's locations
func (h *Hierarchy) AreaCount() int {
	count := 0
	for _, loc := range h.Locations {
		count += len(loc.Areas)
	}
	return count
}
