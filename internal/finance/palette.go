package finance

import (
	"log"
	"os"

	"github.com/goccy/go-yaml"
)

// fallbackColor is used for dimensions without a configured color, same
// convention as the portal charts.
const fallbackColor = "#AEB6BF"

type paletteFile struct {
	Colors map[string]string `yaml:"colors"`
}

var palette = map[string]string{}

// LoadPalette reads the chart color palette. Missing file is fine — charts
// fall back to the default color.
func LoadPalette(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("palette not loaded (%v), using fallback colors", err)
		return
	}

	var pf paletteFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		log.Printf("palette parse failed (%v), using fallback colors", err)
		return
	}
	palette = pf.Colors
}

// ColorFor returns the configured chart color for a grouping key.
func ColorFor(key string) string {
	if c, ok := palette[key]; ok && c != "" {
		return c
	}
	return fallbackColor
}
