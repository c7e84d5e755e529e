// Package config handles YAML settings file loading for grove build.
package config

import "fmt"

// Settings represents a grove.yaml settings file.
// All values are optional and act as defaults for grove build flags.
// CLI flags always override settings values.
type Settings struct {
	// CatalogURL is the catalog page to scrape.
	CatalogURL string `yaml:"catalog_url"`
	// Output is the artifact output directory.
	Output string `yaml:"output"`
	// SourceDestination is the directory source trees are checked out under.
	SourceDestination string `yaml:"source_destination"`
	// ConfigDestination is the registry document path.
	ConfigDestination string `yaml:"config_destination"`
	// Threads is the worker pool size.
	Threads int `yaml:"threads"`
	// Languages is the optional grammar name allow-list.
	Languages []string `yaml:"languages"`
	// Compiler is the native compiler binary.
	Compiler string `yaml:"compiler"`
	// FetchTool is the source-control fetch binary.
	FetchTool string `yaml:"fetch_tool"`
	// LogFile is the structured log destination.
	LogFile string `yaml:"log_file"`
}

// Validate rejects settings no run could use. Zero values are fine (flags
// or built-in defaults fill them in); negative thread counts are not.
func (s *Settings) Validate() error {
	if s.Threads < 0 {
		return fmt.Errorf("threads must not be negative, got %d", s.Threads)
	}
	return nil
}
