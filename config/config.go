// backend/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// SheetConfig holds everything needed to reach the published Va-y-Ven
// spreadsheet. PubHTMLURL is the "publish to web" page listing the worksheet
// tabs; CSVExportURL is the same document with output=csv, parameterized by gid.
type SheetConfig struct {
	PubHTMLURL        string `yaml:"pubhtml_url"`
	CSVExportURL      string `yaml:"csv_export_url"`
	SheetMenuSelector string `yaml:"sheet_menu_selector"`
}

// WorksheetsConfig pins the worksheet tab names the service expects to find on
// the published page.
type WorksheetsConfig struct {
	Inspections string `yaml:"inspections"`
	Vehicles    string `yaml:"vehicles"`
	Routes      string `yaml:"routes"`
	Parts       string `yaml:"parts"`
}

type LocalCSVConfig struct {
	Dir string `yaml:"dir"`
}

type FreshnessConfig struct {
	DisplayCacheTTLStr string `yaml:"display_cache_ttl"`
	SubmitDebounceStr  string `yaml:"submit_debounce_window"`

	DisplayCacheTTL      time.Duration // Parsed duration
	SubmitDebounceWindow time.Duration // Parsed duration
}

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Sheet      SheetConfig      `yaml:"sheet"`
	Worksheets WorksheetsConfig `yaml:"worksheets"`
	LocalCSV   LocalCSVConfig   `yaml:"local_csv"`
	Freshness  FreshnessConfig  `yaml:"freshness"`
}

var AppConfig Config

// LoadConfig reads configuration from the YAML file, then overlays database
// credentials from the environment. A .env file is loaded first if present so
// secrets can stay out of config.yaml.
func LoadConfig(configPath string) error {
	if configPath == "" {
		potentialPaths := []string{
			"config.yaml",
			"config/config.yaml",
			"./backend/config/config.yaml",
		}
		for _, p := range potentialPaths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
		if configPath == "" {
			return fmt.Errorf("config.yaml not found in standard locations")
		}
		fmt.Printf("Loading configuration from: %s\n", configPath)
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(file, &AppConfig)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// godotenv.Load is best-effort: a missing .env just means the variables
	// come from the real environment (or stay as the YAML set them).
	_ = godotenv.Load()
	if v := os.Getenv("INSPECCIONES_DB_USER"); v != "" {
		AppConfig.Database.User = v
	}
	if v := os.Getenv("INSPECCIONES_DB_PASSWORD"); v != "" {
		AppConfig.Database.Password = v
	}
	if v := os.Getenv("INSPECCIONES_DB_HOST"); v != "" {
		AppConfig.Database.Host = v
	}

	// Parse durations
	if AppConfig.Freshness.DisplayCacheTTLStr != "" {
		AppConfig.Freshness.DisplayCacheTTL, err = time.ParseDuration(AppConfig.Freshness.DisplayCacheTTLStr)
		if err != nil {
			return fmt.Errorf("failed to parse display_cache_ttl: %w", err)
		}
	} else {
		AppConfig.Freshness.DisplayCacheTTL = 5 * time.Minute
	}
	if AppConfig.Freshness.SubmitDebounceStr != "" {
		AppConfig.Freshness.SubmitDebounceWindow, err = time.ParseDuration(AppConfig.Freshness.SubmitDebounceStr)
		if err != nil {
			return fmt.Errorf("failed to parse submit_debounce_window: %w", err)
		}
	} else {
		AppConfig.Freshness.SubmitDebounceWindow = 30 * time.Second
	}

	// Create the local CSV directory if it doesn't exist so worksheet downloads
	// have somewhere to land.
	if AppConfig.LocalCSV.Dir == "" {
		AppConfig.LocalCSV.Dir = "./temp_data"
	}
	if err := os.MkdirAll(filepath.Clean(AppConfig.LocalCSV.Dir), 0755); err != nil {
		return fmt.Errorf("failed to create local CSV directory %s: %w", AppConfig.LocalCSV.Dir, err)
	}

	if AppConfig.Sheet.SheetMenuSelector == "" {
		AppConfig.Sheet.SheetMenuSelector = "ul#sheet-menu"
	}
	if AppConfig.Worksheets.Inspections == "" {
		AppConfig.Worksheets.Inspections = "inspecciones"
	}
	if AppConfig.Worksheets.Vehicles == "" {
		AppConfig.Worksheets.Vehicles = "vehiculos"
	}
	if AppConfig.Worksheets.Routes == "" {
		AppConfig.Worksheets.Routes = "rutas"
	}
	if AppConfig.Worksheets.Parts == "" {
		AppConfig.Worksheets.Parts = "partes"
	}

	return nil
}
