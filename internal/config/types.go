package config

// DatasetName identifies one of the built-in treemap datasets.
type DatasetName string

const (
	DatasetKickstarter DatasetName = "kickstarter"
	DatasetMovies      DatasetName = "movies"
	DatasetVideoGames  DatasetName = "videogames"
)

// Config is the top-level fundmap configuration, corresponding to .fundmap.yml.
type Config struct {
	Dataset     DatasetName  `yaml:"dataset" koanf:"dataset"`
	DataURL     string       `yaml:"data_url" koanf:"data_url"`
	DataFile    string       `yaml:"data_file" koanf:"data_file"`
	Output      string       `yaml:"output" koanf:"output"`
	Title       string       `yaml:"title" koanf:"title"`
	Description string       `yaml:"description" koanf:"description"`
	Canvas      CanvasConfig `yaml:"canvas" koanf:"canvas"`
	Legend      LegendConfig `yaml:"legend" koanf:"legend"`
	Include     []string     `yaml:"include" koanf:"include"`
	Exclude     []string     `yaml:"exclude" koanf:"exclude"`
	Server      ServerConfig `yaml:"server" koanf:"server"`
}

// CanvasConfig sizes the treemap drawing surface.
type CanvasConfig struct {
	Width   float64 `yaml:"width" koanf:"width"`
	Height  float64 `yaml:"height" koanf:"height"`
	Padding float64 `yaml:"padding" koanf:"padding"`
}

// LegendConfig sizes the legend drawing surface.
type LegendConfig struct {
	Width   float64 `yaml:"width" koanf:"width"`
	Padding float64 `yaml:"padding" koanf:"padding"`
	Spacing float64 `yaml:"spacing" koanf:"spacing"`
}

// ServerConfig holds settings for `fundmap serve`.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}
