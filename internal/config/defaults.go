package config

// DatasetPreset describes where a built-in dataset lives and how its page is titled.
type DatasetPreset struct {
	URL         string
	Title       string
	Description string
}

const dataBaseURL = "https://cdn.freecodecamp.org/testable-projects-fcc/data/tree_map/"

// datasetPresets maps each built-in dataset to its source and captions.
var datasetPresets = map[DatasetName]DatasetPreset{
	DatasetKickstarter: {
		URL:         dataBaseURL + "kickstarter-funding-data.json",
		Title:       "Kickstarter Pledges",
		Description: "Top 100 Most Pledged Kickstarter Campaigns Grouped By Category",
	},
	DatasetMovies: {
		URL:         dataBaseURL + "movie-data.json",
		Title:       "Movie Sales",
		Description: "Top 100 Highest Grossing Movies Grouped By Genre",
	},
	DatasetVideoGames: {
		URL:         dataBaseURL + "video-game-sales-data.json",
		Title:       "Video Game Sales",
		Description: "Top 100 Most Sold Video Games Grouped by Platform",
	},
}

// DatasetNames lists the built-in datasets in a stable order.
var DatasetNames = []DatasetName{DatasetKickstarter, DatasetMovies, DatasetVideoGames}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetKickstarter,
		Output:  "treemap.html",
		Canvas: CanvasConfig{
			Width:   1200,
			Height:  700,
			Padding: 2,
		},
		Legend: LegendConfig{
			Width:   300,
			Padding: 16,
			Spacing: 16,
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// GetPreset returns the preset for the given dataset and whether it exists.
func GetPreset(name DatasetName) (DatasetPreset, bool) {
	p, ok := datasetPresets[name]
	return p, ok
}
