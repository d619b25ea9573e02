// Package config handles game configuration loading and management.
package config

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Scene    SceneConfig    `yaml:"scene"`
	Game     GameConfig     `yaml:"game"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// TerrainConfig holds the landscape generation parameters.
type TerrainConfig struct {
	NrVert int     `yaml:"nr_vert"` // vertices per edge
	Side   float32 `yaml:"side"`    // world-space edge length
	Height float32 `yaml:"height"`  // base elevation
	Seed   int64   `yaml:"seed"`
}

// SceneConfig holds scene composition settings.
type SceneConfig struct {
	File      string `yaml:"file"` // scene description to load
	Autopilot bool   `yaml:"autopilot"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	ShowFPS bool `yaml:"show_fps"`
}

// DataConfig holds asset file paths.
type DataConfig struct {
	AssetDir string `yaml:"asset_dir"` // meshes, textures, scene files
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Terrain: TerrainConfig{
			NrVert: 128,
			Side:   200,
			Height: 0,
			Seed:   42,
		},
		Scene: SceneConfig{
			File:      "scene.yaml",
			Autopilot: false,
		},
		Game: GameConfig{
			ShowFPS: false,
		},
		Data: DataConfig{
			AssetDir: "assets",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
