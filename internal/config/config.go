// Package config handles exporter configuration loading and management.
package config

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig controls where and how files are exported.
type ExportConfig struct {
	ModID string `yaml:"mod_id"`
	// Directory is the resource folder asset paths are resolved against.
	Directory string `yaml:"directory"`

	// Path templates. Placeholders: {modid}, {projectname} and one of
	// {modelname}, {skeletonname}, {animname}.
	ModelPath     string `yaml:"model_path"`
	SkeletonPath  string `yaml:"skeleton_path"`
	AnimationPath string `yaml:"animation_path"`

	// Empty versions select the newest encoder.
	ModelVersion    string `yaml:"model_version"`
	SkeletonVersion string `yaml:"skeleton_version"`
	UVLayer         string `yaml:"uv_layer"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default path templates.
const (
	DefaultModelPath     = "{modid}:models/{modelname}/{modelname}.mcmd"
	DefaultSkeletonPath  = "{modid}:skeletons/{skeletonname}.mcskl"
	DefaultAnimationPath = "{modid}:animations/{animname}.mcanm"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			ModID:         "minecraft",
			Directory:     ".",
			ModelPath:     DefaultModelPath,
			SkeletonPath:  DefaultSkeletonPath,
			AnimationPath: DefaultAnimationPath,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// fillDefaults restores templates a config file cleared.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Export.ModID == "" {
		c.Export.ModID = def.Export.ModID
	}
	if c.Export.ModelPath == "" {
		c.Export.ModelPath = def.Export.ModelPath
	}
	if c.Export.SkeletonPath == "" {
		c.Export.SkeletonPath = def.Export.SkeletonPath
	}
	if c.Export.AnimationPath == "" {
		c.Export.AnimationPath = def.Export.AnimationPath
	}
}
