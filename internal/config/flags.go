package config

import "flag"

// Flags holds the command-line overrides shared by every sub-command.
type Flags struct {
	Config    string
	Debug     bool
	LogFile   string
	ModID     string
	Directory string
	Version   string
	UVLayer   string
}

// RegisterFlags defines the shared flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also log to this file (rotated)")
	fs.StringVar(&f.ModID, "modid", "", "Mod ID used in asset paths")
	fs.StringVar(&f.Directory, "dir", "", "Resource folder to export to")
	fs.StringVar(&f.Version, "version", "", "Format version (V1, V2); empty selects the default")
	fs.StringVar(&f.UVLayer, "uv-layer", "", "UV layer to export")
	return f
}

// ConfigPath returns the explicit config path if provided via --config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.Config
}

// apply applies flag overrides to the config. Version applies to both the
// model and the skeleton; each sub-command uses the one it exports.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.ModID != "" {
		cfg.Export.ModID = f.ModID
	}
	if f.Directory != "" {
		cfg.Export.Directory = f.Directory
	}
	if f.Version != "" {
		cfg.Export.ModelVersion = f.Version
		cfg.Export.SkeletonVersion = f.Version
	}
	if f.UVLayer != "" {
		cfg.Export.UVLayer = f.UVLayer
	}
}
