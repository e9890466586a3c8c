package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Export.ModID != "minecraft" {
		t.Errorf("expected mod id 'minecraft', got %s", cfg.Export.ModID)
	}
	if cfg.Export.ModelPath != DefaultModelPath {
		t.Errorf("expected model path %s, got %s", DefaultModelPath, cfg.Export.ModelPath)
	}
	if cfg.Export.SkeletonPath != DefaultSkeletonPath {
		t.Errorf("expected skeleton path %s, got %s", DefaultSkeletonPath, cfg.Export.SkeletonPath)
	}
	if cfg.Export.AnimationPath != DefaultAnimationPath {
		t.Errorf("expected animation path %s, got %s", DefaultAnimationPath, cfg.Export.AnimationPath)
	}
	if cfg.Export.ModelVersion != "" || cfg.Export.SkeletonVersion != "" {
		t.Error("expected empty versions by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := `
export:
  mod_id: dragons
  directory: /srv/resources
  model_version: V1
  model_path: ""
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.Export.ModID != "dragons" {
		t.Errorf("expected mod id dragons, got %s", cfg.Export.ModID)
	}
	if cfg.Export.Directory != "/srv/resources" {
		t.Errorf("expected directory /srv/resources, got %s", cfg.Export.Directory)
	}
	if cfg.Export.ModelVersion != "V1" {
		t.Errorf("expected model version V1, got %s", cfg.Export.ModelVersion)
	}
	if cfg.Export.ModelPath != DefaultModelPath {
		t.Errorf("cleared template should fall back to default, got %q", cfg.Export.ModelPath)
	}
	if cfg.Export.SkeletonPath != DefaultSkeletonPath {
		t.Errorf("unset template should keep default, got %q", cfg.Export.SkeletonPath)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("export: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := loadFromFile(Default(), path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir := ConfigDir()
	if dir == "" {
		t.Fatal("ConfigDir returned empty string")
	}
	if filepath.Base(dir) != "mhfc-export" {
		t.Errorf("expected mhfc-export directory, got %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "debug flag",
			args: []string{"-debug"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected debug level, got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "version applies to model and skeleton",
			args: []string{"-version", "V1"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Export.ModelVersion != "V1" || cfg.Export.SkeletonVersion != "V1" {
					t.Errorf("got model %q skeleton %q", cfg.Export.ModelVersion, cfg.Export.SkeletonVersion)
				}
			},
		},
		{
			name: "export location",
			args: []string{"-modid", "dragons", "-dir", "out", "-uv-layer", "Bake"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Export.ModID != "dragons" || cfg.Export.Directory != "out" || cfg.Export.UVLayer != "Bake" {
					t.Errorf("unexpected export config: %+v", cfg.Export)
				}
			},
		},
		{
			name: "no flags keep defaults",
			args: nil,
			check: func(t *testing.T, cfg *Config) {
				if *cfg != *Default() {
					t.Errorf("config changed without flags: %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			f := RegisterFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			cfg := Default()
			f.apply(cfg)
			tt.check(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "custom.yaml")
	content := `
export:
  mod_id: from_file
  directory: from_file
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", configPath, "-dir", "from_flag"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Export.Directory != "from_flag" {
		t.Errorf("expected directory from flag, got %s", cfg.Export.Directory)
	}
	if cfg.Export.ModID != "from_file" {
		t.Errorf("expected mod id from file, got %s", cfg.Export.ModID)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default()
	cfg.Export.ModID = "saved"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestUserPath(t *testing.T) {
	want := filepath.Join(ConfigDir(), FileName)
	if got := UserPath(); got != want {
		t.Errorf("UserPath() = %q, want %q", got, want)
	}
}
