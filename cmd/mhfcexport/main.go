// mhfcexport encodes scene descriptions into MHFC model, skeleton and
// animation files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/mhfc-export/internal/config"
	"github.com/Faultbox/mhfc-export/internal/exporter"
	"github.com/Faultbox/mhfc-export/internal/logger"
	"github.com/Faultbox/mhfc-export/pkg/formats"
	"github.com/Faultbox/mhfc-export/pkg/report"
	"github.com/Faultbox/mhfc-export/pkg/scene"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var ok bool
	switch command {
	case "model", "mdl":
		ok = cmdModel(args)
	case "skeleton", "skl":
		ok = cmdSkeleton(args)
	case "action", "anm":
		ok = cmdAction(args)
	case "scene":
		ok = cmdScene(args)
	case "config":
		ok = cmdConfig(args, os.Stdout)
	case "version":
		cmdVersion()
		ok = true
	case "help", "-h", "--help":
		printUsage()
		ok = true
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
	logger.Sync()
	if !ok {
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mhfcexport - MHFC model, skeleton and animation exporter

Usage:
  mhfcexport <command> [options] <scene.yaml|scene.toml> [object]

Commands:
  model <scene> [mesh]            Export a mesh (default: the scene model)
  skeleton <scene> [armature]     Export an armature (default: the scene skeleton)
  action <scene> <action>         Export an action (-armature selects the bones)
  scene <scene>                   Export model, skeleton and scene actions (-watch to repeat on change)
  config [-save] [-o file]        Print the effective config, optionally saving it
  version                         Show tool and format versions

Options (all export commands):
  -config <file>    Config file (default: ./mhfcexport.yaml)
  -dir <dir>        Resource folder to export to
  -modid <id>       Mod ID used in asset paths
  -version <V1|V2>  Format version
  -uv-layer <name>  UV layer to export
  -debug            Enable debug logging
  -log-file <file>  Also log to a rotated file

Examples:
  mhfcexport scene -dir src/main/resources dragon.yaml
  mhfcexport model -version V1 dragon.yaml Body
  mhfcexport action -armature Rig dragon.yaml Walk
  mhfcexport config -modid dragons -dir src/main/resources -save`)
}

// session is the state shared by the export commands.
type session struct {
	fs    *flag.FlagSet
	cfg   *config.Config
	scene *scene.Scene
	exp   *exporter.Exporter
}

// setup parses the command line, loads config and scene and starts logging.
// register adds command specific flags before parsing.
func setup(name string, args []string, register func(fs *flag.FlagSet)) (*session, bool) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	if register != nil {
		register(fs)
	}
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: mhfcexport %s [options] <scene file> ...\n", name)
		return nil, false
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, false
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, false
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	s, err := scene.Load(fs.Arg(0))
	if err != nil {
		logger.Error("failed to load scene", zap.String("path", fs.Arg(0)), zap.Error(err))
		return nil, false
	}
	return &session{fs: fs, cfg: cfg, scene: s, exp: exporter.New(cfg.Export)}, true
}

// objectArg returns the positional object name, or def.
func (s *session) objectArg(def, what string) (string, bool) {
	name := s.fs.Arg(1)
	if name == "" {
		name = def
	}
	if name == "" {
		logger.Error("no " + what + " given and the scene does not name one")
		return "", false
	}
	return name, true
}

// sceneUUID returns the scene UUID, or uuid.Nil to let the encoder generate one.
func (s *session) sceneUUID() (uuid.UUID, bool) {
	if s.scene.UUID == "" {
		return uuid.Nil, true
	}
	id, err := exporter.SceneUUID(s.scene)
	if err != nil {
		logger.Error("invalid scene uuid", zap.Error(err))
		return uuid.Nil, false
	}
	return id, true
}

func cmdModel(args []string) bool {
	s, ok := setup("model", args, nil)
	if !ok {
		return false
	}
	name, ok := s.objectArg(s.scene.Model, "mesh")
	if !ok {
		return false
	}
	id, ok := s.sceneUUID()
	if !ok {
		return false
	}
	return finish(s.exp.ExportModel(s.scene, name, id))
}

func cmdSkeleton(args []string) bool {
	s, ok := setup("skeleton", args, nil)
	if !ok {
		return false
	}
	name, ok := s.objectArg(s.scene.Skeleton, "armature")
	if !ok {
		return false
	}
	id, ok := s.sceneUUID()
	if !ok {
		return false
	}
	return finish(s.exp.ExportSkeleton(s.scene, name, id))
}

func cmdAction(args []string) bool {
	var armature string
	s, ok := setup("action", args, func(fs *flag.FlagSet) {
		fs.StringVar(&armature, "armature", "", "Armature the action animates (default: the scene skeleton)")
	})
	if !ok {
		return false
	}
	name, ok := s.objectArg("", "action")
	if !ok {
		return false
	}
	return finish(s.exp.ExportAction(s.scene, name, armature))
}

func cmdScene(args []string) bool {
	var watch bool
	s, ok := setup("scene", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&watch, "watch", false, "Export again whenever the scene file changes")
	})
	if !ok {
		return false
	}

	ok = exportScene(s.exp, s.scene)
	if !watch {
		return ok
	}

	path := s.fs.Arg(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logger.Info("watching scene file, press Ctrl+C to stop", zap.String("path", path))
	err := exporter.Watch(ctx, path, func() {
		sc, err := scene.Load(path)
		if err != nil {
			logger.Error("failed to reload scene", zap.Error(err))
			return
		}
		exportScene(s.exp, sc)
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("watch failed", zap.Error(err))
		return false
	}
	return true
}

func exportScene(exp *exporter.Exporter, s *scene.Scene) bool {
	sr := exp.ExportScene(s)
	if sr.GeneratedUUID {
		logger.Info("generated scene uuid", zap.String("uuid", sr.UUID.String()))
	}
	ok := true
	for _, res := range sr.Results {
		ok = finish(res) && ok
	}
	if ok {
		logger.Info("scene exported", zap.String("scene", s.Name), zap.Int("files", len(sr.Results)))
	}
	return ok
}

// finish logs a result and reports whether it succeeded.
func finish(res *report.Result) bool {
	logger.LogResult(res)
	return res.OK()
}

// cmdConfig prints the config that defaults, file and flags produce. With
// -save it is written to the user config directory, with -o to that file.
func cmdConfig(args []string, stdout io.Writer) bool {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	save := fs.Bool("save", false, "Save to "+config.UserPath())
	out := fs.String("o", "", "Save to this file instead")
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}
	data, err := cfg.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}
	stdout.Write(data)

	if !*save && *out == "" {
		return true
	}
	path := *out
	if path == "" {
		path = config.UserPath()
		err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: saving config: %v\n", err)
		return false
	}
	fmt.Fprintf(stdout, "Saved config to %s\n", path)
	return true
}

func cmdVersion() {
	fmt.Printf("mhfcexport %s\n", version)
	fmt.Printf("  model:     %s (default %s)\n", joinVersions(formats.ModelVersions), formats.DefaultModelVersion)
	fmt.Printf("  skeleton:  %s (default %s)\n", joinVersions(formats.SkeletonVersions), formats.DefaultSkeletonVersion)
	fmt.Printf("  animation: %s (default %s)\n", joinVersions(formats.ActionVersions), formats.DefaultActionVersion)
}

func joinVersions(vs []formats.Version) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
