// Package exporter resolves scene objects and output paths and runs the
// format encoders for them.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/mhfc-export/internal/config"
	"github.com/Faultbox/mhfc-export/internal/logger"
	"github.com/Faultbox/mhfc-export/pkg/formats"
	"github.com/Faultbox/mhfc-export/pkg/report"
	"github.com/Faultbox/mhfc-export/pkg/scene"
)

// Exporter exports the objects of a scene to the configured resource folder.
type Exporter struct {
	cfg config.ExportConfig
}

// New returns an Exporter using cfg.
func New(cfg config.ExportConfig) *Exporter {
	return &Exporter{cfg: cfg}
}

func (e *Exporter) vars(s *scene.Scene, key, name string) map[string]string {
	return map[string]string{
		VarModID:       e.cfg.ModID,
		VarProjectName: s.ProjectName,
		key:            name,
	}
}

// ModelPath returns the destination of the named mesh.
func (e *Exporter) ModelPath(s *scene.Scene, name string) string {
	return AssetPath(e.cfg.Directory, ExpandTemplate(e.cfg.ModelPath, e.vars(s, VarModelName, name)))
}

// SkeletonPath returns the destination of the named armature.
func (e *Exporter) SkeletonPath(s *scene.Scene, name string) string {
	return AssetPath(e.cfg.Directory, ExpandTemplate(e.cfg.SkeletonPath, e.vars(s, VarSkeletonName, name)))
}

// AnimationPath returns the destination of the named action.
func (e *Exporter) AnimationPath(s *scene.Scene, name string) string {
	return AssetPath(e.cfg.Directory, ExpandTemplate(e.cfg.AnimationPath, e.vars(s, VarAnimName, name)))
}

// ExportModel exports the named mesh with the armature bound to it.
func (e *Exporter) ExportModel(s *scene.Scene, name string, id uuid.UUID) *report.Result {
	r := report.New()
	path := e.ModelPath(s, name)
	mesh := s.Mesh(name)
	if mesh == nil {
		return r.Finish(formats.KindModel, path, r.Fatal("Object %s not found or not a mesh", name))
	}
	arm := s.ResolveArmature(mesh, r)
	if err := ensureDir(path); err != nil {
		return r.Finish(formats.KindModel, path, err)
	}
	logger.Debug("exporting model", zap.String("mesh", name), zap.String("path", path))
	return formats.ExportModel(formats.ModelOptions{
		Mesh:     mesh,
		Armature: arm,
		UVLayer:  e.cfg.UVLayer,
		Path:     path,
		UUID:     id,
		Version:  formats.ParseVersion(e.cfg.ModelVersion),
		Report:   r,
	})
}

// ExportSkeleton exports the named armature.
func (e *Exporter) ExportSkeleton(s *scene.Scene, name string, id uuid.UUID) *report.Result {
	r := report.New()
	path := e.SkeletonPath(s, name)
	arm := s.Armature(name)
	if arm == nil {
		return r.Finish(formats.KindSkeleton, path, r.Fatal("Object %s not found or not an armature", name))
	}
	if err := ensureDir(path); err != nil {
		return r.Finish(formats.KindSkeleton, path, err)
	}
	logger.Debug("exporting skeleton", zap.String("armature", name), zap.String("path", path))
	return formats.ExportSkeleton(formats.SkeletonOptions{
		Armature: arm,
		Path:     path,
		UUID:     id,
		Version:  formats.ParseVersion(e.cfg.SkeletonVersion),
		Report:   r,
	})
}

// ExportAction exports the named action bound to armName. An empty armName
// falls back to the scene skeleton, then to the only armature of the scene.
func (e *Exporter) ExportAction(s *scene.Scene, name, armName string) *report.Result {
	r := report.New()
	path := e.AnimationPath(s, name)
	action := s.Action(name)
	if action == nil {
		return r.Finish(formats.KindAnimation, path, r.Fatal("Invalid action: %s", name))
	}
	arm, err := pickArmature(s, armName)
	if err != nil {
		return r.Finish(formats.KindAnimation, path, r.Fatal("%v", err))
	}
	if err := ensureDir(path); err != nil {
		return r.Finish(formats.KindAnimation, path, err)
	}
	logger.Debug("exporting action", zap.String("action", name), zap.String("armature", arm.Name), zap.String("path", path))
	return formats.ExportAction(formats.ActionOptions{
		Action:   action,
		Armature: arm,
		Path:     path,
		Report:   r,
	})
}

func pickArmature(s *scene.Scene, name string) (*scene.Armature, error) {
	if name == "" {
		name = s.Skeleton
	}
	if name != "" {
		if arm := s.Armature(name); arm != nil {
			return arm, nil
		}
		return nil, fmt.Errorf("invalid skeleton: %s", name)
	}
	if len(s.Armatures) == 1 {
		return s.Armatures[0], nil
	}
	return nil, fmt.Errorf("no skeleton selected and the scene has %d armatures", len(s.Armatures))
}

// SceneUUID parses the scene's UUID, generating one when it is empty.
func SceneUUID(s *scene.Scene) (uuid.UUID, error) {
	if s.UUID == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(s.UUID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("scene %s: invalid uuid %q: %w", s.Name, s.UUID, err)
	}
	return id, nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	return nil
}
