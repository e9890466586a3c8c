package formats

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Faultbox/mhfc-export/pkg/binio"
	"github.com/Faultbox/mhfc-export/pkg/report"
	"github.com/Faultbox/mhfc-export/pkg/scene"
)

// Export kinds as reported in report.Result.Kind.
const (
	KindModel     = "model"
	KindSkeleton  = "skeleton"
	KindAnimation = "animation"
)

// body is a fully validated file body ready to be written.
type body interface {
	dump(w *binio.Writer, r *report.Reporter)
}

// ModelOptions selects the mesh exported by ExportModel.
type ModelOptions struct {
	Mesh *scene.Mesh
	// Armature provides bones and skin weights. Nil exports an unskinned mesh.
	Armature *scene.Armature
	// UVLayer overrides the mesh's selected UV layer.
	UVLayer string
	Path    string
	// UUID is written to the header; uuid.Nil generates one.
	UUID    uuid.UUID
	Version Version
	// Report receives the entries; nil starts a fresh reporter.
	Report *report.Reporter
}

// SkeletonOptions selects the armature exported by ExportSkeleton.
type SkeletonOptions struct {
	Armature *scene.Armature
	Path     string
	UUID     uuid.UUID
	Version  Version
	Report   *report.Reporter
}

// ActionOptions selects the action exported by ExportAction. Curves are bound
// to the bones of Armature.
type ActionOptions struct {
	Action   *scene.Action
	Armature *scene.Armature
	Path     string
	Version  Version
	Report   *report.Reporter
}

// ExportModel encodes a mesh into an MHFC model file.
func ExportModel(opts ModelOptions) *report.Result {
	r := reporterFor(opts.Report)
	return r.Finish(KindModel, opts.Path, exportModel(&opts, r))
}

func exportModel(opts *ModelOptions, r *report.Reporter) error {
	if opts.Mesh == nil {
		return r.Fatal("no mesh to export")
	}
	if err := opts.Mesh.Validate(); err != nil {
		return r.Abort(fmt.Errorf("mesh %s: %w", opts.Mesh.Name, err))
	}
	uvLayer := resolveUVLayer(opts.Mesh, opts.UVLayer, r)

	var model body
	var err error
	switch v := opts.Version.or(DefaultModelVersion); v {
	case V1:
		model, err = newModelV1(opts, uvLayer, r)
	case V2:
		model, err = newModelV2(opts, uvLayer, r)
	default:
		return notImplemented(r, v)
	}
	if err != nil {
		return err
	}

	id := resolveUUID(opts.UUID, r)
	return writeFile(opts.Path, func(w *binio.Writer) {
		writeHeader(w, MagicModel, id, opts.Mesh.Artist)
		model.dump(w, r)
	})
}

// ExportSkeleton encodes an armature into an MHFC skeleton file.
func ExportSkeleton(opts SkeletonOptions) *report.Result {
	r := reporterFor(opts.Report)
	return r.Finish(KindSkeleton, opts.Path, exportSkeleton(&opts, r))
}

func exportSkeleton(opts *SkeletonOptions, r *report.Reporter) error {
	if opts.Armature == nil {
		return r.Fatal("no armature to export")
	}

	var skeleton body
	switch v := opts.Version.or(DefaultSkeletonVersion); v {
	case V1:
		skeleton = newSkeletonV1(opts.Armature, r)
	case V2:
		skeleton = newSkeletonV2(opts.Armature, r)
	default:
		return notImplemented(r, v)
	}

	id := resolveUUID(opts.UUID, r)
	return writeFile(opts.Path, func(w *binio.Writer) {
		writeHeader(w, MagicSkeleton, id, opts.Armature.Artist)
		skeleton.dump(w, r)
	})
}

// ExportAction encodes the bone curves of an action into an MHFC animation file.
func ExportAction(opts ActionOptions) *report.Result {
	r := reporterFor(opts.Report)
	return r.Finish(KindAnimation, opts.Path, exportAction(&opts, r))
}

func exportAction(opts *ActionOptions, r *report.Reporter) error {
	if opts.Action == nil {
		return r.Fatal("no action to export")
	}
	if opts.Armature == nil {
		return r.Fatal("no armature to bind action %s to", opts.Action.Name)
	}
	if v := opts.Version.or(DefaultActionVersion); v != V1 {
		return notImplemented(r, v)
	}

	action, err := newActionV1(opts.Action, opts.Armature, r)
	if err != nil {
		return err
	}
	return writeFile(opts.Path, func(w *binio.Writer) {
		writeAnimationHeader(w, opts.Action.Artist)
		action.dump(w, r)
	})
}

func reporterFor(r *report.Reporter) *report.Reporter {
	if r == nil {
		return report.New()
	}
	return r
}

// resolveUUID returns id, or a fresh random UUID when id is nil.
func resolveUUID(id uuid.UUID, r *report.Reporter) uuid.UUID {
	if id != uuid.Nil {
		return id
	}
	id = uuid.New()
	r.Info("Generated UUID %s", id)
	return id
}

// writeFile creates path, runs fn and releases the file on every path.
func writeFile(path string, fn func(w *binio.Writer)) (err error) {
	w, err := binio.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("writing %s: %w", path, cerr)
		}
	}()
	fn(w)
	return w.Err()
}
