package exporter

import (
	"github.com/google/uuid"

	"github.com/Faultbox/mhfc-export/pkg/report"
	"github.com/Faultbox/mhfc-export/pkg/scene"
)

// KindScene is the result kind of a scene-level failure.
const KindScene = "scene"

// SceneResult collects the results of every export of a scene.
type SceneResult struct {
	Scene string
	// UUID is shared by the model and the skeleton.
	UUID          uuid.UUID
	GeneratedUUID bool
	Results       []*report.Result
}

// OK reports whether every export succeeded.
func (sr *SceneResult) OK() bool {
	for _, res := range sr.Results {
		if !res.OK() {
			return false
		}
	}
	return true
}

// Failed returns the results that did not succeed.
func (sr *SceneResult) Failed() []*report.Result {
	var out []*report.Result
	for _, res := range sr.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// ExportScene exports the scene's model, its skeleton and every action
// assigned to the scene. Each export gets its own report and a failed export
// does not stop the others.
func (e *Exporter) ExportScene(s *scene.Scene) *SceneResult {
	sr := &SceneResult{Scene: s.Name}

	id, err := SceneUUID(s)
	if err != nil {
		r := report.New()
		sr.Results = append(sr.Results, r.Finish(KindScene, "", err))
		return sr
	}
	sr.UUID = id
	sr.GeneratedUUID = s.UUID == ""

	if s.Model != "" {
		sr.Results = append(sr.Results, e.ExportModel(s, s.Model, id))
	}
	if s.Skeleton != "" {
		sr.Results = append(sr.Results, e.ExportSkeleton(s, s.Skeleton, id))
	}
	for _, a := range s.ActionsFor(s.Name) {
		sr.Results = append(sr.Results, e.ExportAction(s, a.Name, s.Skeleton))
	}
	return sr
}
