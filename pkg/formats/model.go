package formats

import (
	"github.com/Faultbox/mhfc-export/pkg/binio"
	"github.com/Faultbox/mhfc-export/pkg/report"
	"github.com/Faultbox/mhfc-export/pkg/scene"
)

// modelV1 embeds image names in its parts and carries the skeleton inline.
type modelV1 struct {
	geom    *geometry
	bones   []Bone
	parents []uint8
}

func newModelV1(opts *ModelOptions, uvLayer int, r *report.Reporter) (*modelV1, error) {
	geom, err := buildGeometry(opts.Mesh, opts.Armature, uvLayer, imageResolver{r: r}, r)
	if err != nil {
		return nil, err
	}
	bones, parents := collectBones(opts.Armature)
	m := &modelV1{geom: geom, bones: bones, parents: make([]uint8, len(parents))}
	for i, p := range parents {
		m.parents[i] = noParentV1
		if p >= 0 {
			m.parents[i] = uint8(p)
		}
	}
	checkCount(r, len(bones), maxU8Count, "too many bones")
	return m, nil
}

func (m *modelV1) dump(w *binio.Writer, r *report.Reporter) {
	w.WriteU32(1)
	w.WritePacked(uint8(len(m.geom.parts)), uint8(len(m.bones)))
	m.geom.dump(w)
	dumpBones(w, m.bones)
	w.WritePacked(m.parents)
	r.Info("Exported with (%d parts, %d bones)", len(m.geom.parts), len(m.bones))
}

// modelV2 references materials by index into a trailing name table.
type modelV2 struct {
	geom      *geometry
	materials *materialTable
}

func newModelV2(opts *ModelOptions, uvLayer int, r *report.Reporter) (*modelV2, error) {
	table := newMaterialTable(r)
	geom, err := buildGeometry(opts.Mesh, opts.Armature, uvLayer, table, r)
	if err != nil {
		return nil, err
	}
	return &modelV2{geom: geom, materials: table}, nil
}

func (m *modelV2) dump(w *binio.Writer, r *report.Reporter) {
	w.WriteU32(2)
	w.WritePacked(uint8(len(m.geom.parts)), uint8(m.materials.Len()))
	m.geom.dump(w)
	m.materials.dump(w)
	r.Info("Exported with %d parts", len(m.geom.parts))
}

// resolveUVLayer picks the exported UV layer of the mesh. A missing layer is
// reported and yields -1, which samples every UV as (0, 0).
func resolveUVLayer(m *scene.Mesh, name string, r *report.Reporter) int {
	idx := m.UVLayerIndex(name)
	if idx >= 0 {
		return idx
	}
	want := name
	for _, fallback := range []string{m.UVLayer, m.ActiveUVLayer} {
		if want == "" {
			want = fallback
		}
	}
	if want == "" {
		r.Error("no UV layer selected for mesh %s", m.Name)
	} else {
		r.Error("UV layer %s not found on mesh %s", want, m.Name)
	}
	return -1
}
