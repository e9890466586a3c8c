package scene

import (
	"fmt"

	"github.com/Faultbox/mhfc-export/pkg/math"
	"github.com/Faultbox/mhfc-export/pkg/report"
)

// Mesh is a triangulated mesh object. Vertex groups live on the object, so
// the mesh carries them together with its geometry.
type Mesh struct {
	Name   string `yaml:"name" toml:"name"`
	Artist string `yaml:"artist" toml:"artist"`

	// Armature is the explicitly configured armature name.
	Armature string `yaml:"armature" toml:"armature"`
	// Parent is the armature the object is parented to, if any.
	Parent string `yaml:"parent" toml:"parent"`
	// Modifiers lists the armatures of the object's armature modifiers in stack order.
	Modifiers []string `yaml:"armature_modifiers" toml:"armature_modifiers"`

	UVLayers      []string `yaml:"uv_layers" toml:"uv_layers"`
	ActiveUVLayer string   `yaml:"active_uv_layer" toml:"active_uv_layer"`
	// UVLayer is the explicitly selected export layer.
	UVLayer string `yaml:"uv_layer" toml:"uv_layer"`

	VertexGroups  []string `yaml:"vertex_groups" toml:"vertex_groups"`
	MaterialNames []string `yaml:"materials" toml:"materials"`
	// Slots holds the resolved material per slot; nil for an empty slot.
	Slots []*Material `yaml:"-" toml:"-"`

	Vertices  []Vertex   `yaml:"vertices" toml:"vertices"`
	Triangles []Triangle `yaml:"triangles" toml:"triangles"`
}

// Vertex is a shared mesh vertex.
type Vertex struct {
	Position [3]float32 `yaml:"co" toml:"co"`
	Normal   [3]float32 `yaml:"normal" toml:"normal"`
	Weights  []Weight   `yaml:"weights" toml:"weights"`
}

// Weight binds a vertex to a vertex group.
type Weight struct {
	Group  int     `yaml:"group" toml:"group"`
	Weight float32 `yaml:"weight" toml:"weight"`
}

// Co returns the vertex position.
func (v *Vertex) Co() math.Vec3 { return vec3(v.Position) }

// Norm returns the vertex normal.
func (v *Vertex) Norm() math.Vec3 { return vec3(v.Normal) }

// Weight returns the weight of the vertex in the given group.
func (v *Vertex) Weight(group int) (float32, bool) {
	for _, w := range v.Weights {
		if w.Group == group {
			return w.Weight, true
		}
	}
	return 0, false
}

// Triangle is one triangle of the triangulated mesh.
type Triangle struct {
	Material int       `yaml:"material" toml:"material"`
	Corners  [3]Corner `yaml:"corners" toml:"corners"`
}

// Corner is a triangle corner (a loop): a vertex plus per-corner UVs, one per UV layer.
type Corner struct {
	Vertex int          `yaml:"vertex" toml:"vertex"`
	UVs    [][2]float32 `yaml:"uvs" toml:"uvs"`
}

// UV returns the corner's coordinate on the given layer index.
func (c *Corner) UV(layer int) math.Vec2 {
	if layer < 0 || layer >= len(c.UVs) {
		return math.Vec2{}
	}
	return vec2(c.UVs[layer])
}

// MaterialAt returns the material in slot idx, or nil for an empty or
// missing slot.
func (m *Mesh) MaterialAt(idx int) *Material {
	if idx < 0 || idx >= len(m.Slots) {
		return nil
	}
	return m.Slots[idx]
}

// HasMaterials reports whether the mesh has any material slots.
func (m *Mesh) HasMaterials() bool {
	return len(m.Slots) > 0
}

// VertexGroup returns the index of the named vertex group, or -1.
func (m *Mesh) VertexGroup(name string) int {
	for i, g := range m.VertexGroups {
		if g == name {
			return i
		}
	}
	return -1
}

// UVLayerIndex resolves the export UV layer: the explicit selection, else the
// active layer. Returns -1 when none applies.
func (m *Mesh) UVLayerIndex(name string) int {
	if name == "" {
		name = m.UVLayer
	}
	if name == "" {
		name = m.ActiveUVLayer
	}
	if name == "" {
		return -1
	}
	for i, l := range m.UVLayers {
		if l == name {
			return i
		}
	}
	return -1
}

// ResolveArmature picks the armature bound to the mesh. An explicit armature
// wins; otherwise the parent armature is guessed (warning), then the first
// armature modifier (error). Returns nil when the mesh is not skinned.
func (s *Scene) ResolveArmature(m *Mesh, r *report.Reporter) *Armature {
	if m.Armature != "" {
		arm := s.Armature(m.Armature)
		active := m.Parent == m.Armature
		for _, mod := range m.Modifiers {
			if mod == m.Armature {
				active = true
			}
		}
		if !active {
			r.Warning("Armature %s is not active on object %s", m.Armature, m.Name)
		}
		return arm
	}
	if m.Parent != "" {
		r.Warning("Armature was guessed by using the parent object. Set one explicitly in the mesh properties")
		return s.Armature(m.Parent)
	}
	for _, mod := range m.Modifiers {
		if arm := s.Armature(mod); arm != nil {
			r.Error("Armature was guessed by using the modifiers. Set one explicitly in the mesh properties")
			return arm
		}
	}
	return nil
}

// Validate checks that every corner references a vertex and that material
// slots were resolved. Link runs it; callers building a Mesh by hand without
// Link must set Slots themselves.
func (m *Mesh) Validate() error {
	if len(m.Slots) < len(m.MaterialNames) {
		return fmt.Errorf("%w: %d material slots unresolved", ErrNotLinked, len(m.MaterialNames)-len(m.Slots))
	}
	for ti, tri := range m.Triangles {
		for ci, c := range tri.Corners {
			if c.Vertex < 0 || c.Vertex >= len(m.Vertices) {
				return fmt.Errorf("%w: triangle %d corner %d vertex %d", ErrBadCorner, ti, ci, c.Vertex)
			}
		}
	}
	return nil
}
