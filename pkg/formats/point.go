package formats

import (
	"slices"

	"github.com/Faultbox/mhfc-export/pkg/binio"
	"github.com/Faultbox/mhfc-export/pkg/math"
	"github.com/Faultbox/mhfc-export/pkg/scene"
)

const (
	// pointEpsilon bounds position, normal and UV differences of merged points.
	pointEpsilon = 0.001
	// maxBindings is the number of bone weights stored per point.
	maxBindings = 4
	// bindingsEnd terminates a binding list shorter than maxBindings.
	bindingsEnd = 0xFF
)

// Binding attaches a point to a bone of the exported bone sequence.
type Binding struct {
	Bone   int
	Weight float32
}

// Point is one deduplicated vertex of a Part.
type Point struct {
	Position math.Vec3
	Normal   math.Vec3
	// UV is the coordinate as sampled; V is flipped when written.
	UV math.Vec2
	// Bindings holds every positive weight in bone order. It is capped only on dump.
	Bindings []Binding
}

// newPoint samples the corner c of mesh m. groups maps bone sequence position
// to the mesh's vertex group index, -1 when the bone has no group.
func newPoint(m *scene.Mesh, c scene.Corner, uvLayer int, groups []int) Point {
	v := &m.Vertices[c.Vertex]
	p := Point{
		Position: v.Co(),
		Normal:   v.Norm(),
		UV:       c.UV(uvLayer),
	}
	for bone, group := range groups {
		if group < 0 {
			continue
		}
		if w, ok := v.Weight(group); ok && w > 0 {
			p.Bindings = append(p.Bindings, Binding{Bone: bone, Weight: w})
		}
	}
	return p
}

// Equal reports whether p and o are interchangeable: approximately equal
// geometry and exactly equal bindings.
func (p *Point) Equal(o *Point) bool {
	return slices.Equal(p.Bindings, o.Bindings) &&
		p.UV.Near(o.UV, pointEpsilon) &&
		p.Position.Near(o.Position, pointEpsilon) &&
		p.Normal.Near(o.Normal, pointEpsilon)
}

// TopBindings returns the bindings written to disk: the heaviest first, at
// most maxBindings. Equal weights keep their bone order.
func (p *Point) TopBindings() []Binding {
	binds := slices.Clone(p.Bindings)
	slices.SortStableFunc(binds, func(a, b Binding) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		default:
			return 0
		}
	})
	if len(binds) > maxBindings {
		binds = binds[:maxBindings]
	}
	return binds
}

func (p *Point) dump(w *binio.Writer) {
	uv := p.UV.FlipV()
	w.WritePacked(
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Normal.X, p.Normal.Y, p.Normal.Z,
		uv.X, uv.Y,
	)
	binds := p.TopBindings()
	for _, b := range binds {
		w.WritePacked(uint8(b.Bone), b.Weight)
	}
	if len(binds) < maxBindings {
		w.WriteU8(bindingsEnd)
	}
}
