package formats

import (
	"github.com/Faultbox/mhfc-export/pkg/binio"
	"github.com/Faultbox/mhfc-export/pkg/report"
	"github.com/Faultbox/mhfc-export/pkg/scene"
)

// defaultPartName names the part of triangles without a material.
const defaultPartName = "default"

// Part groups the deduplicated geometry of one material slot.
type Part struct {
	Name     string
	Material materialRef
	Points   []Point
	// Indices holds three point indices per triangle.
	Indices []int

	// pointMap lists, per source vertex, the points created from it.
	pointMap map[int][]int
}

func newPart(name string, ref materialRef) *Part {
	return &Part{
		Name:     name,
		Material: ref,
		pointMap: make(map[int][]int),
	}
}

// Add appends a corner sampled from source vertex key, reusing an equal
// point created from the same vertex. It returns the point index.
func (p *Part) Add(key int, pt Point) int {
	known := p.pointMap[key]
	for _, idx := range known {
		if p.Points[idx].Equal(&pt) {
			p.Indices = append(p.Indices, idx)
			return idx
		}
	}
	idx := len(p.Points)
	p.Points = append(p.Points, pt)
	p.pointMap[key] = append(known, idx)
	p.Indices = append(p.Indices, idx)
	return idx
}

// Triangles returns the number of triangles in the part.
func (p *Part) Triangles() int {
	return len(p.Indices) / 3
}

// validate checks the counts written as 16-bit fields.
func (p *Part) validate(r *report.Reporter) error {
	if len(p.Indices)%3 != 0 {
		return r.Fatal("number of indices in part %s not divisible by 3", p.Name)
	}
	checkCount(r, p.Triangles(), maxU16Count, "too many tris in part %s", p.Name)
	checkCount(r, len(p.Points), maxU16Count, "too many points in part %s", p.Name)
	return nil
}

func (p *Part) dump(w *binio.Writer) {
	w.WritePacked(uint16(len(p.Points)), uint16(p.Triangles()))
	w.WriteString(p.Name)
	p.Material.dump(w)
	for i := range p.Points {
		p.Points[i].dump(w)
	}
	for _, idx := range p.Indices {
		w.WriteU16(uint16(idx))
	}
}

// geometry is the per-material split of a mesh, in first-encounter order.
type geometry struct {
	parts []*Part
}

// buildGeometry runs the deduplicator over every triangle of the mesh.
func buildGeometry(m *scene.Mesh, arm *scene.Armature, uvLayer int, resolve materialResolver, r *report.Reporter) (*geometry, error) {
	var groups []int
	if arm != nil {
		groups = make([]int, len(arm.Bones))
		for i, b := range arm.Bones {
			groups[i] = m.VertexGroup(b.Name)
		}
	}

	g := &geometry{}
	bySlot := make(map[int]*Part)
	for _, tri := range m.Triangles {
		part, ok := bySlot[tri.Material]
		if !ok {
			mat := m.MaterialAt(tri.Material)
			name := defaultPartName
			if mat != nil {
				name = mat.Name
			}
			part = newPart(name, resolve.resolve(mat))
			bySlot[tri.Material] = part
			g.parts = append(g.parts, part)
		}
		for _, c := range tri.Corners {
			part.Add(c.Vertex, newPoint(m, c, uvLayer, groups))
		}
	}

	checkCount(r, len(g.parts), maxU8Count, "too many parts")
	for _, part := range g.parts {
		if err := part.validate(r); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *geometry) dump(w *binio.Writer) {
	for _, part := range g.parts {
		part.dump(w)
	}
}
