package formats

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/Faultbox/mhfc-export/pkg/binio"
	"github.com/Faultbox/mhfc-export/pkg/math"
	"github.com/Faultbox/mhfc-export/pkg/scene"
)

func TestPointEqual(t *testing.T) {
	base := Point{
		Position: math.Vec3{X: 1, Y: 2, Z: 3},
		Normal:   math.Vec3{Z: 1},
		UV:       math.Vec2{X: 0.5, Y: 0.5},
		Bindings: []Binding{{Bone: 0, Weight: 1}},
	}

	tests := []struct {
		name   string
		modify func(p *Point)
		want   bool
	}{
		{"identical", func(p *Point) {}, true},
		{"position within epsilon", func(p *Point) { p.Position.X += 0.0005 }, true},
		{"position outside epsilon", func(p *Point) { p.Position.X += 0.002 }, false},
		{"normal differs", func(p *Point) { p.Normal = math.Vec3{Y: 1} }, false},
		{"uv seam", func(p *Point) { p.UV.X = 0.75 }, false},
		{"weight differs slightly", func(p *Point) { p.Bindings = []Binding{{Bone: 0, Weight: 0.9999}} }, false},
		{"extra binding", func(p *Point) { p.Bindings = append(p.Bindings, Binding{Bone: 1, Weight: 0.1}) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			other.Bindings = append([]Binding(nil), base.Bindings...)
			tt.modify(&other)
			if got := base.Equal(&other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointTopBindings(t *testing.T) {
	p := Point{Bindings: []Binding{
		{Bone: 0, Weight: 0.1},
		{Bone: 1, Weight: 0.5},
		{Bone: 2, Weight: 0.2},
		{Bone: 3, Weight: 0.5},
		{Bone: 4, Weight: 0.05},
		{Bone: 5, Weight: 0.3},
	}}

	got := p.TopBindings()
	want := []int{1, 3, 5, 2}
	if len(got) != len(want) {
		t.Fatalf("got %d bindings, want %d", len(got), len(want))
	}
	for i, b := range got {
		if b.Bone != want[i] {
			t.Errorf("binding %d: bone %d, want %d", i, b.Bone, want[i])
		}
	}
	if len(p.Bindings) != 6 {
		t.Error("TopBindings must not modify the point")
	}
}

func TestNewPoint_Weights(t *testing.T) {
	m := &scene.Mesh{
		VertexGroups: []string{"b", "a", "c"},
		Vertices: []scene.Vertex{{
			Position: [3]float32{1, 2, 3},
			Normal:   [3]float32{0, 1, 0},
			Weights: []scene.Weight{
				{Group: 0, Weight: 0.25},
				{Group: 1, Weight: 0.75},
				{Group: 2, Weight: 0},
			},
		}},
	}
	c := scene.Corner{Vertex: 0, UVs: [][2]float32{{0.25, 0.75}}}

	// Bones a, b, c, d: d has no vertex group.
	groups := []int{1, 0, 2, -1}
	p := newPoint(m, c, 0, groups)

	if p.Position != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("position = %v", p.Position)
	}
	if p.UV != (math.Vec2{X: 0.25, Y: 0.75}) {
		t.Errorf("uv = %v", p.UV)
	}
	want := []Binding{{Bone: 0, Weight: 0.75}, {Bone: 1, Weight: 0.25}}
	if len(p.Bindings) != len(want) {
		t.Fatalf("bindings = %v, want %v", p.Bindings, want)
	}
	for i := range want {
		if p.Bindings[i] != want[i] {
			t.Errorf("binding %d = %v, want %v", i, p.Bindings[i], want[i])
		}
	}

	if unbound := newPoint(m, c, 0, nil); len(unbound.Bindings) != 0 {
		t.Error("a mesh without armature should have no bindings")
	}
	if noUV := newPoint(m, c, -1, nil); noUV.UV != (math.Vec2{}) {
		t.Errorf("missing UV layer should sample (0, 0), got %v", noUV.UV)
	}
}

func TestPointDump(t *testing.T) {
	tests := []struct {
		name     string
		bindings []Binding
		wantBind []Binding
		wantEnd  bool
	}{
		{"no bindings", nil, nil, true},
		{"two bindings", []Binding{{0, 0.25}, {2, 0.75}}, []Binding{{2, 0.75}, {0, 0.25}}, true},
		{
			"capped to four",
			[]Binding{{0, 0.1}, {1, 0.2}, {2, 0.3}, {3, 0.4}, {4, 0.5}},
			[]Binding{{4, 0.5}, {3, 0.4}, {2, 0.3}, {1, 0.2}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Point{
				Position: math.Vec3{X: 1, Y: 2, Z: 3},
				Normal:   math.Vec3{Z: 1},
				UV:       math.Vec2{X: 0.25, Y: 0.25},
				Bindings: tt.bindings,
			}
			var got bytes.Buffer
			w := binio.NewWriter(&got)
			p.dump(w)
			if err := w.Flush(); err != nil {
				t.Fatal(err)
			}

			want := new(bytes.Buffer)
			binary.Write(want, binary.BigEndian, []float32{1, 2, 3, 0, 0, 1, 0.25, 0.75})
			for _, b := range tt.wantBind {
				want.WriteByte(uint8(b.Bone))
				binary.Write(want, binary.BigEndian, b.Weight)
			}
			if tt.wantEnd {
				want.WriteByte(0xFF)
			}

			if !bytes.Equal(got.Bytes(), want.Bytes()) {
				t.Errorf("dump =\n% x\nwant\n% x", got.Bytes(), want.Bytes())
			}
		})
	}
}
