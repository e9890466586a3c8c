package formats

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/Faultbox/mhfc-export/pkg/binio"
	"github.com/Faultbox/mhfc-export/pkg/report"
	"github.com/Faultbox/mhfc-export/pkg/scene"
)

func TestTrimPNG(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"skin.png", "skin"},
		{"skin.PNG", "skin"},
		{"skin", "skin"},
		{"skin.tga", "skin.tga"},
		{".png", ""},
		{"png", "png"},
	}
	for _, tt := range tests {
		if got := trimPNG(tt.in); got != tt.want {
			t.Errorf("trimPNG(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestImageResolver(t *testing.T) {
	textured := &scene.Material{
		Name:     "Skin",
		UseNodes: true,
		Nodes: []scene.ShaderNode{
			{Type: "BSDF_PRINCIPLED"},
			{Type: scene.NodeTexImage, Image: "dragon_skin.png"},
		},
	}
	flat := &scene.Material{Name: "Flat"}

	tests := []struct {
		name   string
		mat    *scene.Material
		want   imageRef
		failed bool
	}{
		{"image node", textured, "dragon_skin", false},
		{"no material", nil, "default", false},
		{"no node graph", flat, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := report.New()
			got := imageResolver{r: r}.resolve(tt.mat)
			if got != tt.want {
				t.Errorf("resolve() = %v, want %v", got, tt.want)
			}
			if r.Failed() != tt.failed {
				t.Errorf("Failed() = %v, want %v", r.Failed(), tt.failed)
			}
		})
	}
}

func TestMaterialTable_StableIndices(t *testing.T) {
	r := report.New()
	table := newMaterialTable(r)
	a, b := &scene.Material{Name: "a"}, &scene.Material{Name: "b"}

	refs := []materialRef{table.resolve(b), table.resolve(nil), table.resolve(b), table.resolve(a)}
	want := []indexRef{0, 1, 0, 2}
	for i, ref := range refs {
		if ref != want[i] {
			t.Errorf("lookup %d = %v, want %v", i, ref, want[i])
		}
	}

	var buf bytes.Buffer
	w := binio.NewWriter(&buf)
	table.dump(w)
	w.Flush()
	if got := buf.String(); got != "b\x00default\x00a\x00" {
		t.Errorf("table = %q", got)
	}
}

func TestMaterialTable_Cap(t *testing.T) {
	r := report.New()
	table := newMaterialTable(r)

	for i := 0; i < maxMaterials; i++ {
		ref := table.resolve(&scene.Material{Name: fmt.Sprintf("m%d", i)})
		if ref != indexRef(i) {
			t.Fatalf("material %d got %v", i, ref)
		}
	}
	if r.Failed() {
		t.Fatalf("%d materials should fit: %v", maxMaterials, r.Entries())
	}

	ref := table.resolve(&scene.Material{Name: "one too many"})
	if !r.Failed() {
		t.Error("256th material should be reported")
	}
	if ref != indexRef(0xFF) {
		t.Errorf("overflow ref = %v, want 0xFF", ref)
	}
	if table.Len() != maxMaterials {
		t.Errorf("table has %d entries, want %d", table.Len(), maxMaterials)
	}
}
