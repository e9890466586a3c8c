package formats

import (
	"strings"

	"github.com/Faultbox/mhfc-export/pkg/binio"
	"github.com/Faultbox/mhfc-export/pkg/report"
	"github.com/Faultbox/mhfc-export/pkg/scene"
)

// maxMaterials is the number of indices a V2 material table can assign.
const maxMaterials = 255

// materialRef is the material record stored inside a Part.
type materialRef interface {
	dump(w *binio.Writer)
}

// materialResolver turns a mesh material into the record of one format version.
type materialResolver interface {
	resolve(mat *scene.Material) materialRef
}

// imageRef names the texture image directly (model V1).
type imageRef string

func (ref imageRef) dump(w *binio.Writer) { w.WriteString(string(ref)) }

// indexRef points into the material table (model V2).
type indexRef uint8

func (ref indexRef) dump(w *binio.Writer) { w.WriteU8(uint8(ref)) }

// imageResolver resolves a material to its texture image name.
type imageResolver struct {
	r *report.Reporter
}

func (res imageResolver) resolve(mat *scene.Material) materialRef {
	if mat == nil {
		return imageRef(defaultPartName)
	}
	img, ok := mat.ImageName()
	if !ok {
		res.r.Error("Couldn't determine image to use for %s", mat.Name)
		return imageRef("")
	}
	return imageRef(trimPNG(img))
}

// trimPNG strips a ".png" extension in any letter case.
func trimPNG(name string) string {
	const ext = ".png"
	if len(name) >= len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext) {
		return name[:len(name)-len(ext)]
	}
	return name
}

// materialTable assigns table indices to materials in first-seen order.
type materialTable struct {
	r     *report.Reporter
	index map[*scene.Material]uint8
	names []string
}

func newMaterialTable(r *report.Reporter) *materialTable {
	return &materialTable{r: r, index: make(map[*scene.Material]uint8)}
}

func (t *materialTable) resolve(mat *scene.Material) materialRef {
	if idx, ok := t.index[mat]; ok {
		return indexRef(idx)
	}
	if len(t.names) >= maxMaterials {
		t.r.Error("too many materials, %s has no index", materialName(mat))
		return indexRef(0xFF)
	}
	idx := uint8(len(t.names))
	t.index[mat] = idx
	t.names = append(t.names, materialName(mat))
	return indexRef(idx)
}

// Len returns the number of assigned indices.
func (t *materialTable) Len() int {
	return len(t.names)
}

// dump writes the material names by ascending index.
func (t *materialTable) dump(w *binio.Writer) {
	for _, name := range t.names {
		w.WriteString(name)
	}
}

func materialName(mat *scene.Material) string {
	if mat == nil {
		return defaultPartName
	}
	return mat.Name
}
