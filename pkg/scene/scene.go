// Package scene models the host application's data handed to the exporters:
// triangulated meshes with skin weights, armatures with constraints, and
// keyframed actions.
package scene

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/Faultbox/mhfc-export/pkg/math"
)

// Scene link errors.
var (
	ErrUnknownMaterial = errors.New("unknown material")
	ErrUnknownObject   = errors.New("unknown object")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrBadCorner       = errors.New("corner references missing vertex")
	ErrNotLinked       = errors.New("scene not linked")
)

// Scene is a complete export description.
type Scene struct {
	Name        string `yaml:"name" toml:"name"`
	ProjectName string `yaml:"project_name" toml:"project_name"`
	// Model and Skeleton name the mesh and armature exported by a scene export.
	Model    string `yaml:"model" toml:"model"`
	Skeleton string `yaml:"skeleton" toml:"skeleton"`
	// UUID is shared by the model and skeleton files. Empty means generate.
	UUID string `yaml:"uuid" toml:"uuid"`

	Materials []*Material `yaml:"materials" toml:"materials"`
	Meshes    []*Mesh     `yaml:"meshes" toml:"meshes"`
	Armatures []*Armature `yaml:"armatures" toml:"armatures"`
	Actions   []*Action   `yaml:"actions" toml:"actions"`
}

// Material is a surface material. Identity is the pointer.
type Material struct {
	Name     string       `yaml:"name" toml:"name"`
	UseNodes bool         `yaml:"use_nodes" toml:"use_nodes"`
	Nodes    []ShaderNode `yaml:"nodes" toml:"nodes"`
}

// NodeTexImage is the shader node type carrying an image texture.
const NodeTexImage = "TEX_IMAGE"

// ShaderNode is one node of a material's shader graph.
type ShaderNode struct {
	Type  string `yaml:"type" toml:"type"`
	Name  string `yaml:"name" toml:"name"`
	Image string `yaml:"image" toml:"image"`
}

// ImageName returns the image of the first image-texture node, if the
// material uses a node graph.
func (m *Material) ImageName() (string, bool) {
	if m == nil || !m.UseNodes {
		return "", false
	}
	for _, n := range m.Nodes {
		if n.Type == NodeTexImage {
			return n.Image, n.Image != ""
		}
	}
	return "", false
}

// Material returns the material with the given name, or nil.
func (s *Scene) Material(name string) *Material {
	for _, m := range s.Materials {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Mesh returns the mesh with the given name, or nil.
func (s *Scene) Mesh(name string) *Mesh {
	for _, m := range s.Meshes {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Armature returns the armature with the given name, or nil.
func (s *Scene) Armature(name string) *Armature {
	for _, a := range s.Armatures {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Action returns the action with the given name, or nil.
func (s *Scene) Action(name string) *Action {
	for _, a := range s.Actions {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Link normalizes names to NFC, resolves material slots and validates
// references. It must be called after building a Scene by hand; Load calls it.
func (s *Scene) Link() error {
	seen := make(map[string]bool)
	for _, m := range s.Materials {
		m.Name = norm.NFC.String(m.Name)
		if seen[m.Name] {
			return fmt.Errorf("%w: material %q", ErrDuplicateName, m.Name)
		}
		seen[m.Name] = true
	}

	for _, a := range s.Armatures {
		a.Name = norm.NFC.String(a.Name)
		for _, b := range a.Bones {
			b.Name = norm.NFC.String(b.Name)
			b.Parent = norm.NFC.String(b.Parent)
			for i := range b.Constraints {
				c := &b.Constraints[i]
				c.Target = norm.NFC.String(c.Target)
				c.Subtarget = norm.NFC.String(c.Subtarget)
			}
		}
		if err := a.validate(); err != nil {
			return fmt.Errorf("armature %s: %w", a.Name, err)
		}
	}

	for _, m := range s.Meshes {
		m.Name = norm.NFC.String(m.Name)
		for i, g := range m.VertexGroups {
			m.VertexGroups[i] = norm.NFC.String(g)
		}
		m.Slots = make([]*Material, len(m.MaterialNames))
		for i, name := range m.MaterialNames {
			if name == "" {
				continue
			}
			mat := s.Material(norm.NFC.String(name))
			if mat == nil {
				return fmt.Errorf("mesh %s slot %d: %w %q", m.Name, i, ErrUnknownMaterial, name)
			}
			m.Slots[i] = mat
		}
		m.Parent = norm.NFC.String(m.Parent)
		m.Armature = norm.NFC.String(m.Armature)
		for i, mod := range m.Modifiers {
			m.Modifiers[i] = norm.NFC.String(mod)
		}
		for _, ref := range append([]string{m.Parent, m.Armature}, m.Modifiers...) {
			if ref != "" && s.Armature(ref) == nil {
				return fmt.Errorf("mesh %s: %w: armature %q", m.Name, ErrUnknownObject, ref)
			}
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("mesh %s: %w", m.Name, err)
		}
	}

	for _, a := range s.Actions {
		a.Name = norm.NFC.String(a.Name)
		for i := range a.FCurves {
			a.FCurves[i].DataPath = norm.NFC.String(a.FCurves[i].DataPath)
		}
	}
	return nil
}

// vec3 and friends convert the serialized array forms to math types.
func vec3(a [3]float32) math.Vec3 { return math.Vec3{X: a[0], Y: a[1], Z: a[2]} }

func vec2(a [2]float32) math.Vec2 { return math.Vec2{X: a[0], Y: a[1]} }
