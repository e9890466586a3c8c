package scene

import (
	"fmt"

	"github.com/Faultbox/mhfc-export/pkg/math"
)

// Armature is an ordered bone hierarchy.
type Armature struct {
	Name   string  `yaml:"name" toml:"name"`
	Artist string  `yaml:"artist" toml:"artist"`
	Bones  []*Bone `yaml:"bones" toml:"bones"`
}

// Bone is one joint. Its rest transform is given in armature space.
type Bone struct {
	Name   string `yaml:"name" toml:"name"`
	Parent string `yaml:"parent" toml:"parent"`
	// Rotation is the armature-space rest rotation as (w, x, y, z).
	Rotation [4]float32 `yaml:"rotation" toml:"rotation"`
	// Translation is the armature-space head position.
	Translation [3]float32 `yaml:"translation" toml:"translation"`
	// Connected bones take their translation from the parent's tail.
	Connected   bool         `yaml:"connected" toml:"connected"`
	Constraints []Constraint `yaml:"constraints" toml:"constraints"`
}

// MatrixLocal returns the armature-space rest matrix of the bone.
func (b *Bone) MatrixLocal() math.Mat4 {
	q := math.Quat{W: b.Rotation[0], X: b.Rotation[1], Y: b.Rotation[2], Z: b.Rotation[3]}
	return math.Compose(q, vec3(b.Translation))
}

// Bone returns the named bone, or nil.
func (a *Armature) Bone(name string) *Bone {
	if a == nil {
		return nil
	}
	for _, b := range a.Bones {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Index returns the position of the named bone in the bone list, or -1.
func (a *Armature) Index(name string) int {
	if a == nil {
		return -1
	}
	for i, b := range a.Bones {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// ParentOf returns the parent bone of b, or nil for a root.
func (a *Armature) ParentOf(b *Bone) *Bone {
	if b.Parent == "" {
		return nil
	}
	return a.Bone(b.Parent)
}

func (a *Armature) validate() error {
	seen := make(map[string]bool, len(a.Bones))
	for _, b := range a.Bones {
		if seen[b.Name] {
			return fmt.Errorf("%w: bone %q", ErrDuplicateName, b.Name)
		}
		seen[b.Name] = true
	}
	for _, b := range a.Bones {
		if b.Parent != "" && !seen[b.Parent] {
			return fmt.Errorf("%w: bone %q parent %q", ErrUnknownObject, b.Name, b.Parent)
		}
	}
	return nil
}

// Constraint types.
const (
	ConstraintCopyRotation = "COPY_ROTATION"
	ConstraintIK           = "IK"
)

// Constraint is one entry of a pose bone's constraint stack.
type Constraint struct {
	Name string `yaml:"name" toml:"name"`
	Type string `yaml:"type" toml:"type"`
	Mute bool   `yaml:"mute" toml:"mute"`
	// Invalid marks constraints the host could not evaluate.
	Invalid bool `yaml:"invalid" toml:"invalid"`

	// Target is the armature object targeted; Subtarget the bone within it.
	Target    string  `yaml:"target" toml:"target"`
	Subtarget string  `yaml:"subtarget" toml:"subtarget"`
	Influence float32 `yaml:"influence" toml:"influence"`

	UseX    bool `yaml:"use_x" toml:"use_x"`
	UseY    bool `yaml:"use_y" toml:"use_y"`
	UseZ    bool `yaml:"use_z" toml:"use_z"`
	InvertX bool `yaml:"invert_x" toml:"invert_x"`
	InvertY bool `yaml:"invert_y" toml:"invert_y"`
	InvertZ bool `yaml:"invert_z" toml:"invert_z"`

	// MixMode is one of REPLACE, BEFORE, AFTER (others are unsupported).
	MixMode string `yaml:"mix_mode" toml:"mix_mode"`
	// OwnerSpace and TargetSpace are LOCAL, LOCAL_WITH_PARENT, POSE or WORLD.
	OwnerSpace  string `yaml:"owner_space" toml:"owner_space"`
	TargetSpace string `yaml:"target_space" toml:"target_space"`
	// EulerOrder must be AUTO (the default when empty).
	EulerOrder string `yaml:"euler_order" toml:"euler_order"`
}
