package formats

import (
	"fmt"

	"github.com/Faultbox/mhfc-export/pkg/binio"
	"github.com/Faultbox/mhfc-export/pkg/report"
	"github.com/Faultbox/mhfc-export/pkg/scene"
)

// Parent index sentinels for root bones.
const (
	noParentV1 uint8  = 0xFF
	noParentV2 uint32 = 0xFFFFFFFF
)

// skeletonV1 is a bone list with one-byte counts and parent indices.
type skeletonV1 struct {
	bones   []Bone
	parents []uint8
}

func newSkeletonV1(arm *scene.Armature, r *report.Reporter) *skeletonV1 {
	bones, parents := collectBones(arm)
	s := &skeletonV1{bones: bones, parents: make([]uint8, len(parents))}
	for i, p := range parents {
		s.parents[i] = noParentV1
		if p >= 0 {
			s.parents[i] = uint8(p)
		}
	}
	checkCount(r, len(bones), maxU8Count, "too many bones")
	return s
}

func (s *skeletonV1) dump(w *binio.Writer, r *report.Reporter) {
	w.WriteU32(1)
	w.WriteU8(uint8(len(s.bones)))
	dumpBones(w, s.bones)
	w.WritePacked(s.parents)
	r.Info("Exported %d bones", len(s.bones))
}

// skeletonV2 is a bone list with four-byte counts and parent indices,
// followed by the bone constraints.
type skeletonV2 struct {
	bones       []Bone
	parents     []uint32
	constraints []CopyRotation
}

func newSkeletonV2(arm *scene.Armature, r *report.Reporter) *skeletonV2 {
	bones, parents := collectBones(arm)
	s := &skeletonV2{bones: bones, parents: make([]uint32, len(parents))}
	for i, p := range parents {
		s.parents[i] = noParentV2
		if p >= 0 {
			s.parents[i] = uint32(p)
		}
	}
	s.constraints = collectConstraints(arm, r)
	checkCount(r, len(bones), maxU32Count, "too many bones")
	checkCount(r, len(s.constraints), maxU32Count, "too many bone constraints")
	return s
}

func (s *skeletonV2) dump(w *binio.Writer, r *report.Reporter) {
	w.WriteU32(2)
	w.WriteU32(uint32(len(s.bones)))
	dumpBones(w, s.bones)
	w.WritePacked(s.parents)
	w.WriteU32(uint32(len(s.constraints)))
	for i := range s.constraints {
		s.constraints[i].dump(w)
	}
	r.Info("Exported %d bones, with %d constraints", len(s.bones), len(s.constraints))
}

// MixMode is how a copied rotation combines with the owner's own rotation.
type MixMode uint8

const (
	MixReplace MixMode = 0
	MixBefore  MixMode = 1
	MixAfter   MixMode = 2
)

var mixModes = map[string]MixMode{
	"":        MixReplace,
	"REPLACE": MixReplace,
	"BEFORE":  MixBefore,
	"AFTER":   MixAfter,
}

// Space is the coordinate space a constraint reads or writes in.
type Space uint8

const (
	SpaceLocal           Space = 0
	SpaceLocalWithParent Space = 1
	SpacePose            Space = 2
)

var spaces = map[string]Space{
	"LOCAL":             SpaceLocal,
	"LOCAL_WITH_PARENT": SpaceLocalWithParent,
	"POSE":              SpacePose,
}

// Option bits of a copy rotation record.
const (
	optUseX    = 0x01
	optUseY    = 0x02
	optUseZ    = 0x04
	optInvertX = 0x10
	optInvertY = 0x20
	optInvertZ = 0x40
)

// copyRotationTag identifies a copy rotation record on disk.
var copyRotationTag = [4]byte{'C', 'O', 'P', 'Y'}

// CopyRotation makes a bone copy the rotation of another bone.
type CopyRotation struct {
	Bone      uint32
	Target    uint32
	Influence float32

	UseX, UseY, UseZ          bool
	InvertX, InvertY, InvertZ bool

	Mix         MixMode
	OwnerSpace  Space
	TargetSpace Space
}

// OptionBits packs the axis flags.
func (c *CopyRotation) OptionBits() uint8 {
	var bits uint8
	for _, f := range []struct {
		set bool
		bit uint8
	}{
		{c.UseX, optUseX}, {c.UseY, optUseY}, {c.UseZ, optUseZ},
		{c.InvertX, optInvertX}, {c.InvertY, optInvertY}, {c.InvertZ, optInvertZ},
	} {
		if f.set {
			bits |= f.bit
		}
	}
	return bits
}

func (c *CopyRotation) dump(w *binio.Writer) {
	w.WritePacked(copyRotationTag, c.Bone, c.Target, c.Influence)
	w.WritePacked(c.OptionBits(), uint8(c.Mix), uint8(c.OwnerSpace), uint8(c.TargetSpace))
}

// newCopyRotation converts a COPY_ROTATION constraint of bone. Every problem
// is reported; ok is false when the constraint cannot be exported.
func newCopyRotation(arm *scene.Armature, bone int, c *scene.Constraint, r *report.Reporter) (cr CopyRotation, ok bool) {
	ok = true
	reject := func(format string, args ...any) {
		r.UserError(format, args...)
		ok = false
	}

	if c.EulerOrder != "" && c.EulerOrder != "AUTO" {
		reject("copy constraints only supports Order: Default")
	}
	if c.Target != arm.Name {
		reject("copy constraints support only targeting own armature")
	}
	target := arm.Index(c.Subtarget)
	if target < 0 {
		reject("target bone %q not found", c.Subtarget)
	}
	mix, known := mixModes[c.MixMode]
	if !known {
		reject("mix mode %s is not supported", c.MixMode)
	}
	owner, known := spaces[c.OwnerSpace]
	if !known {
		reject("owner space %s is not supported, use 'pose' perhaps", spaceName(c.OwnerSpace))
	}
	targetSpace, known := spaces[c.TargetSpace]
	if !known {
		reject("target space %s is not supported, use 'pose' perhaps", spaceName(c.TargetSpace))
	}
	if !ok {
		return cr, false
	}

	return CopyRotation{
		Bone:        uint32(bone),
		Target:      uint32(target),
		Influence:   c.Influence,
		UseX:        c.UseX,
		UseY:        c.UseY,
		UseZ:        c.UseZ,
		InvertX:     c.InvertX,
		InvertY:     c.InvertY,
		InvertZ:     c.InvertZ,
		Mix:         mix,
		OwnerSpace:  owner,
		TargetSpace: targetSpace,
	}, true
}

func spaceName(s string) string {
	if s == "" {
		return "'world'"
	}
	return fmt.Sprintf("'%s'", s)
}

// collectConstraints walks every bone's constraint stack in bone order.
func collectConstraints(arm *scene.Armature, r *report.Reporter) []CopyRotation {
	if arm == nil {
		return nil
	}
	var out []CopyRotation
	for i, b := range arm.Bones {
		for j := range b.Constraints {
			c := &b.Constraints[j]
			_ = r.InContext(func() error {
				if c.Mute || c.Invalid {
					return nil
				}
				switch c.Type {
				case scene.ConstraintCopyRotation:
					if cr, ok := newCopyRotation(arm, i, c, r); ok {
						out = append(out, cr)
					}
				case scene.ConstraintIK:
					r.Warning("inverse kinematics constraint not yet supported")
				default:
					r.UserError("unsupported constraint")
				}
				return nil
			}, "On bone %s, constraint %s", b.Name, c.Name)
		}
	}
	return out
}
