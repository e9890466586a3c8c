package formats

import (
	"github.com/Faultbox/mhfc-export/pkg/binio"
	"github.com/Faultbox/mhfc-export/pkg/math"
	"github.com/Faultbox/mhfc-export/pkg/scene"
)

// Bone is a joint with its transform relative to the parent bone.
type Bone struct {
	Name        string
	Rotation    math.Quat
	Translation math.Vec3
}

// newBone computes the parent-relative rest transform. Root bones keep their
// armature-space transform.
func newBone(arm *scene.Armature, b *scene.Bone) Bone {
	local := b.MatrixLocal()
	if parent := arm.ParentOf(b); parent != nil {
		local = parent.MatrixLocal().Inverse().Mul(local)
	}
	return Bone{
		Name:        b.Name,
		Rotation:    local.Rotation(),
		Translation: local.Translation(),
	}
}

func (b *Bone) dump(w *binio.Writer) {
	q, t := b.Rotation, b.Translation
	w.WriteString(b.Name)
	w.WritePacked(q.X, q.Y, q.Z, q.W, t.X, t.Y, t.Z)
}

// collectBones returns the bones of arm in armature order, with the index of
// each bone's parent or -1 for a root. A nil armature has no bones.
func collectBones(arm *scene.Armature) ([]Bone, []int) {
	if arm == nil {
		return nil, nil
	}
	bones := make([]Bone, len(arm.Bones))
	parents := make([]int, len(arm.Bones))
	for i, b := range arm.Bones {
		bones[i] = newBone(arm, b)
		parents[i] = -1
		if b.Parent != "" {
			parents[i] = arm.Index(b.Parent)
		}
	}
	return bones, parents
}

func dumpBones(w *binio.Writer, bones []Bone) {
	for i := range bones {
		bones[i].dump(w)
	}
}
