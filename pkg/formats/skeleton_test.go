package formats

import (
	"strings"
	"testing"

	"github.com/Faultbox/mhfc-export/pkg/report"
	"github.com/Faultbox/mhfc-export/pkg/scene"
)

var identity = [4]float32{1, 0, 0, 0}

// testRig returns a two bone armature: root at the origin and arm one unit
// above it.
func testRig(constraints ...scene.Constraint) *scene.Armature {
	return &scene.Armature{
		Name:   "Rig",
		Artist: "someone",
		Bones: []*scene.Bone{
			{Name: "root", Rotation: identity},
			{
				Name:        "arm",
				Parent:      "root",
				Rotation:    identity,
				Translation: [3]float32{0, 1, 0},
				Constraints: constraints,
			},
		},
	}
}

func TestSkeletonV1_Layout(t *testing.T) {
	r := report.New()
	data := encode(t, newSkeletonV1(testRig(), r), r)

	fr := newFileReader(t, data)
	if v := fr.u32(); v != 1 {
		t.Fatalf("version = %d, want 1", v)
	}
	if n := fr.u8(); n != 2 {
		t.Fatalf("bone count = %d, want 2", n)
	}
	wantBones := []struct {
		name string
		tf   []float32
	}{
		{"root", []float32{0, 0, 0, 1, 0, 0, 0}},
		{"arm", []float32{0, 0, 0, 1, 0, 1, 0}},
	}
	for _, wb := range wantBones {
		if name := fr.str(); name != wb.name {
			t.Errorf("bone name = %q, want %q", name, wb.name)
		}
		if tf := fr.f32s(7); !approx(tf, wb.tf) {
			t.Errorf("bone %s transform = %v, want %v", wb.name, tf, wb.tf)
		}
	}
	if p := []uint8{fr.u8(), fr.u8()}; p[0] != 0xFF || p[1] != 0 {
		t.Errorf("parents = % x, want ff 00", p)
	}
	fr.expectEOF()

	if r.Failed() {
		t.Errorf("unexpected errors: %v", r.Entries())
	}
	if msgs := (&report.Result{Entries: r.Entries()}).Messages(report.Info); len(msgs) != 1 || msgs[0] != "INFO: Exported 2 bones" {
		t.Errorf("messages = %v", msgs)
	}
}

func TestSkeletonV1_TooManyBones(t *testing.T) {
	arm := &scene.Armature{Name: "Big"}
	for i := 0; i < 256; i++ {
		arm.Bones = append(arm.Bones, &scene.Bone{Name: string(rune('a'+i%26)) + strings.Repeat("x", i/26), Rotation: identity})
	}
	r := report.New()
	newSkeletonV1(arm, r)
	if !r.Failed() {
		t.Error("256 bones should be reported for V1")
	}

	r = report.New()
	newSkeletonV2(arm, r)
	if r.Failed() {
		t.Errorf("256 bones fit V2: %v", r.Entries())
	}
}

func TestSkeletonV2_Layout(t *testing.T) {
	copyRot := scene.Constraint{
		Name:        "Copy",
		Type:        scene.ConstraintCopyRotation,
		Target:      "Rig",
		Subtarget:   "root",
		Influence:   0.5,
		UseX:        true,
		UseZ:        true,
		InvertY:     true,
		MixMode:     "BEFORE",
		OwnerSpace:  "LOCAL",
		TargetSpace: "POSE",
	}
	r := report.New()
	data := encode(t, newSkeletonV2(testRig(copyRot), r), r)

	fr := newFileReader(t, data)
	if v := fr.u32(); v != 2 {
		t.Fatalf("version = %d, want 2", v)
	}
	if n := fr.u32(); n != 2 {
		t.Fatalf("bone count = %d, want 2", n)
	}
	for _, name := range []string{"root", "arm"} {
		if got := fr.str(); got != name {
			t.Errorf("bone name = %q, want %q", got, name)
		}
		fr.f32s(7)
	}
	if p0, p1 := fr.u32(), fr.u32(); p0 != 0xFFFFFFFF || p1 != 0 {
		t.Errorf("parents = %#x, %#x", p0, p1)
	}
	if n := fr.u32(); n != 1 {
		t.Fatalf("constraint count = %d, want 1", n)
	}
	var tag [4]byte
	fr.read(&tag)
	if string(tag[:]) != "COPY" {
		t.Errorf("tag = %q", tag)
	}
	if bone, target := fr.u32(), fr.u32(); bone != 1 || target != 0 {
		t.Errorf("bone/target = %d/%d, want 1/0", bone, target)
	}
	if inf := fr.f32s(1)[0]; inf != 0.5 {
		t.Errorf("influence = %v", inf)
	}
	if bits := fr.u8(); bits != optUseX|optUseZ|optInvertY {
		t.Errorf("option bits = %#x", bits)
	}
	if mix, owner, target := fr.u8(), fr.u8(), fr.u8(); mix != 1 || owner != 0 || target != 2 {
		t.Errorf("mix/owner/target = %d/%d/%d, want 1/0/2", mix, owner, target)
	}
	fr.expectEOF()

	if r.Failed() {
		t.Errorf("unexpected errors: %v", r.Entries())
	}
}

func TestCopyRotation_OptionBits(t *testing.T) {
	tests := []struct {
		name string
		c    CopyRotation
		want uint8
	}{
		{"none", CopyRotation{}, 0},
		{"use y only", CopyRotation{UseY: true}, 0x02},
		{"use z only", CopyRotation{UseZ: true}, 0x04},
		{"all", CopyRotation{UseX: true, UseY: true, UseZ: true, InvertX: true, InvertY: true, InvertZ: true}, 0x77},
	}
	for _, tt := range tests {
		if got := tt.c.OptionBits(); got != tt.want {
			t.Errorf("%s: OptionBits() = %#x, want %#x", tt.name, got, tt.want)
		}
	}
}

func TestCollectConstraints(t *testing.T) {
	valid := scene.Constraint{
		Name:        "C",
		Type:        scene.ConstraintCopyRotation,
		Target:      "Rig",
		Subtarget:   "root",
		Influence:   1,
		OwnerSpace:  "POSE",
		TargetSpace: "LOCAL_WITH_PARENT",
	}
	with := func(fn func(c *scene.Constraint)) scene.Constraint {
		c := valid
		fn(&c)
		return c
	}

	tests := []struct {
		name     string
		c        scene.Constraint
		want     int
		errors   int
		warnings int
	}{
		{"valid", valid, 1, 0, 0},
		{"muted", with(func(c *scene.Constraint) { c.Mute = true; c.Target = "elsewhere" }), 0, 0, 0},
		{"invalid", with(func(c *scene.Constraint) { c.Invalid = true }), 0, 0, 0},
		{"inverse kinematics", with(func(c *scene.Constraint) { c.Type = scene.ConstraintIK }), 0, 0, 1},
		{"unsupported type", with(func(c *scene.Constraint) { c.Type = "STRETCH_TO" }), 0, 1, 0},
		{"euler order", with(func(c *scene.Constraint) { c.EulerOrder = "XYZ" }), 0, 1, 0},
		{"explicit auto order", with(func(c *scene.Constraint) { c.EulerOrder = "AUTO" }), 1, 0, 0},
		{"other armature", with(func(c *scene.Constraint) { c.Target = "Other" }), 0, 1, 0},
		{"unknown subtarget", with(func(c *scene.Constraint) { c.Subtarget = "ghost" }), 0, 1, 0},
		{"unknown mix mode", with(func(c *scene.Constraint) { c.MixMode = "ADD" }), 0, 1, 0},
		{"world owner space", with(func(c *scene.Constraint) { c.OwnerSpace = "" }), 0, 1, 0},
		{"world spaces", with(func(c *scene.Constraint) { c.OwnerSpace, c.TargetSpace = "WORLD", "" }), 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := report.New()
			got := collectConstraints(testRig(tt.c), r)
			if len(got) != tt.want {
				t.Errorf("got %d constraints, want %d", len(got), tt.want)
			}
			if n := r.Count(report.Error); n != tt.errors {
				t.Errorf("got %d errors, want %d: %v", n, tt.errors, r.Entries())
			}
			if n := r.Count(report.Warning); n != tt.warnings {
				t.Errorf("got %d warnings, want %d", n, tt.warnings)
			}
			for _, e := range r.Entries() {
				if !strings.HasPrefix(e.Message, "On bone arm, constraint C: ") {
					t.Errorf("message without context: %q", e.Message)
				}
				if e.Severity == report.Error && !e.User {
					t.Errorf("constraint errors should be user errors: %q", e.Message)
				}
			}
			if r.Context() != "" {
				t.Errorf("context left on the stack: %q", r.Context())
			}
		})
	}
}
