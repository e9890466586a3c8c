package formats

import (
	"regexp"

	"github.com/Faultbox/mhfc-export/pkg/binio"
	"github.com/Faultbox/mhfc-export/pkg/math"
	"github.com/Faultbox/mhfc-export/pkg/report"
	"github.com/Faultbox/mhfc-export/pkg/scene"
)

// Segment and tail tags of an animation channel.
const (
	TagTuneIn            uint8 = 0
	TagConstant          uint8 = 8
	TagLinear            uint8 = 9
	TagBezier            uint8 = 10
	TagExtrapConstant    uint8 = 16
	TagExtrapLinear      uint8 = 17
	animationFileVersion uint8 = 1
)

// boneCurvePattern matches pose bone curve paths and captures the bone name
// and the animated property.
var boneCurvePattern = regexp.MustCompile(`^pose\.bones\["(.*)"\]\.(rotation_quaternion|location|scale)`)

// Segment is the curve piece ending at one keyframe.
type Segment struct {
	End math.Vec2
	Tag uint8
	// Handles holds the Bezier control points, empty otherwise.
	Handles []math.Vec2
}

// Channel is the encoded form of one scalar curve. A nil *Channel has no curve.
type Channel struct {
	Count    uint16
	Start    math.Vec2
	Segments []Segment
	TailTag  uint8
	// TailHandle is written after TagExtrapLinear.
	TailHandle math.Vec2
}

// newChannel encodes curve with every time shifted by -offset. Unknown
// interpolation or extrapolation modes are fatal.
func newChannel(curve *scene.FCurve, offset float32, r *report.Reporter) (*Channel, error) {
	shift := func(p math.Vec2) math.Vec2 { return math.Vec2{X: p.X - offset, Y: p.Y} }
	keys := curve.Keyframes

	// Keyframes past the 16-bit count are dropped so the body matches Count.
	if !checkCount(r, len(keys), maxU16Count, "too many keyframes in fcurve to export") {
		keys = keys[:maxU16Count]
	}
	ch := &Channel{Count: uint16(len(keys))}
	if len(keys) > 0 {
		ch.Start = shift(keys[0].Point())
	}
	for i := 1; i < len(keys); i++ {
		left, right := &keys[i-1], &keys[i]
		seg := Segment{End: shift(right.Point())}
		switch right.Mode() {
		case scene.InterpConstant:
			seg.Tag = TagConstant
		case scene.InterpLinear:
			seg.Tag = TagLinear
		case scene.InterpBezier:
			seg.Tag = TagBezier
			seg.Handles = []math.Vec2{shift(left.Left()), shift(right.Right())}
		default:
			return nil, r.Fatal("Unknown interpolation mode %s", right.Mode())
		}
		ch.Segments = append(ch.Segments, seg)
	}

	switch mode := curve.ExtrapolationMode(); mode {
	case scene.ExtrapConstant:
		ch.TailTag = TagExtrapConstant
	case scene.ExtrapLinear:
		if len(keys) == 0 {
			r.Error("linear extrapolation of a curve without keyframes")
			ch.TailTag = TagExtrapConstant
			break
		}
		ch.TailTag = TagExtrapLinear
		ch.TailHandle = shift(keys[len(keys)-1].Right())
	default:
		return nil, r.Fatal("Unknown extrapolation mode %s", mode)
	}
	return ch, nil
}

func (ch *Channel) dump(w *binio.Writer) {
	if ch == nil {
		w.WriteU16(0)
		return
	}
	w.WriteU16(ch.Count)
	if ch.Count > 0 {
		w.WritePacked(ch.Start.X, ch.Start.Y)
		w.WriteU8(TagTuneIn)
	}
	for _, seg := range ch.Segments {
		w.WritePacked(seg.End.X, seg.End.Y)
		w.WriteU8(seg.Tag)
		for _, h := range seg.Handles {
			w.WritePacked(h.X, h.Y)
		}
	}
	w.WriteU8(ch.TailTag)
	if ch.TailTag == TagExtrapLinear {
		w.WritePacked(ch.TailHandle.X, ch.TailHandle.Y)
	}
}

// Channel slots of a BoneAction, by curve array index.
const (
	locationChannels = 3
	rotationChannels = 4
	scaleChannels    = 3
)

// BoneAction holds the animated channels of one bone. Rotation is indexed
// w, x, y, z as in the source curves.
type BoneAction struct {
	Name     string
	Location [locationChannels]*Channel
	Rotation [rotationChannels]*Channel
	Scale    [scaleChannels]*Channel

	curves struct {
		location [locationChannels]*scene.FCurve
		rotation [rotationChannels]*scene.FCurve
		scale    [scaleChannels]*scene.FCurve
	}
}

// bind assigns curve to the channel slot; it reports whether the index was valid.
func (ba *BoneAction) bind(property string, index int, curve *scene.FCurve) bool {
	var slots []*scene.FCurve
	switch property {
	case "location":
		slots = ba.curves.location[:]
	case "rotation_quaternion":
		slots = ba.curves.rotation[:]
	case "scale":
		slots = ba.curves.scale[:]
	}
	if index < 0 || index >= len(slots) {
		return false
	}
	slots[index] = curve
	return true
}

func (ba *BoneAction) encode(offset float32, r *report.Reporter) error {
	encode := func(dst []*Channel, src []*scene.FCurve) error {
		for i, c := range src {
			if c == nil {
				continue
			}
			err := r.InContext(func() error {
				ch, err := newChannel(c, offset, r)
				dst[i] = ch
				return err
			}, "Curve %s[%d]", c.DataPath, c.ArrayIndex)
			if err != nil {
				return err
			}
		}
		return nil
	}
	if err := encode(ba.Location[:], ba.curves.location[:]); err != nil {
		return err
	}
	if err := encode(ba.Rotation[:], ba.curves.rotation[:]); err != nil {
		return err
	}
	return encode(ba.Scale[:], ba.curves.scale[:])
}

// Channels returns the channels in file order: location x, y, z, rotation
// x, y, z, w, scale x, y, z.
func (ba *BoneAction) Channels() [10]*Channel {
	return [10]*Channel{
		ba.Location[0], ba.Location[1], ba.Location[2],
		ba.Rotation[1], ba.Rotation[2], ba.Rotation[3], ba.Rotation[0],
		ba.Scale[0], ba.Scale[1], ba.Scale[2],
	}
}

func (ba *BoneAction) dump(w *binio.Writer) {
	w.WriteString(ba.Name)
	for _, ch := range ba.Channels() {
		ch.dump(w)
	}
}

// actionV1 is the version 1 animation body.
type actionV1 struct {
	bones []*BoneAction
	// paths counts the curves bound to a channel.
	paths int
}

// newActionV1 binds the pose bone curves of action to the bones of arm.
// Bones appear in the order their first curve appears.
func newActionV1(action *scene.Action, arm *scene.Armature, r *report.Reporter) (*actionV1, error) {
	a := &actionV1{}
	byName := make(map[string]*BoneAction)
	for i := range action.FCurves {
		curve := &action.FCurves[i]
		m := boneCurvePattern.FindStringSubmatch(curve.DataPath)
		if m == nil {
			continue
		}
		name, property := m[1], m[2]
		bone := arm.Bone(name)
		if bone == nil {
			continue
		}
		if property == "location" && bone.Connected {
			continue
		}
		ba, ok := byName[name]
		if !ok {
			ba = &BoneAction{Name: name}
		}
		if !ba.bind(property, curve.ArrayIndex, curve) {
			r.Error("array index %d out of range for %s", curve.ArrayIndex, curve.DataPath)
			continue
		}
		if !ok {
			byName[name] = ba
			a.bones = append(a.bones, ba)
		}
		a.paths++
	}
	checkCount(r, len(a.bones), maxU8Count, "too many bones to export")

	for _, ba := range a.bones {
		if err := ba.encode(action.Offset, r); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *actionV1) dump(w *binio.Writer, r *report.Reporter) {
	w.WriteU8(animationFileVersion)
	w.WriteU8(uint8(len(a.bones)))
	for _, ba := range a.bones {
		ba.dump(w)
	}
	r.Info("Exported %d bones with %d animated paths", len(a.bones), a.paths)
}
