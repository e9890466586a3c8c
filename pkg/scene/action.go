package scene

import "github.com/Faultbox/mhfc-export/pkg/math"

// Interpolation and extrapolation modes as named by the host.
const (
	InterpConstant = "CONSTANT"
	InterpLinear   = "LINEAR"
	InterpBezier   = "BEZIER"

	ExtrapConstant = "CONSTANT"
	ExtrapLinear   = "LINEAR"
)

// Action is a named set of animation curves.
type Action struct {
	Name   string `yaml:"name" toml:"name"`
	Artist string `yaml:"artist" toml:"artist"`
	// Offset is subtracted from every keyframe time on export.
	Offset float32 `yaml:"offset" toml:"offset"`
	// Scene restricts a scene export to the named scene; empty exports everywhere.
	Scene   string   `yaml:"scene" toml:"scene"`
	FCurves []FCurve `yaml:"fcurves" toml:"fcurves"`
}

// FCurve animates one scalar component of a property path.
type FCurve struct {
	// DataPath is e.g. pose.bones["arm"].location.
	DataPath   string `yaml:"data_path" toml:"data_path"`
	ArrayIndex int    `yaml:"array_index" toml:"array_index"`
	// Extrapolation is CONSTANT or LINEAR; empty means CONSTANT.
	Extrapolation string     `yaml:"extrapolation" toml:"extrapolation"`
	Keyframes     []Keyframe `yaml:"keyframes" toml:"keyframes"`
}

// Keyframe is one control point of a curve. Points are (time, value).
type Keyframe struct {
	Co          [2]float32 `yaml:"co" toml:"co"`
	HandleLeft  [2]float32 `yaml:"handle_left" toml:"handle_left"`
	HandleRight [2]float32 `yaml:"handle_right" toml:"handle_right"`
	// Interpolation applies to the segment ending at this keyframe when
	// exported; empty means BEZIER.
	Interpolation string `yaml:"interpolation" toml:"interpolation"`
}

// Point returns the keyframe's (time, value) pair.
func (k *Keyframe) Point() math.Vec2 { return vec2(k.Co) }

// Left returns the left Bezier handle.
func (k *Keyframe) Left() math.Vec2 { return vec2(k.HandleLeft) }

// Right returns the right Bezier handle.
func (k *Keyframe) Right() math.Vec2 { return vec2(k.HandleRight) }

// Mode returns the interpolation mode, defaulting to BEZIER.
func (k *Keyframe) Mode() string {
	if k.Interpolation == "" {
		return InterpBezier
	}
	return k.Interpolation
}

// ExtrapolationMode returns the extrapolation mode, defaulting to CONSTANT.
func (c *FCurve) ExtrapolationMode() string {
	if c.Extrapolation == "" {
		return ExtrapConstant
	}
	return c.Extrapolation
}

// ActionsFor returns the actions a scene export of sceneName includes.
func (s *Scene) ActionsFor(sceneName string) []*Action {
	var out []*Action
	for _, a := range s.Actions {
		if a.Scene == "" || a.Scene == sceneName {
			out = append(out, a)
		}
	}
	return out
}
