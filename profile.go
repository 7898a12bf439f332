package ember

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Profile is a declarative emission profile, usually loaded from YAML.
// Angles are in degrees here and converted to radians by Config.
//
//	profiles:
//	  - name: smoke
//	    capacity: 60
//	    spawnRate: [0.05, 0.12]
//	    direction: [0, -1]
//	    noiseAngle: [-25, 25]
//	    life: [2.5, 4]
//	    startScale: [8, 14]
//	    endScale: [28, 50]
//	    startColors: ["#777777aa", "#888888cc"]
//	    endColors: ["#44444800", "#40404800"]
//	    speed: [15, 45]
//	    mass: 1
//	    wind: [12, 0]
//	    damping: -4
//	    ease: outQuad
type Profile struct {
	Name     string  `yaml:"name"`
	Capacity int     `yaml:"capacity"`
	Seed     *uint64 `yaml:"seed"`

	SpawnRate   Range   `yaml:"spawnRate"`
	Direction   Vec2    `yaml:"direction"`
	NoiseAngle  Range   `yaml:"noiseAngle"`
	Life        Range   `yaml:"life"`
	StartScale  Range   `yaml:"startScale"`
	EndScale    Range   `yaml:"endScale"`
	StartColors []Color `yaml:"startColors"`
	EndColors   []Color `yaml:"endColors"`
	Speed       Range   `yaml:"speed"`
	Mass        Range   `yaml:"mass"`
	Spin        Range   `yaml:"spin"`
	Rotation    Range   `yaml:"rotation"`

	AlignRotation bool `yaml:"alignRotation"`

	Forces `yaml:",inline"`

	BoxX       Range   `yaml:"boxX"`
	BoxY       Range   `yaml:"boxY"`
	WorldSpace bool    `yaml:"worldSpace"`
	Duration   float64 `yaml:"duration"`
	Paused     bool    `yaml:"paused"`
	Blend      string  `yaml:"blend"`
	Ease       string  `yaml:"ease"`

	Sprite SpriteProfile `yaml:"sprite"`
}

// SpriteProfile is the YAML shape of a particle's Sprite.
type SpriteProfile struct {
	Frame    int     `yaml:"frame"`
	Animated bool    `yaml:"animated"`
	Origin   Vec2    `yaml:"origin"`
	Depth    float32 `yaml:"depth"`
	FlipX    bool    `yaml:"flipX"`
	FlipY    bool    `yaml:"flipY"`
}

// defaultProfile holds the values a profile gets for omitted keys.
func defaultProfile() Profile {
	return Profile{
		Capacity:    64,
		SpawnRate:   Fixed(0.1),
		Direction:   Vec2{0, -1},
		Life:        Fixed(1),
		StartScale:  Fixed(1),
		EndScale:    Fixed(1),
		StartColors: []Color{ColorWhite},
		EndColors:   []Color{ColorWhite},
		Speed:       Fixed(50),
		Mass:        Fixed(1),
	}
}

var easeFuncs = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"inExpo":     ease.InExpo,
	"outExpo":    ease.OutExpo,
}

var blendModes = map[string]BlendMode{
	"":         BlendNormal,
	"normal":   BlendNormal,
	"add":      BlendAdd,
	"multiply": BlendMultiply,
	"screen":   BlendScreen,
	"none":     BlendNone,
}

// UnmarshalYAML fills omitted keys from the defaults and rejects unknown
// ease and blend names.
func (p *Profile) UnmarshalYAML(node *yaml.Node) error {
	type rawProfile Profile
	raw := rawProfile(defaultProfile())
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*p = Profile(raw)
	if _, ok := easeFuncs[p.Ease]; p.Ease != "" && !ok {
		return fmt.Errorf("line %d: profile %q: unknown ease %q", node.Line, p.Name, p.Ease)
	}
	if _, ok := blendModes[p.Blend]; !ok {
		return fmt.Errorf("line %d: profile %q: unknown blend %q", node.Line, p.Name, p.Blend)
	}
	if len(p.StartColors) == 0 || len(p.StartColors) > 2 {
		return fmt.Errorf("line %d: profile %q: startColors needs 1 or 2 colors", node.Line, p.Name)
	}
	if len(p.EndColors) == 0 || len(p.EndColors) > 2 {
		return fmt.Errorf("line %d: profile %q: endColors needs 1 or 2 colors", node.Line, p.Name)
	}
	return nil
}

// Config converts the profile into an EmitterConfig drawing from sheet.
// A nil rng uses the profile seed when set, else a random seed.
func (p *Profile) Config(sheet *SpriteSheet, rng RandSource) EmitterConfig {
	if rng == nil && p.Seed != nil {
		rng = NewRand(*p.Seed)
	}
	var flip FlipFlags
	if p.Sprite.FlipX {
		flip |= FlipHorizontal
	}
	if p.Sprite.FlipY {
		flip |= FlipVertical
	}
	sc1, sc2 := colorPair(p.StartColors)
	ec1, ec2 := colorPair(p.EndColors)
	return EmitterConfig{
		Capacity: p.Capacity,
		Rand:     rng,
		Sprite: Sprite{
			Sheet:    sheet,
			Frame:    p.Sprite.Frame,
			Animated: p.Sprite.Animated,
			Origin:   p.Sprite.Origin,
			Scale:    1,
			Flip:     flip,
			Depth:    p.Sprite.Depth,
		},
		SpawnRate:     p.SpawnRate,
		Direction:     p.Direction,
		NoiseAngle:    degrees(p.NoiseAngle),
		Life:          p.Life,
		StartScale:    p.StartScale,
		EndScale:      p.EndScale,
		StartColor1:   sc1,
		StartColor2:   sc2,
		EndColor1:     ec1,
		EndColor2:     ec2,
		Speed:         p.Speed,
		Mass:          p.Mass,
		Spin:          degrees(p.Spin),
		Rotation:      degrees(p.Rotation),
		AlignRotation: p.AlignRotation,
		Ease:          easeFuncs[p.Ease],
		Forces:        p.Forces,
		WorldSpace:    p.WorldSpace,
		BoxX:          p.BoxX,
		BoxY:          p.BoxY,
		Paused:        p.Paused,
		Duration:      p.Duration,
		BlendMode:     blendModes[p.Blend],
	}
}

// NewEmitter builds an emitter from the profile, placed at position.
func (p *Profile) NewEmitter(position Vec2, sheet *SpriteSheet, rng RandSource) *Emitter {
	cfg := p.Config(sheet, rng)
	cfg.Position = position
	return NewEmitter(cfg)
}

func colorPair(cs []Color) (Color, Color) {
	if len(cs) == 1 {
		return cs[0], cs[0]
	}
	return cs[0], cs[1]
}

func degrees(r Range) Range {
	return Range{r.Min * math.Pi / 180, r.Max * math.Pi / 180}
}

// ProfileSet is a named collection of profiles in file order.
type ProfileSet struct {
	profiles []Profile
	byName   map[string]int
}

// ParseProfiles parses a YAML document with a top-level "profiles" list.
func ParseProfiles(data []byte) (*ProfileSet, error) {
	var doc struct {
		Profiles []Profile `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	if len(doc.Profiles) == 0 {
		return nil, errors.New("parse profiles: no profiles")
	}
	set := &ProfileSet{
		profiles: doc.Profiles,
		byName:   make(map[string]int, len(doc.Profiles)),
	}
	for i := range doc.Profiles {
		name := doc.Profiles[i].Name
		if name == "" {
			return nil, fmt.Errorf("parse profiles: profile %d has no name", i)
		}
		if _, dup := set.byName[name]; dup {
			return nil, fmt.Errorf("parse profiles: duplicate profile %q", name)
		}
		set.byName[name] = i
	}
	return set, nil
}

// LoadProfiles reads and parses a profile file from fsys.
func LoadProfiles(fsys fs.FS, path string) (*ProfileSet, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	return ParseProfiles(data)
}

// Get returns the profile with the given name.
func (s *ProfileSet) Get(name string) (*Profile, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return &s.profiles[i], true
}

// Names returns the profile names in file order.
func (s *ProfileSet) Names() []string {
	names := make([]string, len(s.profiles))
	for i := range s.profiles {
		names[i] = s.profiles[i].Name
	}
	return names
}

// Len returns the number of profiles.
func (s *ProfileSet) Len() int {
	return len(s.profiles)
}

// UnmarshalYAML accepts a scalar (fixed value), a [min, max] pair, a
// one-element list, or a {min, max} map.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		*r = Fixed(v)
		return nil
	case yaml.SequenceNode:
		var vs []float64
		if err := node.Decode(&vs); err != nil {
			return err
		}
		switch len(vs) {
		case 1:
			*r = Fixed(vs[0])
		case 2:
			*r = Range{vs[0], vs[1]}
		default:
			return fmt.Errorf("line %d: range needs 1 or 2 values, got %d", node.Line, len(vs))
		}
		return nil
	case yaml.MappingNode:
		var m struct {
			Min float64 `yaml:"min"`
			Max float64 `yaml:"max"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		*r = Range{m.Min, m.Max}
		return nil
	}
	return fmt.Errorf("line %d: cannot decode range", node.Line)
}

// UnmarshalYAML accepts [x, y] or {x, y}.
func (v *Vec2) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var vs []float64
		if err := node.Decode(&vs); err != nil {
			return err
		}
		if len(vs) != 2 {
			return fmt.Errorf("line %d: vector needs 2 values, got %d", node.Line, len(vs))
		}
		*v = Vec2{vs[0], vs[1]}
		return nil
	case yaml.MappingNode:
		var m struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		*v = Vec2{m.X, m.Y}
		return nil
	}
	return fmt.Errorf("line %d: cannot decode vector", node.Line)
}

// UnmarshalYAML accepts "#rrggbb", "#rrggbbaa", [r, g, b] or [r, g, b, a]
// with components in [0, 1], or {r, g, b, a}. Alpha defaults to 1.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := parseHexColor(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*c = parsed
		return nil
	case yaml.SequenceNode:
		var vs []float64
		if err := node.Decode(&vs); err != nil {
			return err
		}
		switch len(vs) {
		case 3:
			*c = Color{vs[0], vs[1], vs[2], 1}
		case 4:
			*c = Color{vs[0], vs[1], vs[2], vs[3]}
		default:
			return fmt.Errorf("line %d: color needs 3 or 4 values, got %d", node.Line, len(vs))
		}
		return nil
	case yaml.MappingNode:
		m := struct {
			R float64 `yaml:"r"`
			G float64 `yaml:"g"`
			B float64 `yaml:"b"`
			A float64 `yaml:"a"`
		}{A: 1}
		if err := node.Decode(&m); err != nil {
			return err
		}
		*c = Color{m.R, m.G, m.B, m.A}
		return nil
	}
	return fmt.Errorf("line %d: cannot decode color", node.Line)
}

func parseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		n = n<<8 | 0xff
	}
	return Color{
		R: float64(n>>24&0xff) / 255,
		G: float64(n>>16&0xff) / 255,
		B: float64(n>>8&0xff) / 255,
		A: float64(n&0xff) / 255,
	}, nil
}
