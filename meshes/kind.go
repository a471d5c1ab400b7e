package meshes

import (
	"errors"
	"fmt"
)

// Kind is a primitive mesh shape.
type Kind int

const (
	Plane Kind = iota
	Box
	Cylinder
	Cone
	Torus
	HalfTorus
	Prism
	Pyramid3
	Pyramid4
	TaperedCylinder
)

var ErrUnknownKind = errors.New("unknown mesh kind")

var kindNames = [...]string{
	Plane:           "plane",
	Box:             "box",
	Cylinder:        "cylinder",
	Cone:            "cone",
	Torus:           "torus",
	HalfTorus:       "half_torus",
	Prism:           "prism",
	Pyramid3:        "pyramid3",
	Pyramid4:        "pyramid4",
	TaperedCylinder: "tapered_cylinder",
}

// Kinds lists every mesh kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a kind name such as "half_torus" to its Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Part is a drawable section of a mesh. Shapes without caps put everything
// in PartSides.
type Part uint8

const (
	PartSides Part = iota
	PartTop
	PartBottom
)

// Parts selects which sections a draw call renders.
type Parts struct {
	Top    bool `yaml:"top"`
	Bottom bool `yaml:"bottom"`
	Sides  bool `yaml:"sides"`
}

var AllParts = Parts{Top: true, Bottom: true, Sides: true}

func (p Parts) Includes(part Part) bool {
	switch part {
	case PartTop:
		return p.Top
	case PartBottom:
		return p.Bottom
	default:
		return p.Sides
	}
}

// Library loads mesh kinds once and draws them with whatever transform,
// material and texture state is currently bound.
type Library interface {
	// Load prepares kind for drawing. Loading a kind twice is a no-op.
	Load(kind Kind) error

	// Draw renders the selected parts of a loaded kind.
	Draw(kind Kind, parts Parts)

	// Release frees every loaded mesh.
	Release()
}
