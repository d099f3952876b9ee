// Package shaders holds the procedural surface shaders of the orrery and the
// Kind tag that selects one per body.
package shaders

import (
	"fmt"
	"strings"

	"github.com/taigrr/orrery/pkg/render"
)

// Kind selects a procedural shader. The zero value draws flat color.
type Kind uint8

const (
	Flat Kind = iota
	Star
	Rocky
	GasGiant
	Ice
	Volcanic
	Ringed
	Moon
	Ring

	kindCount
)

var kindNames = [kindCount]string{
	Flat:     "flat",
	Star:     "star",
	Rocky:    "rocky",
	GasGiant: "gas-giant",
	Ice:      "ice",
	Volcanic: "volcanic",
	Ringed:   "ringed",
	Moon:     "moon",
	Ring:     "ring",
}

var kindLabels = [kindCount]string{
	Flat:     "Flat",
	Star:     "Star (Sun)",
	Rocky:    "Rocky Planet (Earth-like)",
	GasGiant: "Gas Giant (Jupiter-like)",
	Ice:      "Ice Planet",
	Volcanic: "Volcanic Planet",
	Ringed:   "Ringed Planet (Saturn-like)",
	Moon:     "Moon",
	Ring:     "Ring",
}

// table maps every Kind to its shader.
var table = [...]render.FragmentShader{
	Flat:     nil,
	Star:     StarShader,
	Rocky:    RockyShader,
	GasGiant: GasGiantShader,
	Ice:      IceShader,
	Volcanic: VolcanicShader,
	Ringed:   RingedShader,
	Moon:     MoonShader,
	Ring:     RingShader,
}

// A Kind added without a table entry leaves the table short, which makes one
// of these array lengths negative.
var (
	_ [len(table) - int(kindCount)]struct{}
	_ [int(kindCount) - len(table)]struct{}
)

// Lookup returns the shader for k, or nil for Flat and unknown kinds.
func Lookup(k Kind) render.FragmentShader {
	if k >= kindCount {
		return nil
	}
	return table[k]
}

// Kinds returns every Kind in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, kindCount)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Label is the human-readable body description shown in the HUD.
func (k Kind) Label() string {
	if k >= kindCount {
		return k.String()
	}
	return kindLabels[k]
}

// IsPlanet reports whether k is one of the six body categories a planet
// can take.
func (k Kind) IsPlanet() bool {
	return k >= Star && k <= Ringed
}

// ParseKind parses a kind name as produced by String. Underscores and case
// are ignored.
func ParseKind(s string) (Kind, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for k, name := range kindNames {
		if name == norm {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown shader kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("invalid shader kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so kinds can be named in
// YAML scene files.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
