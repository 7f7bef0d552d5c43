package scene

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orrery/internal/assets"
)

// Slot names a texture binding on a material.
type Slot int

const (
	ColorMap Slot = iota
	NormalMap
	SpecularMap
	EmissiveMap
	AlphaMap
	slotCount
)

// Material is the visual state of a node. Maps start empty and are filled
// in by texture completions; until then renderers draw Base.
type Material struct {
	Base     colorful.Color
	Opacity  float64
	Unlit    bool
	Maps     [slotCount]*assets.Texture
	Revision int
}

func newMaterial(hex string) *Material {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{R: 0.67, G: 0.67, B: 0.67}
	}
	return &Material{Base: c, Opacity: 1}
}

// Set binds tex to slot. Revision changes on every call so renderers can
// detect materials that need re-uploading.
func (m *Material) Set(slot Slot, tex *assets.Texture) {
	m.Maps[slot] = tex
	m.Revision++
}

func (m *Material) Map(slot Slot) *assets.Texture { return m.Maps[slot] }

// Textured reports whether the color map has arrived.
func (m *Material) Textured() bool { return m.Maps[ColorMap] != nil }

// Color is the single color that best represents the material now.
func (m *Material) Color() colorful.Color {
	if tex := m.Maps[ColorMap]; tex != nil {
		return tex.Mean
	}
	return m.Base
}
