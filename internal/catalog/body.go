package catalog

const (
	// EarthRadius is the reference radius every body's Radius is scaled by.
	EarthRadius = 1.0
	// AUScale converts astronomical units into scene units.
	AUScale = 50.0
)

// Info is the descriptive, display-only metadata attached to a pickable node.
// Kinematics never reads it.
type Info struct {
	Name           string `yaml:"name" json:"name"`
	Diameter       string `yaml:"diameter" json:"diameter"`
	DistSun        string `yaml:"dist_sun" json:"dist_sun"`
	OrbPeriod      string `yaml:"orb_period" json:"orb_period"`
	RotPeriod      string `yaml:"rot_period" json:"rot_period"`
	Moons          string `yaml:"moons" json:"moons"`
	FunFact        string `yaml:"fun_fact" json:"fun_fact"`
	SizeComparison string `yaml:"size_comparison" json:"size_comparison"`
	MassComparison string `yaml:"mass_comparison" json:"mass_comparison"`
}

// Textures names the image files used by a body's surface material.
// Empty strings mean the map is absent.
type Textures struct {
	Color    string `yaml:"color"`
	Normal   string `yaml:"normal,omitempty"`
	Specular string `yaml:"specular,omitempty"`
	Emissive string `yaml:"emissive,omitempty"`
}

// Ring is a flat annulus around the body's equator, in body radii.
type Ring struct {
	Inner   float64 `yaml:"inner"`
	Outer   float64 `yaml:"outer"`
	Texture string  `yaml:"texture,omitempty"`
}

// Shell is a slightly larger concentric sphere (cloud layer).
type Shell struct {
	Scale   float64 `yaml:"scale"`
	Texture string  `yaml:"texture,omitempty"`
}

// Body holds the static parameters of one orbiting body.
//
// OrbitalPeriod is in Earth years and RotationPeriod in hours; a negative
// RotationPeriod spins retrograde. Optional features are nil when absent.
type Body struct {
	Name           string   `yaml:"name"`
	Radius         float64  `yaml:"radius"`
	Distance       float64  `yaml:"distance"`
	OrbitalPeriod  float64  `yaml:"orbital_period"`
	RotationPeriod float64  `yaml:"rotation_period"`
	AxialTilt      *float64 `yaml:"axial_tilt,omitempty"`
	Textures       Textures `yaml:"textures"`
	Ring           *Ring    `yaml:"ring,omitempty"`
	Clouds         *Shell   `yaml:"clouds,omitempty"`
	// OrbitTilt tilts the orbital plane relative to the parent frame (degrees).
	// Only meaningful for satellites.
	OrbitTilt  float64 `yaml:"orbit_tilt,omitempty"`
	Satellites []Body  `yaml:"satellites,omitempty"`
	Info       Info    `yaml:"info"`
}

// Star is the central, non-orbiting body.
type Star struct {
	Name           string  `yaml:"name"`
	Radius         float64 `yaml:"radius"`
	RotationPeriod float64 `yaml:"rotation_period"`
	Texture        string  `yaml:"texture"`
	Info           Info    `yaml:"info"`
}

// BeltSpec describes a particle belt sampled once at build time. Inner and
// Outer are scene units, Jitter is the vertical spread in AU and Rate the
// bulk rotation in radians per scaled second.
type BeltSpec struct {
	Name        string  `yaml:"name"`
	Inner       float64 `yaml:"inner"`
	Outer       float64 `yaml:"outer"`
	Count       int     `yaml:"count"`
	Jitter      float64 `yaml:"jitter"`
	Color       string  `yaml:"color"`
	Rate        float64 `yaml:"rate"`
	Interactive bool    `yaml:"interactive"`
	Info        *Info   `yaml:"info,omitempty"`
}

// Catalog is the complete static description of a system.
type Catalog struct {
	Star       Star       `yaml:"star"`
	Planets    []Body     `yaml:"planets"`
	Belts      []BeltSpec `yaml:"belts"`
	Background string     `yaml:"background"`
	Home       string     `yaml:"home"`
}

func tilt(deg float64) *float64 { return &deg }
