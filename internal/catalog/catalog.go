package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	// ErrZeroPeriod indicates an orbital or rotation period of zero.
	ErrZeroPeriod = errors.New("catalog: period must be non-zero")

	// ErrNonPositive indicates a radius or distance that is not strictly positive.
	ErrNonPositive = errors.New("catalog: radius and distance must be positive")

	// ErrDuplicateName indicates two entries share a name.
	ErrDuplicateName = errors.New("catalog: duplicate body name")

	// ErrBadRing indicates a ring whose inner edge is not inside its outer edge.
	ErrBadRing = errors.New("catalog: ring inner radius must be below outer radius")

	// ErrBadBelt indicates a belt with an empty annulus or no particles.
	ErrBadBelt = errors.New("catalog: invalid belt")

	// ErrUnknownHome indicates the home body is not an orbiting body of the catalog.
	ErrUnknownHome = errors.New("catalog: unknown home body")
)

// Validate checks every invariant kinematics and scene construction rely on.
func Validate(c *Catalog) error {
	seen := map[string]bool{}
	claim := func(name string) error {
		if seen[name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		seen[name] = true
		return nil
	}

	if c.Star.Radius <= 0 {
		return fmt.Errorf("%s: %w", c.Star.Name, ErrNonPositive)
	}
	if c.Star.RotationPeriod == 0 {
		return fmt.Errorf("%s: %w", c.Star.Name, ErrZeroPeriod)
	}
	if err := claim(c.Star.Name); err != nil {
		return err
	}

	var check func(b *Body) error
	check = func(b *Body) error {
		if b.OrbitalPeriod == 0 || b.RotationPeriod == 0 {
			return fmt.Errorf("%s: %w", b.Name, ErrZeroPeriod)
		}
		if b.Radius <= 0 || b.Distance <= 0 {
			return fmt.Errorf("%s: %w", b.Name, ErrNonPositive)
		}
		if b.Ring != nil && (b.Ring.Inner <= 0 || b.Ring.Inner >= b.Ring.Outer) {
			return fmt.Errorf("%s: %w", b.Name, ErrBadRing)
		}
		if b.Clouds != nil && b.Clouds.Scale <= 0 {
			return fmt.Errorf("%s clouds: %w", b.Name, ErrNonPositive)
		}
		if err := claim(b.Name); err != nil {
			return err
		}
		for i := range b.Satellites {
			if err := check(&b.Satellites[i]); err != nil {
				return err
			}
		}
		return nil
	}
	for i := range c.Planets {
		if err := check(&c.Planets[i]); err != nil {
			return err
		}
	}

	for _, belt := range c.Belts {
		if belt.Inner <= 0 || belt.Inner >= belt.Outer || belt.Count <= 0 {
			return fmt.Errorf("%s: %w", belt.Name, ErrBadBelt)
		}
		if err := claim(belt.Name); err != nil {
			return err
		}
	}

	if c.Body(c.Home) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownHome, c.Home)
	}
	return nil
}

// Body finds an orbiting body (planet or satellite) by name.
func (c *Catalog) Body(name string) *Body {
	var find func(bodies []Body) *Body
	find = func(bodies []Body) *Body {
		for i := range bodies {
			if bodies[i].Name == name {
				return &bodies[i]
			}
			if b := find(bodies[i].Satellites); b != nil {
				return b
			}
		}
		return nil
	}
	return find(c.Planets)
}

// Lookup returns the display metadata of any named entry.
func (c *Catalog) Lookup(name string) (Info, bool) {
	if c.Star.Name == name {
		return c.Star.Info, true
	}
	if b := c.Body(name); b != nil {
		return b.Info, true
	}
	for _, belt := range c.Belts {
		if belt.Name == name && belt.Info != nil {
			return *belt.Info, true
		}
	}
	return Info{}, false
}

// Walk visits every orbiting body depth-first with its parent (nil for planets).
func (c *Catalog) Walk(fn func(b, parent *Body)) {
	var walk func(bodies []Body, parent *Body)
	walk = func(bodies []Body, parent *Body) {
		for i := range bodies {
			fn(&bodies[i], parent)
			walk(bodies[i].Satellites, &bodies[i])
		}
	}
	walk(c.Planets, nil)
}

// Load reads a catalog from a YAML file and validates it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	if c.Home == "" {
		c.Home = "Earth"
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the catalog as YAML.
func Save(path string, c *Catalog) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
