package catalog

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
}

func TestDefaultReturnsFreshCopy(t *testing.T) {
	a := Default()
	a.Planets[0].Distance = 999
	a.Planets[2].Satellites[0].Name = "changed"

	b := Default()
	if b.Planets[0].Distance == 999 {
		t.Error("planet slice shared between calls")
	}
	if b.Planets[2].Satellites[0].Name != "Moon" {
		t.Error("satellite slice shared between calls")
	}
}

func TestDefaultContents(t *testing.T) {
	c := Default()
	if len(c.Planets) != 8 {
		t.Fatalf("expected 8 planets, got %d", len(c.Planets))
	}
	if c.Planets[0].Name != "Mercury" || c.Planets[7].Name != "Neptune" {
		t.Errorf("unexpected planet order: %s..%s", c.Planets[0].Name, c.Planets[7].Name)
	}

	earth := c.Body("Earth")
	if earth == nil {
		t.Fatal("earth missing")
	}
	if earth.AxialTilt == nil || *earth.AxialTilt != 23.44 {
		t.Errorf("expected earth tilt 23.44, got %v", earth.AxialTilt)
	}
	if earth.Clouds == nil {
		t.Error("earth should carry a cloud shell")
	}
	if earth.Ring != nil {
		t.Error("earth should not have a ring")
	}

	if c.Body("Saturn").Ring == nil {
		t.Error("saturn should have a ring")
	}
	if c.Body("Mars").AxialTilt != nil {
		t.Error("mars tilt should be absent")
	}

	moon := c.Body("Moon")
	if moon == nil || moon.OrbitTilt != 5.145 {
		t.Errorf("unexpected moon entry: %+v", moon)
	}
}

func TestRetrogradeBodies(t *testing.T) {
	c := Default()
	for _, name := range []string{"Venus", "Uranus"} {
		if c.Body(name).RotationPeriod >= 0 {
			t.Errorf("%s should spin retrograde", name)
		}
	}
	if c.Body("Earth").RotationPeriod <= 0 {
		t.Error("earth should spin prograde")
	}
}

func TestLookup(t *testing.T) {
	c := Default()
	tests := []struct {
		name  string
		found bool
	}{
		{"Sun", true},
		{"Earth", true},
		{"Moon", true},
		{"Asteroid Belt", true},
		{"Kuiper Belt", false},
		{"Pluto", false},
	}

	for _, tt := range tests {
		info, ok := c.Lookup(tt.name)
		if ok != tt.found {
			t.Errorf("Lookup(%q) found = %v, want %v", tt.name, ok, tt.found)
			continue
		}
		if ok && info.Name != tt.name {
			t.Errorf("Lookup(%q) returned %q", tt.name, info.Name)
		}
	}
}

func TestWalkVisitsSatellites(t *testing.T) {
	c := Default()
	var names []string
	parents := map[string]string{}
	c.Walk(func(b, parent *Body) {
		names = append(names, b.Name)
		if parent != nil {
			parents[b.Name] = parent.Name
		}
	})
	if len(names) != 9 {
		t.Errorf("expected 9 bodies, got %d: %v", len(names), names)
	}
	if parents["Moon"] != "Earth" {
		t.Errorf("expected moon parent earth, got %q", parents["Moon"])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Catalog)
		want   error
	}{
		{"zero orbital period", func(c *Catalog) { c.Planets[0].OrbitalPeriod = 0 }, ErrZeroPeriod},
		{"zero rotation period", func(c *Catalog) { c.Planets[1].RotationPeriod = 0 }, ErrZeroPeriod},
		{"zero star rotation", func(c *Catalog) { c.Star.RotationPeriod = 0 }, ErrZeroPeriod},
		{"negative radius", func(c *Catalog) { c.Planets[3].Radius = -1 }, ErrNonPositive},
		{"zero distance", func(c *Catalog) { c.Planets[4].Distance = 0 }, ErrNonPositive},
		{"satellite zero period", func(c *Catalog) { c.Planets[2].Satellites[0].OrbitalPeriod = 0 }, ErrZeroPeriod},
		{"duplicate", func(c *Catalog) { c.Planets[1].Name = "Mercury" }, ErrDuplicateName},
		{"inverted ring", func(c *Catalog) { c.Planets[5].Ring.Inner = 3 }, ErrBadRing},
		{"empty belt", func(c *Catalog) { c.Belts[0].Count = 0 }, ErrBadBelt},
		{"unknown home", func(c *Catalog) { c.Home = "Vulcan" }, ErrUnknownHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := Validate(c)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := Save(path, Default()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(c.Planets) != 8 {
		t.Errorf("expected 8 planets, got %d", len(c.Planets))
	}
	if c.Body("Saturn").Ring == nil {
		t.Error("ring lost in round trip")
	}
	if c.Body("Mars").AxialTilt != nil {
		t.Error("absent tilt became present")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
