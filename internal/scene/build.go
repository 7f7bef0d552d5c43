package scene

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/assets"
	"github.com/san-kum/orrery/internal/catalog"
)

// BackgroundRadius encloses the outermost belt with room to spare.
const BackgroundRadius = 5000.0

// TextureLoader accepts fire-and-forget texture requests. done must only be
// called on the frame goroutine.
type TextureLoader interface {
	Load(path string, done func(*assets.Texture))
}

type Options struct {
	// Rand draws initial phases and belt layouts. A time-seeded source is
	// used when nil.
	Rand   *rand.Rand
	Loader TextureLoader
	Logger logr.Logger
}

type builder struct {
	sc       *Scene
	g        *Graph
	rng      *rand.Rand
	loader   TextureLoader
	requests int
}

// Build constructs the scene for cat. The result is fully traversable and
// animatable on return; textures arrive later through opts.Loader.
func Build(cat *catalog.Catalog, opts Options) (*Scene, error) {
	if err := catalog.Validate(cat); err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	g := NewGraph()
	b := &builder{
		sc: &Scene{
			Graph:   g,
			Catalog: cat,
			byName:  map[string]NodeID{},
			bodies:  map[string]*OrbitingBody{},
		},
		g:      g,
		rng:    opts.Rand,
		loader: opts.Loader,
	}

	b.star(&cat.Star)

	planets := make([]*OrbitingBody, len(cat.Planets))
	for i := range cat.Planets {
		planets[i] = b.planet(&cat.Planets[i])
	}
	var satellites []*OrbitingBody
	for i, host := range planets {
		for j := range cat.Planets[i].Satellites {
			satellites = append(satellites, b.satellite(host, &cat.Planets[i].Satellites[j]))
		}
	}
	b.sc.Bodies = append(planets, satellites...)

	var belts []*Belt
	for i := range cat.Belts {
		belts = append(belts, b.belt(&cat.Belts[i]))
	}
	b.sc.Belts = belts

	b.background(cat.Background)

	// pick order: star, satellites, interactive belts, planets
	b.sc.interactive = append(b.sc.interactive, b.sc.Star.Node)
	for _, s := range satellites {
		b.sc.interactive = append(b.sc.interactive, s.Mesh)
	}
	for _, belt := range belts {
		if belt.Spec.Interactive {
			b.sc.interactive = append(b.sc.interactive, belt.Node)
		}
	}
	for _, p := range planets {
		b.sc.interactive = append(b.sc.interactive, p.Mesh)
	}

	b.sc.Home = b.sc.bodies[cat.Home]

	log.V(1).Info("scene built", "nodes", g.Len(), "bodies", len(b.sc.Bodies),
		"belts", len(belts), "textureRequests", b.requests)
	return b.sc, nil
}

func (b *builder) request(path string, apply func(*assets.Texture)) {
	if b.loader == nil || path == "" {
		return
	}
	b.requests++
	b.loader.Load(path, apply)
}

func (b *builder) bind(m *Material, slot Slot, path string) {
	b.request(path, func(tex *assets.Texture) { m.Set(slot, tex) })
}

func (b *builder) star(spec *catalog.Star) {
	m := newMaterial("#ffff00")
	m.Unlit = true
	info := spec.Info
	n := b.g.Add(0, Node{
		Name:        spec.Name,
		Kind:        Sphere,
		Radius:      spec.Radius,
		Material:    m,
		Interactive: true,
		Info:        &info,
	})
	b.bind(m, ColorMap, spec.Texture)
	b.sc.Star = &Star{Spec: spec, Node: n.ID}
	b.sc.byName[spec.Name] = n.ID
}

// orbit adds the frame, surface and optional shells of spec under parent.
func (b *builder) orbit(parent NodeID, spec *catalog.Body) *OrbitingBody {
	ob := &OrbitingBody{Spec: spec, Angle: b.rng.Float64() * 2 * math.Pi, Clouds: None, Ring: None}

	frame := b.g.Add(parent, Node{
		Name: spec.Name + "/orbit",
		Kind: Group,
		Transform: Transform{Position: r3.Vec{
			X: spec.Distance * math.Cos(ob.Angle),
			Z: spec.Distance * math.Sin(ob.Angle),
		}},
	})
	ob.Frame = frame.ID

	m := newMaterial("#aaaaaa")
	info := spec.Info
	mesh := Node{
		Name:        spec.Name,
		Kind:        Sphere,
		Radius:      spec.Radius,
		Material:    m,
		Interactive: true,
		Info:        &info,
	}
	if spec.AxialTilt != nil {
		mesh.Transform.Rotation.Z = *spec.AxialTilt * math.Pi / 180
	}
	ob.Mesh = b.g.Add(frame.ID, mesh).ID
	b.bind(m, ColorMap, spec.Textures.Color)
	b.bind(m, NormalMap, spec.Textures.Normal)
	b.bind(m, SpecularMap, spec.Textures.Specular)
	b.bind(m, EmissiveMap, spec.Textures.Emissive)

	if spec.Clouds != nil {
		cm := newMaterial("#ffffff")
		cm.Opacity = 0.8
		ob.Clouds = b.g.Add(frame.ID, Node{
			Name:     spec.Name + "/clouds",
			Kind:     Sphere,
			Radius:   spec.Radius * spec.Clouds.Scale,
			Material: cm,
		}).ID
		b.bind(cm, ColorMap, spec.Clouds.Texture)
	}

	if spec.Ring != nil {
		rm := newMaterial("#ffffff")
		rm.Opacity = 0.9
		ob.Ring = b.g.Add(frame.ID, Node{
			Name:      spec.Name + "/ring",
			Kind:      Ring,
			Transform: Transform{Rotation: r3.Vec{X: math.Pi / 2}},
			Inner:     spec.Radius * spec.Ring.Inner,
			Radius:    spec.Radius * spec.Ring.Outer,
			Material:  rm,
		}).ID
		b.request(spec.Ring.Texture, func(tex *assets.Texture) {
			rm.Set(ColorMap, tex)
			rm.Set(AlphaMap, tex)
		})
	}

	b.sc.byName[spec.Name] = ob.Mesh
	b.sc.bodies[spec.Name] = ob
	return ob
}

func (b *builder) planet(spec *catalog.Body) *OrbitingBody {
	ob := b.orbit(0, spec)
	ob.Path = b.path(0, spec)
	return ob
}

// satellite hangs spec below the host's frame. The orbital-plane tilt sits
// on an intermediate node so the satellite's own frame stays untilted.
func (b *builder) satellite(host *OrbitingBody, spec *catalog.Body) *OrbitingBody {
	tilt := b.g.Add(host.Frame, Node{
		Name:      spec.Name + "/tilt",
		Kind:      Group,
		Transform: Transform{Rotation: r3.Vec{Z: spec.OrbitTilt * math.Pi / 180}},
	})
	ob := b.orbit(tilt.ID, spec)
	ob.Host = host
	ob.Path = b.path(tilt.ID, spec)
	return ob
}

func (b *builder) path(parent NodeID, spec *catalog.Body) NodeID {
	m := newMaterial("#ffffff")
	m.Opacity = 0.3
	m.Unlit = true
	return b.g.Add(parent, Node{
		Name:     spec.Name + "/path",
		Kind:     Path,
		Radius:   spec.Distance,
		Material: m,
	}).ID
}

func (b *builder) belt(spec *catalog.BeltSpec) *Belt {
	points, colors := scatter(spec, b.rng)
	n := Node{
		Name:        spec.Name,
		Kind:        Points,
		Radius:      spec.Outer,
		Inner:       spec.Inner,
		Points:      points,
		Colors:      colors,
		Material:    newMaterial(spec.Color),
		Interactive: spec.Interactive,
	}
	if spec.Info != nil {
		info := *spec.Info
		n.Info = &info
	}
	id := b.g.Add(0, n).ID
	b.sc.byName[spec.Name] = id
	return &Belt{Spec: spec, Node: id}
}

func (b *builder) background(texture string) {
	m := newMaterial("#000000")
	m.Unlit = true
	n := b.g.Add(0, Node{
		Name:     "background",
		Kind:     Sphere,
		Radius:   BackgroundRadius,
		Material: m,
	})
	b.bind(m, ColorMap, texture)
	b.sc.Background = n.ID
}
