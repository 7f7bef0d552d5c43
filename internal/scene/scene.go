// Package scene holds the explicit scene graph of the model: an arena of
// nodes with parent edges, the runtime state of every orbiting body, and the
// builder that turns a catalog into a graph.
package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/catalog"
)

// OrbitingBody is the runtime instance of a planet or satellite. Angle is
// its orbital phase; its spin lives on the Mesh node's Rotation.Y.
type OrbitingBody struct {
	Spec  *catalog.Body
	Host  *OrbitingBody
	Angle float64

	Frame  NodeID
	Mesh   NodeID
	Clouds NodeID
	Ring   NodeID
	Path   NodeID
}

func (b *OrbitingBody) Name() string { return b.Spec.Name }

// Star is the central body. It does not orbit.
type Star struct {
	Spec *catalog.Star
	Node NodeID
}

type Scene struct {
	Graph      *Graph
	Catalog    *catalog.Catalog
	Star       *Star
	Bodies     []*OrbitingBody
	Belts      []*Belt
	Background NodeID
	Home       *OrbitingBody

	interactive []NodeID
	byName      map[string]NodeID
	bodies      map[string]*OrbitingBody
}

// Interactive returns the pickable nodes: the star, satellites, interactive
// belts, then planets.
func (s *Scene) Interactive() []*Node {
	out := make([]*Node, 0, len(s.interactive))
	for _, id := range s.interactive {
		out = append(out, s.Graph.Node(id))
	}
	return out
}

// Find returns the primary node carrying name, or nil.
func (s *Scene) Find(name string) *Node {
	id, ok := s.byName[name]
	if !ok {
		return nil
	}
	return s.Graph.Node(id)
}

// Body returns the orbiting body called name, or nil.
func (s *Scene) Body(name string) *OrbitingBody { return s.bodies[name] }

// WorldPosition is the world-space center of the body's orbit frame.
func (s *Scene) WorldPosition(b *OrbitingBody) r3.Vec {
	return s.Graph.WorldPosition(b.Frame)
}

// Angles returns every body's orbital phase in Bodies order.
func (s *Scene) Angles() []float64 {
	out := make([]float64, len(s.Bodies))
	for i, b := range s.Bodies {
		out[i] = b.Angle
	}
	return out
}

// Spins returns every body's spin angle in Bodies order.
func (s *Scene) Spins() []float64 {
	out := make([]float64, len(s.Bodies))
	for i, b := range s.Bodies {
		out[i] = s.Graph.Node(b.Mesh).Transform.Rotation.Y
	}
	return out
}
