package scene

import (
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/catalog"
)

// NodeID indexes a node in its Graph.
type NodeID int

// None marks an absent node reference.
const None NodeID = -1

type Kind int

const (
	Group Kind = iota
	Sphere
	Ring
	Points
	Path
)

func (k Kind) String() string {
	switch k {
	case Group:
		return "group"
	case Sphere:
		return "sphere"
	case Ring:
		return "ring"
	case Points:
		return "points"
	case Path:
		return "path"
	default:
		return "unknown"
	}
}

// Transform is a node's placement relative to its parent. Rotation holds
// Euler angles in radians, applied Z first, then Y, then X.
type Transform struct {
	Position r3.Vec
	Rotation r3.Vec
	Scale    float64
}

// Frame is a resolved rigid transform with uniform scale.
type Frame struct {
	Origin   r3.Vec
	Rotation r3.Rotation
	Scale    float64
}

// Identity is the frame of the scene root.
var Identity = Frame{Rotation: r3.Rotation{Real: 1}, Scale: 1}

// Apply maps a point from the frame's local space into its parent space.
func (f Frame) Apply(p r3.Vec) r3.Vec {
	return r3.Add(f.Origin, f.Rotation.Rotate(r3.Scale(f.Scale, p)))
}

// Compose returns the frame that first applies local, then f.
func (f Frame) Compose(local Frame) Frame {
	return Frame{
		Origin:   f.Apply(local.Origin),
		Rotation: r3.Rotation(quat.Mul(quat.Number(f.Rotation), quat.Number(local.Rotation))),
		Scale:    f.Scale * local.Scale,
	}
}

// Local resolves the transform into a frame.
func (t Transform) Local() Frame {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	rx := r3.NewRotation(t.Rotation.X, r3.Vec{X: 1})
	ry := r3.NewRotation(t.Rotation.Y, r3.Vec{Y: 1})
	rz := r3.NewRotation(t.Rotation.Z, r3.Vec{Z: 1})
	q := quat.Mul(quat.Mul(quat.Number(rx), quat.Number(ry)), quat.Number(rz))
	return Frame{Origin: t.Position, Rotation: r3.Rotation(q), Scale: scale}
}

type Node struct {
	ID       NodeID
	Name     string
	Kind     Kind
	Parent   NodeID
	Children []NodeID

	Transform Transform

	// Radius is the sphere radius, the path radius, or the outer ring edge.
	Radius float64
	// Inner is the inner ring edge.
	Inner float64

	Points []r3.Vec
	Colors []colorful.Color

	Material    *Material
	Interactive bool
	Info        *catalog.Info
}

// Graph is an arena of nodes. Node 0 is the root.
type Graph struct {
	nodes []*Node
}

func NewGraph() *Graph {
	return &Graph{nodes: []*Node{{ID: 0, Name: "root", Kind: Group, Parent: None}}}
}

func (g *Graph) Root() *Node { return g.nodes[0] }
func (g *Graph) Len() int    { return len(g.nodes) }

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// Add appends n as the last child of parent and returns the stored node.
func (g *Graph) Add(parent NodeID, n Node) *Node {
	p := g.Node(parent)
	if p == nil {
		p = g.Root()
	}
	n.ID = NodeID(len(g.nodes))
	n.Parent = p.ID
	n.Children = nil
	if n.Transform.Scale == 0 {
		n.Transform.Scale = 1
	}
	stored := &n
	g.nodes = append(g.nodes, stored)
	p.Children = append(p.Children, stored.ID)
	return stored
}

// World composes the frames from the root down to id.
func (g *Graph) World(id NodeID) Frame {
	var chain []NodeID
	for n := g.Node(id); n != nil; n = g.Node(n.Parent) {
		chain = append(chain, n.ID)
	}
	f := Identity
	for i := len(chain) - 1; i >= 0; i-- {
		f = f.Compose(g.nodes[chain[i]].Transform.Local())
	}
	return f
}

func (g *Graph) WorldPosition(id NodeID) r3.Vec { return g.World(id).Origin }

// Walk visits every node depth-first, parents before children, with the
// node's world frame.
func (g *Graph) Walk(fn func(n *Node, world Frame)) {
	var walk func(id NodeID, parent Frame)
	walk = func(id NodeID, parent Frame) {
		n := g.nodes[id]
		world := parent.Compose(n.Transform.Local())
		fn(n, world)
		for _, c := range n.Children {
			walk(c, world)
		}
	}
	walk(0, Identity)
}
