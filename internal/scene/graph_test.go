package scene

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func near(a, b r3.Vec) bool {
	return r3.Norm(r3.Sub(a, b)) < 1e-9
}

func TestTransformEulerOrder(t *testing.T) {
	f := Transform{Rotation: r3.Vec{X: math.Pi / 2}}.Local()
	if got := f.Apply(r3.Vec{Y: 1}); !near(got, r3.Vec{Z: 1}) {
		t.Errorf("X rotation: expected +Z, got %v", got)
	}

	// Z is applied before X.
	f = Transform{Rotation: r3.Vec{X: math.Pi / 2, Z: math.Pi / 2}}.Local()
	if got := f.Apply(r3.Vec{X: 1}); !near(got, r3.Vec{Z: 1}) {
		t.Errorf("ZX rotation: expected +Z, got %v", got)
	}
}

func TestWorldComposition(t *testing.T) {
	g := NewGraph()
	parent := g.Add(0, Node{
		Name:      "parent",
		Transform: Transform{Position: r3.Vec{X: 10}, Rotation: r3.Vec{Y: math.Pi / 2}},
	})
	child := g.Add(parent.ID, Node{
		Name:      "child",
		Transform: Transform{Position: r3.Vec{X: 1}},
	})

	if got := g.WorldPosition(child.ID); !near(got, r3.Vec{X: 10, Z: -1}) {
		t.Errorf("expected (10,0,-1), got %v", got)
	}

	parent.Transform.Position = r3.Vec{Z: 5}
	if got := g.WorldPosition(child.ID); !near(got, r3.Vec{Z: 4}) {
		t.Errorf("child did not follow parent: %v", got)
	}
}

func TestScaleComposes(t *testing.T) {
	g := NewGraph()
	a := g.Add(0, Node{Transform: Transform{Scale: 2}})
	b := g.Add(a.ID, Node{Transform: Transform{Position: r3.Vec{Y: 3}}})

	w := g.World(b.ID)
	if !near(w.Origin, r3.Vec{Y: 6}) {
		t.Errorf("expected (0,6,0), got %v", w.Origin)
	}
	if w.Scale != 2 {
		t.Errorf("expected scale 2, got %f", w.Scale)
	}
}

func TestGraphEdges(t *testing.T) {
	g := NewGraph()
	a := g.Add(0, Node{Name: "a"})
	b := g.Add(a.ID, Node{Name: "b"})
	orphan := g.Add(NodeID(99), Node{Name: "orphan"})

	if b.Parent != a.ID {
		t.Errorf("expected parent %d, got %d", a.ID, b.Parent)
	}
	if len(a.Children) != 1 || a.Children[0] != b.ID {
		t.Errorf("unexpected children %v", a.Children)
	}
	if orphan.Parent != 0 {
		t.Errorf("unknown parent should fall back to root, got %d", orphan.Parent)
	}
	if g.Node(None) != nil || g.Node(NodeID(g.Len())) != nil {
		t.Error("out of range ids should return nil")
	}
}

func TestWalkVisitsParentsFirst(t *testing.T) {
	g := NewGraph()
	a := g.Add(0, Node{Name: "a", Transform: Transform{Position: r3.Vec{X: 1}}})
	g.Add(a.ID, Node{Name: "b", Transform: Transform{Position: r3.Vec{X: 1}}})

	var order []string
	var last r3.Vec
	g.Walk(func(n *Node, world Frame) {
		order = append(order, n.Name)
		last = world.Origin
	})

	if len(order) != 3 || order[0] != "root" || order[2] != "b" {
		t.Errorf("unexpected walk order %v", order)
	}
	if !near(last, r3.Vec{X: 2}) {
		t.Errorf("expected b at (2,0,0), got %v", last)
	}
}
