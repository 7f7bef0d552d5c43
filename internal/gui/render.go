package gui

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/assets"
	"github.com/san-kum/orrery/internal/scene"
)

const ringBands = 12

// quarter turn about X, taking the XY plane raylib draws circles in to
// the XZ orbital plane.
var toOrbitPlane = r3.NewRotation(math.Pi/2, r3.Vec{X: 1})

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func rgba(c colorful.Color, opacity float64) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, uint8(math.Round(255*math.Max(0, math.Min(1, opacity)))))
}

// axisAngle converts a unit quaternion into raylib's axis and degrees.
func axisAngle(q r3.Rotation) (rl.Vector3, float32) {
	w := math.Max(-1, math.Min(1, q.Real))
	angle := 2 * math.Acos(w)
	s := math.Sqrt(1 - w*w)
	if s < 1e-9 {
		return rl.NewVector3(0, 1, 0), 0
	}
	axis := r3.Vec{X: q.Imag / s, Y: q.Jmag / s, Z: q.Kmag / s}
	return vec3(axis), float32(angle * 180 / math.Pi)
}

func nodeColor(n *scene.Node) color.RGBA {
	if n.Material == nil {
		return rl.NewColor(170, 170, 170, 255)
	}
	if n.Material.Textured() {
		return rl.NewColor(255, 255, 255, uint8(255*n.Material.Opacity))
	}
	return rgba(n.Material.Base, n.Material.Opacity)
}

// texture uploads tex on first use.
func (a *App) texture(tex *assets.Texture) rl.Texture2D {
	if t, ok := a.textures[tex]; ok {
		return t
	}
	img := rl.NewImageFromImage(tex.Image)
	t := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.GenTextureMipmaps(&t)
	rl.SetTextureFilter(t, rl.FilterTrilinear)
	a.textures[tex] = t
	a.log.V(1).Info("texture uploaded", "path", tex.Path, "width", tex.Width, "height", tex.Height)
	return t
}

// sphereModel returns the model for n, rebinding its color map when the
// material has changed since the last frame.
func (a *App) sphereModel(n *scene.Node) rl.Model {
	s, ok := a.spheres[n.ID]
	if !ok {
		s = &sphere{model: rl.LoadModelFromMesh(rl.GenMeshSphere(1, 32, 32)), revision: -1}
		a.spheres[n.ID] = s
	}
	if n.Material != nil && s.revision != n.Material.Revision {
		if tex := n.Material.Map(scene.ColorMap); tex != nil && tex.Image != nil {
			rl.SetMaterialTexture(s.model.Materials, rl.MapDiffuse, a.texture(tex))
		}
		s.revision = n.Material.Revision
	}
	return s.model
}

func (a *App) drawScene() {
	sc := a.driver.Scene()
	var translucent []func()

	sc.Graph.Walk(func(n *scene.Node, world scene.Frame) {
		if n.ID == sc.Background {
			return
		}
		switch n.Kind {
		case scene.Sphere:
			draw := func() { a.drawSphere(n, world) }
			if n.Material != nil && n.Material.Opacity < 1 {
				translucent = append(translucent, draw)
				return
			}
			draw()
		case scene.Ring:
			translucent = append(translucent, func() { a.drawRing(n, world) })
		case scene.Path:
			a.drawPath(n, world)
		case scene.Points:
			a.drawPoints(n, world)
		}
	})

	// shells and rings blend over the opaque bodies
	for _, draw := range translucent {
		draw()
	}
}

func (a *App) drawSphere(n *scene.Node, world scene.Frame) {
	model := a.sphereModel(n)
	axis, angle := axisAngle(world.Rotation)
	r := float32(n.Radius * world.Scale)
	rl.DrawModelEx(model, vec3(world.Origin), axis, angle, rl.NewVector3(r, r, r), nodeColor(n))
}

func (a *App) drawRing(n *scene.Node, world scene.Frame) {
	axis, angle := axisAngle(world.Rotation)
	col := nodeColor(n)
	if n.Material != nil {
		col = rgba(n.Material.Color(), 0.6)
	}
	inner, outer := n.Inner*world.Scale, n.Radius*world.Scale
	for i := 0; i <= ringBands; i++ {
		r := inner + (outer-inner)*float64(i)/ringBands
		rl.DrawCircle3D(vec3(world.Origin), float32(r), axis, angle, col)
	}
}

func (a *App) drawPath(n *scene.Node, world scene.Frame) {
	q := r3.Rotation(quat.Mul(quat.Number(world.Rotation), quat.Number(toOrbitPlane)))
	axis, angle := axisAngle(q)
	rl.DrawCircle3D(vec3(world.Origin), float32(n.Radius*world.Scale), axis, angle, ColPath)
}

func (a *App) drawPoints(n *scene.Node, world scene.Frame) {
	base := nodeColor(n)
	for i, p := range n.Points {
		c := base
		if i < len(n.Colors) {
			c = rgba(n.Colors[i], 1)
		}
		rl.DrawPoint3D(vec3(world.Apply(p)), c)
	}
}
