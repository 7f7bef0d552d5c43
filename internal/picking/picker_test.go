package picking

import (
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/catalog"
	"github.com/san-kum/orrery/internal/kinematics"
	"github.com/san-kum/orrery/internal/scene"
)

var _ = Describe("Picker", func() {
	var (
		sc     *scene.Scene
		cam    *camera.Perspective
		picker *Picker
	)

	BeforeEach(func() {
		var err error
		sc, err = scene.Build(catalog.Default(), scene.Options{Rand: rand.New(rand.NewSource(21))})
		Expect(err).NotTo(HaveOccurred())
		cam = camera.NewPerspective(800, 600)
		picker = NewPicker(sc, cam)
	})

	center := func() (Hit, bool) { return picker.Pick(400, 300) }

	It("returns the star when only the star is under the pointer", func() {
		cam.Position = r3.Vec{Y: 30}
		cam.Target = r3.Vec{}

		hit, ok := center()
		Expect(ok).To(BeTrue())
		Expect(hit.Info.Name).To(Equal("Sun"))
		Expect(hit.Distance).To(BeNumerically("~", 20, 1e-9))
	})

	It("misses when nothing interactive is in view", func() {
		cam.Position = r3.Vec{Y: 3000}
		cam.Target = r3.Vec{Y: 6000}

		_, ok := center()
		Expect(ok).To(BeFalse())
	})

	It("prefers the nearest of several hits", func() {
		earth := sc.Body("Earth")
		moon := sc.Body("Moon")
		pos := sc.WorldPosition(earth)
		u := r3.Unit(pos)

		// park the moon beside the line of sight
		moon.Angle = math.Atan2(u.Z, u.X) + math.Pi/2
		kinematics.Advance(sc, 0, 0, kinematics.DefaultTuning())

		cam.Position = r3.Add(pos, r3.Scale(5, u))
		cam.Target = r3.Vec{}

		hit, ok := center()
		Expect(ok).To(BeTrue())
		Expect(hit.Info.Name).To(Equal("Earth"))
		Expect(hit.Distance).To(BeNumerically("~", 4, 1e-6))
	})

	It("hits the asteroid belt as a whole", func() {
		belt := sc.Find("Asteroid Belt")
		p := sc.Graph.World(belt.ID).Apply(belt.Points[0])
		cam.Position = r3.Add(p, r3.Vec{Y: 10})
		cam.Target = p

		hit, ok := center()
		Expect(ok).To(BeTrue())
		Expect(hit.Node).To(Equal(belt))
		Expect(hit.Info.Name).To(Equal("Asteroid Belt"))
	})

	It("never returns shells or paths", func() {
		for _, n := range sc.Interactive() {
			Expect(n.Kind).To(BeElementOf(scene.Sphere, scene.Points))
			Expect(n.Name).NotTo(HaveSuffix("/clouds"))
			Expect(n.Name).NotTo(HaveSuffix("/ring"))
		}
	})
})

var _ = Describe("Panel", func() {
	var (
		panel *Panel
		t0    time.Time
		earth catalog.Info
		mars  catalog.Info
	)

	BeforeEach(func() {
		panel = NewPanel(0)
		t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		cat := catalog.Default()
		earth, _ = cat.Lookup("Earth")
		mars, _ = cat.Lookup("Mars")
	})

	It("defaults to ten seconds", func() {
		Expect(panel.Duration).To(Equal(10 * time.Second))
	})

	It("hides after the duration", func() {
		panel.Show(earth, t0)
		Expect(panel.Expire(t0.Add(9 * time.Second))).To(BeFalse())
		Expect(panel.Visible()).To(BeTrue())
		Expect(panel.Expire(t0.Add(10 * time.Second))).To(BeTrue())
		Expect(panel.Visible()).To(BeFalse())
		Expect(panel.Render()).To(BeEmpty())
	})

	It("restarts the countdown with new content", func() {
		panel.Show(earth, t0)
		panel.Show(mars, t0.Add(8*time.Second))

		Expect(panel.Expire(t0.Add(12 * time.Second))).To(BeFalse())
		Expect(panel.Info().Name).To(Equal("Mars"))
		Expect(panel.Remaining(t0.Add(12 * time.Second))).To(Equal(6 * time.Second))
		Expect(panel.Expire(t0.Add(18 * time.Second))).To(BeTrue())
	})

	It("renders the name and every descriptive field", func() {
		panel.Show(earth, t0)
		out := panel.Render()
		Expect(panel.Lines()[0]).To(Equal("Earth"))
		for _, field := range []string{earth.Diameter, earth.DistSun, earth.OrbPeriod, earth.RotPeriod, earth.Moons, earth.FunFact, earth.SizeComparison, earth.MassComparison} {
			Expect(out).To(ContainSubstring(field))
		}
	})
})

var _ = Describe("Controller", func() {
	var (
		now   time.Time
		cam   *camera.Perspective
		ctrl  *Controller
		panel *Panel
	)

	BeforeEach(func() {
		sc, err := scene.Build(catalog.Default(), scene.Options{Rand: rand.New(rand.NewSource(5))})
		Expect(err).NotTo(HaveOccurred())
		cam = camera.NewPerspective(800, 600)
		now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		panel = NewPanel(DefaultDuration)
		ctrl = NewController(NewPicker(sc, cam), panel, func() time.Time { return now }, GinkgoLogr)
	})

	It("shows the hit and leaves the overlay alone on a miss", func() {
		cam.Position = r3.Vec{Y: 30}
		_, ok := ctrl.PointerDown(400, 300)
		Expect(ok).To(BeTrue())
		Expect(panel.Info().Name).To(Equal("Sun"))
		deadline := panel.Deadline()

		now = now.Add(4 * time.Second)
		cam.Position = r3.Vec{Y: 3000}
		cam.Target = r3.Vec{Y: 6000}
		_, ok = ctrl.PointerDown(0, 0)
		Expect(ok).To(BeFalse())
		Expect(panel.Visible()).To(BeTrue())
		Expect(panel.Info().Name).To(Equal("Sun"))
		Expect(panel.Deadline()).To(Equal(deadline))

		now = now.Add(6 * time.Second)
		Expect(ctrl.Expire()).To(BeTrue())
	})
})
