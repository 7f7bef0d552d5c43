package view

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/catalog"
	"github.com/san-kum/orrery/internal/kinematics"
	"github.com/san-kum/orrery/internal/scene"
)

var _ = Describe("Controller", func() {
	var (
		sc       *scene.Scene
		cam      *camera.Perspective
		controls *camera.OrbitControls
		ctrl     *Controller
	)

	BeforeEach(func() {
		var err error
		sc, err = scene.Build(catalog.Default(), scene.Options{Rand: rand.New(rand.NewSource(11))})
		Expect(err).NotTo(HaveOccurred())
		cam = camera.NewPerspective(1280, 720)
		controls = camera.NewOrbitControls(cam)
		ctrl = New(controls, sc)
	})

	It("starts following the home body", func() {
		home := sc.WorldPosition(sc.Home)
		Expect(ctrl.Mode()).To(Equal(Follow))
		Expect(controls.Target).To(Equal(home))
		Expect(cam.Position).To(Equal(r3.Add(home, FollowOffset)))
		Expect(controls.MaxDistance).To(Equal(FollowMaxDistance))
		Expect(controls.MinDistance).To(Equal(MinDistance))
		Expect(controls.Damping).To(Equal(Damping))
	})

	It("snaps to the overview vantage point", func() {
		Expect(ctrl.Toggle()).To(Equal(Overview))
		Expect(cam.Position).To(Equal(OverviewPosition))
		Expect(controls.Target).To(Equal(r3.Vec{}))
		Expect(controls.MaxDistance).To(Equal(OverviewMaxDistance))
	})

	It("restores zoom bound and target after a round trip", func() {
		bound, target := controls.MaxDistance, controls.Target

		ctrl.SetMode(Overview)
		ctrl.SetMode(Follow)

		Expect(controls.MaxDistance).To(Equal(bound))
		Expect(controls.Target).To(Equal(target))
	})

	It("ignores setting the current mode", func() {
		controls.Rotate(0.5, 0)
		ctrl.SetMode(Follow)
		ctrl.Update()
		Expect(cam.Position).NotTo(Equal(r3.Add(controls.Target, FollowOffset)))
	})

	Context("while time advances", func() {
		advance := func(frames int) {
			for i := 0; i < frames; i++ {
				kinematics.Advance(sc, 0.5, 20, kinematics.DefaultTuning())
				ctrl.Update()
			}
		}

		It("keeps the target on the home body in Follow", func() {
			start := controls.Target
			advance(30)

			home := sc.WorldPosition(sc.Home)
			Expect(home).NotTo(Equal(start))
			Expect(r3.Norm(r3.Sub(controls.Target, home))).To(BeNumerically("<", 1e-9))
			Expect(controls.Distance()).To(BeNumerically("~", 3, 1e-6))
		})

		It("leaves the target alone in Overview", func() {
			ctrl.SetMode(Overview)
			advance(30)
			Expect(controls.Target).To(Equal(r3.Vec{}))
		})

		It("snaps back to the moved home body", func() {
			ctrl.SetMode(Overview)
			advance(10)
			ctrl.SetMode(Follow)

			home := sc.WorldPosition(sc.Home)
			Expect(controls.Target).To(Equal(home))
			Expect(cam.Position).To(Equal(r3.Add(home, FollowOffset)))
		})
	})
})

var _ = DescribeTable("ParseMode",
	func(in string, want Mode, ok bool) {
		got, err := ParseMode(in)
		if !ok {
			Expect(err).To(HaveOccurred())
			return
		}
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
	},
	Entry("follow", "follow", Follow, true),
	Entry("overview", "Overview", Overview, true),
	Entry("alias", "solar", Overview, true),
	Entry("unknown", "sideways", Follow, false),
)
