// Package catalog holds the static description of the solar system: one
// entry per body with its orbit, spin, optional rings and cloud shells,
// satellites, particle belts and the display-only facts shown when a body is
// picked.
//
// Kinematics reads only Distance, OrbitalPeriod and RotationPeriod. Use
// [Validate] before building a scene from a hand-written catalog; [Load]
// already does.
package catalog
