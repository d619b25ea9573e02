package model

import (
	"math"

	"github.com/Faultbox/tundra/internal/engine/asset"
	tmath "github.com/Faultbox/tundra/pkg/math"
)

// Channel drives one property of one joint from a keyframe track.
type Channel struct {
	Target int
	Path   asset.Path
	Times  []float32
	Data   []float32
}

// Clip is a named animation: a set of channels and the time of the last
// keyframe across all of them.
type Clip struct {
	Name     string
	Channels []Channel
	Duration float32
}

func newClip(cd asset.ClipData) Clip {
	c := Clip{Name: cd.Name}
	for _, ch := range cd.Channels {
		c.Channels = append(c.Channels, Channel{
			Target: ch.Target,
			Path:   ch.Path,
			Times:  ch.Times,
			Data:   ch.Data,
		})
		if last := ch.Times[len(ch.Times)-1]; last > c.Duration {
			c.Duration = last
		}
	}
	return c
}

// bracket returns the keyframe pair surrounding time. The scan starts
// at the cursor left by the previous frame, so advancing playback is
// O(1) per frame. A time before the first or past the last keyframe
// wraps to the (last, first) pair for looping.
func (c *Channel) bracket(time float32, start int) (prev, next int) {
	nr := len(c.Times)
	if nr == 1 {
		return 0, 0
	}
	if time < c.Times[0] {
		return nr - 1, 0
	}

	i := start
	for i < nr && time > c.Times[i] {
		i++
	}
	if i == nr {
		return nr - 1, 0
	}
	prev = i - 1
	if prev < 0 {
		prev = 0
	}
	return prev, prev + 1
}

// fraction computes the blend weight toward the next keyframe. In the
// wraparound pair the distance is measured through the loop seam.
func (c *Channel) fraction(time float32, prev, next int) float32 {
	pt := c.Times[prev]
	nt := c.Times[next]
	if pt == nt {
		return 0
	}
	if pt > nt {
		delta := pt - nt
		return (delta - mod32(nt-time, delta)) / (pt - nt)
	}
	return (time - pt) / (nt - pt)
}

func (c *Channel) vec3At(i int) tmath.Vec3 {
	d := c.Data[i*3:]
	return tmath.Vec3{X: d[0], Y: d[1], Z: d[2]}
}

func (c *Channel) quatAt(i int) tmath.Quat {
	d := c.Data[i*4:]
	return tmath.Quat{X: d[0], Y: d[1], Z: d[2], W: d[3]}
}

// apply samples the channel at time and writes the result into the
// joint, updating the joint's cursor for this property.
func (c *Channel) apply(j *Joint, time float32) {
	prev, next := c.bracket(time, j.cursors[c.Path])
	if next < prev {
		j.cursors[c.Path] = next
	} else {
		j.cursors[c.Path] = prev
	}
	fac := c.fraction(time, prev, next)

	switch c.Path {
	case asset.PathTranslation:
		j.Translation = lerpVec3(c.vec3At(prev), c.vec3At(next), fac)
	case asset.PathRotation:
		j.Rotation = blendQuat(c.quatAt(prev), c.quatAt(next), fac)
	case asset.PathScale:
		// Scale snaps to the previous keyframe. Authored clips only
		// use constant scale tracks, so interpolation would never
		// show; snapping keeps the channel cheap.
		j.Scale = c.vec3At(prev)
	}
}

func lerpVec3(a, b tmath.Vec3, fac float32) tmath.Vec3 {
	return a.Scale(1 - fac).Add(b.Scale(fac))
}

// blendQuat linearly blends two rotations, negating the second operand
// when the dot product is negative so the blend takes the shorter arc.
func blendQuat(a, b tmath.Quat, fac float32) tmath.Quat {
	rfac := 1 - fac
	if a.Dot(b) < 0 {
		fac = -fac
	}
	return tmath.Quat{
		X: rfac*a.X + fac*b.X,
		Y: rfac*a.Y + fac*b.Y,
		Z: rfac*a.Z + fac*b.Z,
		W: rfac*a.W + fac*b.W,
	}.Normalize()
}

func mod32(a, b float32) float32 {
	return float32(math.Mod(float64(a), float64(b)))
}
