// Package ray answers which voxel, or which box, a ray hits first.
package ray

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/blockgrid/pkg/block"
)

// Components smaller than this never cross a cell boundary.
const epsilon = 1e-9

// Target is anything a ray can be tested against. Raycast returns the
// distance along dir to the first hit within maxDist.
type Target interface {
	Raycast(origin, dir mgl64.Vec3, maxDist float64) (float64, bool)
}

// BlockSource reads blocks by world coordinate.
type BlockSource interface {
	Block(x, y, z int) block.ID
}

// Hit is the first solid voxel on a ray.
type Hit struct {
	Voxel    [3]int
	Normal   [3]int // outward normal of the entered face, zero when the ray starts inside
	Distance float64
}

// Adjacent returns the empty voxel in front of the hit face.
func (h Hit) Adjacent() [3]int {
	return [3]int{h.Voxel[0] + h.Normal[0], h.Voxel[1] + h.Normal[1], h.Voxel[2] + h.Normal[2]}
}

// Caster walks the voxel grid of a block source.
type Caster struct {
	src BlockSource
	reg *block.Registry
}

func NewCaster(src BlockSource, reg *block.Registry) *Caster {
	return &Caster{src: src, reg: reg}
}

// Cast steps through every voxel the ray touches, in order, until it finds a
// solid block or the travelled distance reaches maxDist.
func (c *Caster) Cast(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}

	var (
		pos    [3]int
		step   [3]int
		tDelta [3]float64
		tMax   [3]float64
		normal [3]int
	)
	for i := 0; i < 3; i++ {
		pos[i] = int(math.Floor(origin[i]))
		step[i] = 1
		if dir[i] < 0 {
			step[i] = -1
		}
		if math.Abs(dir[i]) < epsilon {
			tDelta[i] = math.Inf(1)
			tMax[i] = math.Inf(1)
			continue
		}
		tDelta[i] = math.Abs(1 / dir[i])
		if dir[i] > 0 {
			tMax[i] = (float64(pos[i]) + 1 - origin[i]) * tDelta[i]
		} else {
			tMax[i] = (origin[i] - float64(pos[i])) * tDelta[i]
		}
	}

	t := 0.0
	for t < maxDist {
		if c.reg.IsSolid(c.src.Block(pos[0], pos[1], pos[2])) {
			return Hit{Voxel: pos, Normal: normal, Distance: t}, true
		}

		axis := 2
		if tMax[0] < tMax[1] {
			if tMax[0] < tMax[2] {
				axis = 0
			}
		} else if tMax[1] < tMax[2] {
			axis = 1
		}

		t = tMax[axis]
		tMax[axis] += tDelta[axis]
		pos[axis] += step[axis]
		normal = [3]int{}
		normal[axis] = -step[axis]
	}
	return Hit{}, false
}

// Raycast reports the distance to the first solid voxel.
func (c *Caster) Raycast(origin, dir mgl64.Vec3, maxDist float64) (float64, bool) {
	h, ok := c.Cast(origin, dir, maxDist)
	return h.Distance, ok
}

// AABB is an axis-aligned box, used for entity hit tests.
type AABB struct {
	Min, Max mgl64.Vec3
}

// Raycast intersects the ray with the box using the slab method. A ray that
// starts inside the box hits at distance 0.
func (b AABB) Raycast(origin, dir mgl64.Vec3, maxDist float64) (float64, bool) {
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	tmin, tmax := 0.0, maxDist
	for i := 0; i < 3; i++ {
		o, d := origin[i], dir[i]
		if math.Abs(d) < epsilon {
			if o < b.Min[i] || o > b.Max[i] {
				return 0, false
			}
			continue
		}
		t1 := (b.Min[i] - o) / d
		t2 := (b.Max[i] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// Nearest tests every target and returns the index of the closest hit.
func Nearest(origin, dir mgl64.Vec3, maxDist float64, targets ...Target) (int, float64, bool) {
	best, bestDist := -1, maxDist
	for i, tg := range targets {
		if d, ok := tg.Raycast(origin, dir, bestDist); ok && (best < 0 || d < bestDist) {
			best, bestDist = i, d
		}
	}
	return best, bestDist, best >= 0
}
