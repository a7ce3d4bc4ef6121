package ray

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/blockgrid/pkg/block"
)

type grid map[[3]int]block.ID

func (g grid) Block(x, y, z int) block.ID { return g[[3]int{x, y, z}] }

func TestCastHitsEnteredFace(t *testing.T) {
	c := NewCaster(grid{{5, 5, 5}: block.Stone, {-3, 2, -3}: block.Stone}, block.Default())

	tests := []struct {
		name       string
		origin     mgl64.Vec3
		dir        mgl64.Vec3
		wantVoxel  [3]int
		wantNormal [3]int
		wantDist   float64
	}{
		{"from -z", mgl64.Vec3{5.5, 5.5, 0.5}, mgl64.Vec3{0, 0, 1}, [3]int{5, 5, 5}, [3]int{0, 0, -1}, 4.5},
		{"from above", mgl64.Vec3{5.5, 10.5, 5.5}, mgl64.Vec3{0, -1, 0}, [3]int{5, 5, 5}, [3]int{0, 1, 0}, 4.5},
		{"from -x", mgl64.Vec3{0.5, 5.5, 5.5}, mgl64.Vec3{1, 0, 0}, [3]int{5, 5, 5}, [3]int{-1, 0, 0}, 4.5},
		{"unnormalized dir", mgl64.Vec3{5.5, 5.5, 9.5}, mgl64.Vec3{0, 0, -3}, [3]int{5, 5, 5}, [3]int{0, 0, 1}, 3.5},
		{"negative coords", mgl64.Vec3{0.5, 2.5, -2.5}, mgl64.Vec3{-1, 0, 0}, [3]int{-3, 2, -3}, [3]int{1, 0, 0}, 2.5},
		{"starts inside", mgl64.Vec3{5.5, 5.5, 5.5}, mgl64.Vec3{1, 0, 0}, [3]int{5, 5, 5}, [3]int{0, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := c.Cast(tt.origin, tt.dir, 10)
			require.True(t, ok)
			assert.Equal(t, tt.wantVoxel, hit.Voxel)
			assert.Equal(t, tt.wantNormal, hit.Normal)
			assert.InDelta(t, tt.wantDist, hit.Distance, 1e-9)
		})
	}
}

func TestCastMisses(t *testing.T) {
	c := NewCaster(grid{{5, 5, 5}: block.Stone, {2, 0, 0}: block.Water}, block.Default())

	_, ok := c.Cast(mgl64.Vec3{7.5, 5.5, 0.5}, mgl64.Vec3{0, 0, 1}, 10)
	assert.False(t, ok, "ray beside the block")

	_, ok = c.Cast(mgl64.Vec3{5.5, 5.5, 0.5}, mgl64.Vec3{0, 0, 1}, 4)
	assert.False(t, ok, "block beyond max distance")

	_, ok = c.Cast(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{1, 0, 0}, 5)
	assert.False(t, ok, "water is not solid")

	_, ok = c.Cast(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{}, 5)
	assert.False(t, ok, "zero direction never leaves the start voxel")
}

func TestCastDiagonal(t *testing.T) {
	c := NewCaster(grid{{3, 3, 0}: block.Stone}, block.Default())

	hit, ok := c.Cast(mgl64.Vec3{0.5, 0.2, 0.5}, mgl64.Vec3{1, 1, 0}, 10)
	require.True(t, ok)
	assert.Equal(t, [3]int{3, 3, 0}, hit.Voxel)
	assert.Equal(t, [3]int{0, -1, 0}, hit.Normal)
	assert.Equal(t, [3]int{3, 2, 0}, hit.Adjacent())
}

func TestAABBRaycast(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{2, 3, 2}}

	d, ok := box.Raycast(mgl64.Vec3{1.5, 1.5, -1}, mgl64.Vec3{0, 0, 1}, 10)
	require.True(t, ok)
	assert.InDelta(t, 2.0, d, 1e-9)

	_, ok = box.Raycast(mgl64.Vec3{1.5, 1.5, -1}, mgl64.Vec3{0, 0, 1}, 1.5)
	assert.False(t, ok, "beyond max distance")

	_, ok = box.Raycast(mgl64.Vec3{3, 1.5, -1}, mgl64.Vec3{0, 0, 1}, 10)
	assert.False(t, ok, "parallel ray outside the slab")

	d, ok = box.Raycast(mgl64.Vec3{1.5, 2, 1.5}, mgl64.Vec3{0, 1, 0}, 10)
	require.True(t, ok)
	assert.Equal(t, 0.0, d)
}

func TestNearest(t *testing.T) {
	world := NewCaster(grid{{0, 0, 8}: block.Stone}, block.Default())
	near := AABB{Min: mgl64.Vec3{0, 0, 3}, Max: mgl64.Vec3{1, 1, 4}}
	far := AABB{Min: mgl64.Vec3{0, 0, 20}, Max: mgl64.Vec3{1, 1, 21}}

	i, d, ok := Nearest(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 0, 1}, 30, world, far, near)
	require.True(t, ok)
	assert.Equal(t, 2, i)
	assert.InDelta(t, 2.5, d, 1e-9)

	i, d, ok = Nearest(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 0, 1}, 30, world, far)
	require.True(t, ok)
	assert.Equal(t, 0, i)
	assert.InDelta(t, 7.5, d, 1e-9)
}
