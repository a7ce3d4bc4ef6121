package world

import "github.com/OCharnyshevich/blockgrid/pkg/block"

// BlockSetter accepts block writes by world coordinate.
type BlockSetter interface {
	SetBlock(x, y, z int, id block.ID)
}

// PlaceEndPortal builds a portal centered on (x, y, z): a 5x5 ring of frame
// blocks with the corners left out, around a 3x3 portal surface.
func PlaceEndPortal(s BlockSetter, x, y, z int) {
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			edgeX, edgeZ := dx == -2 || dx == 2, dz == -2 || dz == 2
			switch {
			case edgeX && edgeZ:
			case edgeX || edgeZ:
				s.SetBlock(x+dx, y, z+dz, block.EndPortalFrame)
			default:
				s.SetBlock(x+dx, y, z+dz, block.EndPortal)
			}
		}
	}
}
