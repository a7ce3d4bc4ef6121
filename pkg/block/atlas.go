package block

// Atlas describes a texture atlas split into a uniform grid of tiles.
type Atlas struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// UV returns the normalized texture rectangle of a tile. Row 0 is the top row
// of the image, so v grows upwards.
func (a Atlas) UV(t Tile) (u0, v0, u1, v1 float32) {
	cols, rows := float32(a.Cols), float32(a.Rows)
	u0 = float32(t.Col) / cols
	u1 = float32(t.Col+1) / cols
	v0 = 1 - float32(t.Row+1)/rows
	v1 = 1 - float32(t.Row)/rows
	return u0, v0, u1, v1
}

// Remap maps a face-local (u, v) in [0,1] into the tile's atlas rectangle.
func (a Atlas) Remap(t Tile, u, v float32) (float32, float32) {
	u0, v0, u1, v1 := a.UV(t)
	return u0 + u*(u1-u0), v0 + v*(v1-v0)
}
