package gen

// Simplex is seeded 2D simplex noise with output in [-1, 1].
//
// Every product that feeds a sum is wrapped in an explicit float64 conversion.
// The conversion forces rounding, which keeps the compiler from fusing
// multiply-add on targets that support it, so a seed yields the same terrain
// on every architecture.
type Simplex struct {
	perm [512]uint8
}

var grad2 = [12][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {1, 0}, {-1, 0},
	{0, 1}, {0, -1}, {0, 1}, {0, -1},
}

// NewSimplex builds the permutation table with a seeded Fisher-Yates shuffle.
func NewSimplex(seed int64) *Simplex {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}

	s := seed
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s>>33)&0x7FFFFFFF) % (i + 1)
		p[i], p[j] = p[j], p[i]
	}

	n := &Simplex{}
	for i := range n.perm {
		n.perm[i] = p[i&255]
	}
	return n
}

// Eval returns the noise value at (x, y).
func (n *Simplex) Eval(x, y float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	s := float64((x + y) * f2)
	i := fastFloor(x + s)
	j := fastFloor(y + s)

	t := float64(float64(i+j) * g2)
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	ii := i & 255
	jj := j & 255
	gi0 := int(n.perm[ii+int(n.perm[jj])]) % 12
	gi1 := int(n.perm[ii+i1+int(n.perm[jj+j1])]) % 12
	gi2 := int(n.perm[ii+1+int(n.perm[jj+1])]) % 12

	n0 := corner(gi0, x0, y0)
	n1 := corner(gi1, x1, y1)
	n2 := corner(gi2, x2, y2)
	return float64(70.0 * (n0 + n1 + n2))
}

func corner(gi int, x, y float64) float64 {
	t := 0.5 - float64(x*x) - float64(y*y)
	if t < 0 {
		return 0
	}
	t = float64(t * t)
	g := grad2[gi]
	dot := float64(g[0]*x) + float64(g[1]*y)
	return float64(float64(t*t) * dot)
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}
