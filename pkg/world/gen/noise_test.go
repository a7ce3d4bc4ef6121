package gen

import "testing"

func TestSimplexDeterministic(t *testing.T) {
	n1 := NewSimplex(12345)
	n2 := NewSimplex(12345)

	for i := 0; i < 100; i++ {
		x := float64(i) * 0.1
		y := float64(i) * 0.2
		if n1.Eval(x, y) != n2.Eval(x, y) {
			t.Fatalf("Eval not deterministic at (%f, %f)", x, y)
		}
	}
}

func TestSimplexRange(t *testing.T) {
	n := NewSimplex(42)

	for i := 0; i < 10000; i++ {
		x := float64(i)*0.37 - 500
		y := float64(i)*0.53 - 500
		v := n.Eval(x, y)
		if v < -1.0 || v > 1.0 {
			t.Fatalf("Eval(%f, %f) = %f, out of [-1,1]", x, y, v)
		}
	}
}

func TestSimplexSeedsDiffer(t *testing.T) {
	a, b := NewSimplex(1), NewSimplex(2)
	same := 0
	for i := 0; i < 100; i++ {
		x, y := float64(i)*0.7+0.3, float64(i)*0.4+0.1
		if a.Eval(x, y) == b.Eval(x, y) {
			same++
		}
	}
	if same > 10 {
		t.Errorf("%d of 100 samples identical across seeds", same)
	}
}

func TestHashStable(t *testing.T) {
	if hash3(7, 1, 2, 3) != hash3(7, 1, 2, 3) {
		t.Fatal("hash3 not stable")
	}
	if hash3(7, 1, 2, 3) == hash3(7, 3, 2, 1) {
		t.Error("hash3 symmetric in x and z")
	}
	if hash2(7, -1, 5) == hash2(7, 1, 5) {
		t.Error("hash2 ignores sign")
	}

	r1, r2 := newColumnRNG(9, 4, -4), newColumnRNG(9, 4, -4)
	for i := 0; i < 10; i++ {
		f := r1.float()
		if f != r2.float() {
			t.Fatal("column stream not deterministic")
		}
		if f < 0 || f >= 1 {
			t.Fatalf("float() = %f, out of [0,1)", f)
		}
	}
}

func TestHashEnd(t *testing.T) {
	for _, c := range [][2]int{{0, 0}, {-5, 9}, {1 << 20, -(1 << 20)}} {
		h := hashEnd(c[0], c[1])
		if h < 0 {
			t.Errorf("hashEnd(%d,%d) = %d, want non-negative", c[0], c[1], h)
		}
	}
	if hashEnd(0, 0) != 0 {
		t.Errorf("hashEnd(0,0) = %d, want 0", hashEnd(0, 0))
	}
}
