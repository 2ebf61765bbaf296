package random

// FixedSource replays a predetermined sequence of Float64 values, cycling
// when exhausted. IntN and Perm are derived from the same sequence, which
// keeps engine behavior fully reproducible in tests.
type FixedSource struct {
	values []float64
	pos    int
}

// Fixed returns a FixedSource over the given values. At least one value is
// required; a zero-value sequence would make every draw degenerate anyway.
func Fixed(values ...float64) *FixedSource {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &FixedSource{values: values}
}

func (f *FixedSource) Float64() float64 {
	v := f.values[f.pos%len(f.values)]
	f.pos++
	return v
}

func (f *FixedSource) IntN(n int) int {
	if n <= 0 {
		panic("random: IntN called with n <= 0")
	}
	return int(f.Float64() * float64(n))
}

func (f *FixedSource) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	Shuffle(f, p)
	return p
}

// Draws reports how many values have been consumed.
func (f *FixedSource) Draws() int { return f.pos }
