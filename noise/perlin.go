// Package noise implements seeded 2D gradient noise and fractal sums of it.
package noise

import "math"

// Perlin is an immutable gradient-noise generator. Two generators built from
// the same seed produce identical output.
type Perlin struct {
	seed float64
	perm [512]uint8
}

// New builds the permutation table with a Fisher-Yates style shuffle driven
// by a sin-based hash of the seed. The seed is folded into [0,1) first, so
// any finite value is accepted.
func New(seed float64) *Perlin {
	p := &Perlin{seed: seed}

	var base [256]uint8
	for i := range base {
		base[i] = uint8(i)
	}

	s := fract(seed)
	for i := 0; i < 256; i++ {
		r := int(math.Floor(s*float64(256-i))) + i
		if r > 255 {
			r = 255
		}
		base[i], base[r] = base[r], base[i]
		s = hash(s + float64(i))
	}

	for i := range p.perm {
		p.perm[i] = base[i&255]
	}
	return p
}

func (p *Perlin) Seed() float64 {
	return p.seed
}

// Noise2D returns gradient noise at (x, y), roughly in [-1, 1].
func (p *Perlin) Noise2D(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	xi := int(fx) & 255
	yi := int(fy) & 255

	x -= fx
	y -= fy

	u := fade(x)
	v := fade(y)

	a := int(p.perm[xi]) + yi
	b := int(p.perm[xi+1]) + yi

	return lerp(
		lerp(grad(p.perm[a], x, y), grad(p.perm[b], x-1, y), u),
		lerp(grad(p.perm[a+1], x, y-1), grad(p.perm[b+1], x-1, y-1), u),
		v,
	)
}

// FBM2D sums octaves of Noise2D, scaling frequency by lacunarity and
// amplitude by persistence per octave, and divides by the total amplitude.
func (p *Perlin) FBM2D(x, y float64, octaves int, persistence, lacunarity float64) float64 {
	var total, maxValue float64
	frequency, amplitude := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		total += p.Noise2D(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if maxValue == 0 {
		return 0
	}
	return total / maxValue
}

// hash is a cheap deterministic pseudo-random map into [0,1). Not suitable
// for anything but reproducible shuffles.
func hash(n float64) float64 {
	return fract(math.Sin(n) * 10000)
}

func fract(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// grad picks one of eight gradient directions from the low 4 bits of h and
// dots it with (x, y).
func grad(h uint8, x, y float64) float64 {
	h &= 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
