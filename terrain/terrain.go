// Package terrain turns fractal noise into a height-mapped grid mesh.
package terrain

import (
	"skyrunner/core"
	"skyrunner/math"
	"skyrunner/noise"
)

// Params controls the size and shape of a generated terrain patch.
type Params struct {
	Seed        float64 `yaml:"seed"`
	Width       float32 `yaml:"width"`
	Depth       float32 `yaml:"depth"`
	Segments    int     `yaml:"segments"`
	HeightScale float32 `yaml:"height_scale"`

	// NoiseScale multiplies world x/z before sampling noise; smaller values
	// give broader hills.
	NoiseScale  float64 `yaml:"noise_scale"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
}

func DefaultParams() Params {
	return Params{
		Seed:        0.5,
		Width:       200,
		Depth:       200,
		Segments:    100,
		HeightScale: 20,
		NoiseScale:  0.1,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2,
	}
}

// Terrain samples heights for one parameter set. It is immutable once built.
type Terrain struct {
	params Params
	noise  *noise.Perlin
}

func New(p Params) *Terrain {
	if p.Segments < 1 {
		p.Segments = 1
	}
	return &Terrain{params: p, noise: noise.New(p.Seed)}
}

func (t *Terrain) Params() Params {
	return t.params
}

// HeightAt returns (fbm*0.5+0.5)*HeightScale at ground position (x, z) in the
// terrain's own space.
func (t *Terrain) HeightAt(x, z float32) float32 {
	p := t.params
	n := t.noise.FBM2D(float64(x)*p.NoiseScale, float64(z)*p.NoiseScale, p.Octaves, p.Persistence, p.Lacunarity)
	return float32(n*0.5+0.5) * p.HeightScale
}

// Mesh builds a (Segments+1)^2 vertex grid centred on the origin. UVs are
// scaled by the patch size so a texture repeats once per world unit.
func (t *Terrain) Mesh() *core.Mesh {
	p := t.params
	seg := p.Segments
	halfW := p.Width / 2
	halfD := p.Depth / 2

	vertices := make([]core.Vertex, 0, (seg+1)*(seg+1))
	for z := 0; z <= seg; z++ {
		v := float32(z) / float32(seg)
		for x := 0; x <= seg; x++ {
			u := float32(x) / float32(seg)
			px := -halfW + u*p.Width
			pz := -halfD + v*p.Depth
			vertices = append(vertices, core.Vertex{
				Position: math.Vec3{X: px, Y: t.HeightAt(px, pz), Z: pz},
				Normal:   math.Vec3Up,
				UV:       math.Vec2{X: u * p.Width, Y: v * p.Depth},
			})
		}
	}

	indices := make([]uint32, 0, seg*seg*6)
	row := uint32(seg + 1)
	for z := 0; z < seg; z++ {
		for x := 0; x < seg; x++ {
			a := uint32(z)*row + uint32(x)
			b := a + 1
			c := a + row
			d := c + 1
			indices = append(indices, a, c, b, b, c, d)
		}
	}

	m := core.NewMesh("Terrain", vertices, indices)
	core.RecomputeNormals(m)
	return m
}
