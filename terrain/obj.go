package terrain

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"skyrunner/core"
)

// WriteOBJ writes m as a single Wavefront object with positions, normals and
// texture coordinates sharing one index per vertex.
func WriteOBJ(out io.Writer, m *core.Mesh) error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q: index count %d is not a multiple of 3", m.Name, len(m.Indices))
	}
	w := bufio.NewWriter(out)

	fmt.Fprintf(w, "o %s\n", m.Name)
	for _, v := range m.Vertices {
		fmt.Fprintf(w, "v %f %f %f\n", v.Position.X, v.Position.Y, v.Position.Z)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(w, "vn %f %f %f\n", v.Normal.X, v.Normal.Y, v.Normal.Z)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(w, "vt %f %f\n", v.UV.X, v.UV.Y)
	}
	// OBJ indices are 1-based.
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return w.Flush()
}

// ExportOBJ writes m to path in Wavefront OBJ format.
func ExportOBJ(m *core.Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create OBJ file: %w", err)
	}
	if err := WriteOBJ(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
