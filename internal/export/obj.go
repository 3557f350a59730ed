package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/worldforge/internal/gen/mesh"
)

// writeOBJ streams the scene buffers as a single Wavefront OBJ. Vertex,
// UV, and normal indices are global and 1-based; each buffer becomes one
// object with its own usemtl group.
func writeOBJ(w io.Writer, buffers []*mesh.Mesh, mtlFile string) error {
	bw := bufio.NewWriterSize(w, 1<<16)

	fmt.Fprintf(bw, "# worldforge scene export\n")
	fmt.Fprintf(bw, "mtllib %s\n", mtlFile)

	offset := 1
	for bi, buf := range buffers {
		fmt.Fprintf(bw, "o %s_%d\n", buf.Material, bi)
		for _, v := range buf.Vertices {
			fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v.Position[0], v.Position[1], v.Position[2])
		}
		for _, v := range buf.Vertices {
			fmt.Fprintf(bw, "vt %.4f %.4f\n", v.UV[0], v.UV[1])
		}
		for _, v := range buf.Vertices {
			fmt.Fprintf(bw, "vn %.4f %.4f %.4f\n", v.Normal[0], v.Normal[1], v.Normal[2])
		}
		fmt.Fprintf(bw, "usemtl %s\n", buf.Material)
		for t := 0; t+2 < len(buf.Indices); t += 3 {
			a := offset + int(buf.Indices[t])
			b := offset + int(buf.Indices[t+1])
			c := offset + int(buf.Indices[t+2])
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
		offset += len(buf.Vertices)
	}
	return bw.Flush()
}
