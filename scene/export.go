package scene

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/chewxy/math32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/unlit"
	"github.com/qmuntal/gltf/modeler"

	"github.com/voxelsplace/pixelart/go/pixelart"
)

// Generator is written into the glTF asset block.
const Generator = "pixelart -> GLB"

type geometry struct {
	position uint32
	normal   uint32
	indices  uint32
}

// Document builds a glTF document of the linked objects. Meshes with
// identical geometry share their accessors.
func (s *Scene) Document() (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = Generator
	if s.Name != "" {
		doc.Scenes[0].Name = s.Name
	}

	matIndex := make(map[*Material]uint32)
	usesUnlit := false
	for _, m := range s.materials.order {
		gm := exportMaterial(m)
		if !m.UseNodes {
			usesUnlit = true
		}
		matIndex[m] = uint32(len(doc.Materials))
		doc.Materials = append(doc.Materials, gm)
	}
	if usesUnlit {
		doc.ExtensionsUsed = append(doc.ExtensionsUsed, unlit.ExtensionName)
	}

	var linked []*Object
	for _, o := range s.objects.order {
		if o.Linked {
			linked = append(linked, o)
		}
	}

	geoms := make(map[uint64]geometry)
	meshIndex := make(map[*Mesh]uint32)
	for _, o := range linked {
		m := o.Mesh
		if m == nil {
			continue
		}
		if _, ok := meshIndex[m]; ok {
			continue
		}
		key := geometryKey(m)
		g, ok := geoms[key]
		if !ok {
			positions, normals, indices := triangulate(m)
			g = geometry{
				position: uint32(modeler.WritePosition(doc, positions)),
				normal:   uint32(modeler.WriteNormal(doc, normals)),
				indices:  uint32(modeler.WriteIndices(doc, indices)),
			}
			geoms[key] = g
		}
		prim := &gltf.Primitive{
			Attributes: map[string]uint32{
				gltf.POSITION: g.position,
				gltf.NORMAL:   g.normal,
			},
			Indices: gltf.Index(g.indices),
		}
		if len(m.Materials) > 0 {
			prim.Material = gltf.Index(matIndex[m.Materials[0]])
		}
		meshIndex[m] = uint32(len(doc.Meshes))
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: m.name, Primitives: []*gltf.Primitive{prim}})
	}

	nodeIndex := make(map[*Object]uint32, len(linked))
	for i, o := range linked {
		nodeIndex[o] = uint32(i)
	}
	for _, o := range linked {
		node := &gltf.Node{Name: o.name}
		setVec3(&node.Translation, o.Location)
		if o.Mesh != nil {
			node.Mesh = gltf.Index(meshIndex[o.Mesh])
		}
		doc.Nodes = append(doc.Nodes, node)
	}
	for _, o := range linked {
		if p, ok := nodeIndex[o.Parent]; ok && o.Parent != nil {
			parent := doc.Nodes[p]
			parent.Children = append(parent.Children, nodeIndex[o])
			continue
		}
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, nodeIndex[o])
	}
	return doc, nil
}

// setVec3 fills a glTF vector whatever its float width.
func setVec3[T float32 | float64](dst *[3]T, v [3]float64) {
	dst[0], dst[1], dst[2] = T(v[0]), T(v[1]), T(v[2])
}

func exportMaterial(m *Material) *gltf.Material {
	surf := m.Surface()
	color := surf.RGBA()
	gm := &gltf.Material{
		Name:        m.name,
		DoubleSided: true,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &color,
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
	}
	if surf.Opacity < 1 {
		gm.AlphaMode = gltf.AlphaBlend
	} else {
		gm.AlphaMode = gltf.AlphaOpaque
	}
	if !m.UseNodes {
		gm.Extensions = gltf.Extensions{unlit.ExtensionName: unlit.Unlit{}}
	}
	return gm
}

// geometryKey hashes vertex positions and faces.
func geometryKey(m *Mesh) uint64 {
	d := xxhash.New()
	var buf [4]byte
	for _, v := range m.Vertices {
		for _, f := range v {
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
			_, _ = d.Write(buf[:])
		}
	}
	_, _ = d.Write([]byte{0xff})
	for _, f := range m.Faces {
		for _, i := range f {
			binary.LittleEndian.PutUint32(buf[:], uint32(i))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}

// triangulate splits each quad into two triangles with a flat face normal.
// Faces get their own vertices so normals stay flat.
func triangulate(m *Mesh) (positions [][3]float32, normals [][3]float32, indices []uint32) {
	for _, f := range m.Faces {
		p0, p1, p2 := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		n := faceNormal(p0, p1, p2)
		base := uint32(len(positions))
		for _, vi := range f {
			positions = append(positions, m.Vertices[vi])
			normals = append(normals, n)
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return positions, normals, indices
}

func faceNormal(p0, p1, p2 pixelart.Vertex) [3]float32 {
	vec1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
	vec2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
	cross := [3]float32{
		vec1[1]*vec2[2] - vec1[2]*vec2[1],
		vec1[2]*vec2[0] - vec1[0]*vec2[2],
		vec1[0]*vec2[1] - vec1[1]*vec2[0],
	}
	length := math32.Sqrt(cross[0]*cross[0] + cross[1]*cross[1] + cross[2]*cross[2])
	if length > 0 {
		cross[0] /= length
		cross[1] /= length
		cross[2] /= length
	}
	return cross
}

// WriteGLB writes the scene as binary glTF.
func (s *Scene) WriteGLB(w io.Writer) error {
	doc, err := s.Document()
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode glb: %w", err)
	}
	return nil
}

// GLB returns the scene as binary glTF bytes.
func (s *Scene) GLB() ([]byte, error) {
	var out bytes.Buffer
	if err := s.WriteGLB(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// SaveGLB writes the scene to path. Paths ending in .zst are
// zstd-compressed.
func (s *Scene) SaveGLB(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w, err := compressWriter(f, path)
	if err != nil {
		return err
	}
	if err := s.WriteGLB(w); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
