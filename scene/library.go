package scene

import (
	"fmt"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/unlit"

	"github.com/voxelsplace/pixelart/go/pixelart"
)

// ReadLibrary decodes a .glb, .gltf or .glb.zst file.
func ReadLibrary(path string) (*gltf.Document, error) {
	if !IsCompressed(path) {
		doc, err := gltf.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open library %s: %w", path, err)
		}
		return doc, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := decompressReader(f, path)
	if err != nil {
		return nil, fmt.Errorf("open library %s: %w", path, err)
	}
	defer r.Close()
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode library %s: %w", path, err)
	}
	return doc, nil
}

// LoadMaterialLibrary registers the named materials of a glTF file so that
// imports with material reuse can find them. It returns the number of
// materials added.
func (s *Scene) LoadMaterialLibrary(path string) (int, error) {
	doc, err := ReadLibrary(path)
	if err != nil {
		return 0, err
	}
	return s.AddLibraryMaterials(doc, path), nil
}

// AddLibraryMaterials registers the named materials of doc.
func (s *Scene) AddLibraryMaterials(doc *gltf.Document, path string) int {
	n := 0
	for _, gm := range doc.Materials {
		if gm == nil || gm.Name == "" {
			continue
		}
		m := newMaterial()
		m.Library = path
		if pbr := gm.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
			f := pbr.BaseColorFactor
			m.Diffuse = pixelart.Color{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
		}
		if _, flat := gm.Extensions[unlit.ExtensionName]; !flat {
			m.UseNodes = true
			m.tree = opacityTree(m.Diffuse)
		}
		s.materials.add(m, gm.Name)
		n++
	}
	s.logger().Debug("material library loaded", "path", path, "materials", n)
	return n
}

// opacityTree rebuilds a node tree whose surface has colour c and opacity
// c.A(), the inverse of what export flattens.
func opacityTree(c pixelart.Color) *NodeTree {
	t := &NodeTree{}
	diffuse := t.newNode(pixelart.DiffuseBSDF)
	diffuse.Inputs[0].Color = c
	out := t.newNode(pixelart.MaterialOutput)
	if c.Opaque() {
		t.Links = append(t.Links, Link{From: diffuse, To: out})
		return t
	}
	mix := t.newNode(pixelart.MixShader)
	mix.Inputs[0].Value = 1 - c.A()
	transparent := t.newNode(pixelart.TransparentBSDF)
	transparent.Inputs[0].Color = c
	t.Links = append(t.Links,
		Link{From: diffuse, To: mix, In: 1},
		Link{From: transparent, To: mix, In: 2},
		Link{From: mix, To: out},
	)
	return t
}
