package scene

import (
	"errors"
	"fmt"

	"github.com/voxelsplace/pixelart/go/pixelart"
)

var (
	ErrForeign       = errors.New("datablock belongs to another scene")
	ErrParentCycle   = errors.New("parenting would create a cycle")
	ErrAlreadyLinked = errors.New("object already in collection")
	ErrGeometry      = errors.New("invalid mesh geometry")
)

// Object is a scene object. Objects without a mesh are empty group nodes.
type Object struct {
	name     string
	scene    *Scene
	Mesh     *Mesh
	Location [3]float64
	Parent   *Object
	Linked   bool
}

func (o *Object) Name() string        { return o.name }
func (o *Object) setName(name string) { o.name = name }

func (o *Object) SetLocation(x, y, z float64) {
	o.Location = [3]float64{x, y, z}
}

// SetParent parents o to another object of the same scene. A nil parent
// clears the relation.
func (o *Object) SetParent(parent pixelart.Object) error {
	if parent == nil {
		o.Parent = nil
		return nil
	}
	p, ok := parent.(*Object)
	if !ok || p.scene != o.scene {
		return fmt.Errorf("parent %s: %w", parent.Name(), ErrForeign)
	}
	for a := p; a != nil; a = a.Parent {
		if a == o {
			return fmt.Errorf("parent %s of %s: %w", p.name, o.name, ErrParentCycle)
		}
	}
	o.Parent = p
	return nil
}

// Children returns the direct children of o in creation order.
func (o *Object) Children() []*Object {
	var out []*Object
	for _, c := range o.scene.objects.order {
		if c.Parent == o {
			out = append(out, c)
		}
	}
	return out
}

// Mesh is mesh data shared by objects.
type Mesh struct {
	name      string
	scene     *Scene
	Vertices  []pixelart.Vertex
	Edges     []pixelart.Edge
	Faces     []pixelart.Face
	Materials []*Material
}

func (m *Mesh) Name() string        { return m.name }
func (m *Mesh) setName(name string) { m.name = name }

// AppendMaterial adds a material slot.
func (m *Mesh) AppendMaterial(mat pixelart.Material) error {
	sm, ok := mat.(*Material)
	if !ok {
		return fmt.Errorf("material %s: %w", mat.Name(), ErrForeign)
	}
	if cur, ok := m.scene.materials.get(sm.name); !ok || cur != sm {
		return fmt.Errorf("material %s: %w", sm.name, ErrForeign)
	}
	m.Materials = append(m.Materials, sm)
	return nil
}

func newMesh(vertices []pixelart.Vertex, edges []pixelart.Edge, faces []pixelart.Face) (*Mesh, error) {
	n := len(vertices)
	for _, f := range faces {
		for _, i := range f {
			if i < 0 || i >= n {
				return nil, fmt.Errorf("face %v references vertex %d of %d: %w", f, i, n, ErrGeometry)
			}
		}
	}
	for _, e := range edges {
		if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n {
			return nil, fmt.Errorf("edge %v out of range: %w", e, ErrGeometry)
		}
	}
	m := &Mesh{
		Vertices: append([]pixelart.Vertex(nil), vertices...),
		Faces:    append([]pixelart.Face(nil), faces...),
	}
	if len(edges) > 0 {
		m.Edges = append([]pixelart.Edge(nil), edges...)
	} else {
		m.Edges = pixelart.FaceEdges(faces)
	}
	return m, nil
}
