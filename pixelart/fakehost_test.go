package pixelart

import (
	"errors"
	"fmt"
)

// fakeHost records every call the converter makes.
type fakeHost struct {
	image      *Image
	loadErr    error
	loads      int
	releases   int
	failMeshAt int // fail the n-th NewMesh call (1-based), 0 = never

	objects   []*fakeObject
	linked    []Object
	meshes    []*fakeMesh
	materials map[string]*fakeMaterial
	created   []*fakeMaterial
	lookups   []string
}

func newFakeHost(img *Image) *fakeHost {
	return &fakeHost{image: img, materials: map[string]*fakeMaterial{}}
}

func (h *fakeHost) LoadImage(path string) (*Image, error) {
	h.loads++
	if h.loadErr != nil {
		return nil, h.loadErr
	}
	return h.image, nil
}

func (h *fakeHost) ReleaseImage(img *Image) error {
	if img != h.image {
		return errors.New("released foreign image")
	}
	h.releases++
	return nil
}

func (h *fakeHost) NewObject(name string, mesh Mesh) (Object, error) {
	o := &fakeObject{name: name}
	if mesh != nil {
		o.mesh = mesh.(*fakeMesh)
	}
	h.objects = append(h.objects, o)
	return o, nil
}

func (h *fakeHost) NewMesh(name string, vertices []Vertex, edges []Edge, faces []Face) (Mesh, error) {
	if h.failMeshAt > 0 && len(h.meshes)+1 == h.failMeshAt {
		return nil, fmt.Errorf("mesh %s: out of memory", name)
	}
	m := &fakeMesh{name: name, vertices: vertices, edges: edges, faces: faces}
	h.meshes = append(h.meshes, m)
	return m, nil
}

func (h *fakeHost) NewMaterial(name string) (Material, error) {
	m := &fakeMaterial{name: name}
	h.materials[name] = m
	h.created = append(h.created, m)
	return m, nil
}

func (h *fakeHost) LookupMaterial(name string) (Material, bool) {
	h.lookups = append(h.lookups, name)
	m, ok := h.materials[name]
	if !ok {
		return nil, false
	}
	return m, true
}

func (h *fakeHost) LinkObject(obj Object) error {
	h.linked = append(h.linked, obj)
	return nil
}

// groups returns objects without a mesh.
func (h *fakeHost) groups() []*fakeObject {
	var out []*fakeObject
	for _, o := range h.objects {
		if o.mesh == nil {
			out = append(out, o)
		}
	}
	return out
}

func (h *fakeHost) cubes() []*fakeObject {
	var out []*fakeObject
	for _, o := range h.objects {
		if o.mesh != nil {
			out = append(out, o)
		}
	}
	return out
}

type fakeObject struct {
	name     string
	mesh     *fakeMesh
	location [3]float64
	parent   Object
}

func (o *fakeObject) Name() string { return o.name }

func (o *fakeObject) SetLocation(x, y, z float64) { o.location = [3]float64{x, y, z} }

func (o *fakeObject) SetParent(parent Object) error {
	o.parent = parent
	return nil
}

type fakeMesh struct {
	name      string
	vertices  []Vertex
	edges     []Edge
	faces     []Face
	materials []Material
}

func (m *fakeMesh) Name() string { return m.name }

func (m *fakeMesh) AppendMaterial(mat Material) error {
	m.materials = append(m.materials, mat)
	return nil
}

type fakeMaterial struct {
	name     string
	diffuse  Color
	useNodes bool
	writes   int
	tree     fakeTree
}

func (m *fakeMaterial) Name() string { return m.name }

func (m *fakeMaterial) SetDiffuseColor(c Color) {
	m.diffuse = c
	m.writes++
}

func (m *fakeMaterial) SetUseNodes(use bool) {
	m.useNodes = use
	m.writes++
}

func (m *fakeMaterial) NodeTree() NodeTree { return &m.tree }

type fakeLink struct {
	from NodeKind
	out  int
	to   NodeKind
	in   int
}

type fakeTree struct {
	nodes  []*fakeNode
	links  []fakeLink
	clears int
}

func (t *fakeTree) Clear() {
	t.nodes, t.links = nil, nil
	t.clears++
}

func (t *fakeTree) NewNode(kind NodeKind) (Node, error) {
	n := &fakeNode{kind: kind, colors: map[int]Color{}, values: map[int]float32{}}
	t.nodes = append(t.nodes, n)
	return n, nil
}

func (t *fakeTree) Link(from Node, out int, to Node, in int) error {
	t.links = append(t.links, fakeLink{from.Kind(), out, to.Kind(), in})
	return nil
}

func (t *fakeTree) node(kind NodeKind) *fakeNode {
	for _, n := range t.nodes {
		if n.kind == kind {
			return n
		}
	}
	return nil
}

type fakeNode struct {
	kind   NodeKind
	colors map[int]Color
	values map[int]float32
}

func (n *fakeNode) Kind() NodeKind { return n.kind }

func (n *fakeNode) SetInputColor(in int, c Color) error {
	n.colors[in] = c
	return nil
}

func (n *fakeNode) SetInputValue(in int, v float32) error {
	n.values[in] = v
	return nil
}
