package pixelart

// Host is the 3D application the converter populates. Implementations own
// the object, mesh, material and image registries; the converter only
// calls into them.
type Host interface {
	// LoadImage decodes the file at path into a pixel buffer.
	LoadImage(path string) (*Image, error)
	// ReleaseImage dereferences the image and purges it from the host's
	// image cache. It is called exactly once per loaded image.
	ReleaseImage(img *Image) error

	// NewObject creates an object. A nil mesh creates an empty group node.
	NewObject(name string, mesh Mesh) (Object, error)
	// NewMesh creates a mesh from vertices, explicit edges and quad faces.
	NewMesh(name string, vertices []Vertex, edges []Edge, faces []Face) (Mesh, error)
	NewMaterial(name string) (Material, error)
	// LookupMaterial finds an existing material by exact name.
	LookupMaterial(name string) (Material, bool)
	// LinkObject links the object into the active scene collection.
	LinkObject(obj Object) error
}

type Object interface {
	Name() string
	SetLocation(x, y, z float64)
	SetParent(parent Object) error
}

type Mesh interface {
	Name() string
	AppendMaterial(mat Material) error
}

type Material interface {
	Name() string
	SetDiffuseColor(c Color)
	SetUseNodes(use bool)
	// NodeTree is only valid once use-nodes has been enabled.
	NodeTree() NodeTree
}

// NodeKind identifies a shading node type.
type NodeKind uint8

const (
	DiffuseBSDF NodeKind = iota
	TransparentBSDF
	MixShader
	MaterialOutput
)

func (k NodeKind) String() string {
	switch k {
	case DiffuseBSDF:
		return "ShaderNodeBsdfDiffuse"
	case TransparentBSDF:
		return "ShaderNodeBsdfTransparent"
	case MixShader:
		return "ShaderNodeMixShader"
	case MaterialOutput:
		return "ShaderNodeOutputMaterial"
	}
	return "ShaderNodeUnknown"
}

type NodeTree interface {
	Clear()
	NewNode(kind NodeKind) (Node, error)
	// Link connects output socket out of from to input socket in of to.
	Link(from Node, out int, to Node, in int) error
}

type Node interface {
	Kind() NodeKind
	SetInputColor(in int, c Color) error
	SetInputValue(in int, v float32) error
}
