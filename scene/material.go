package scene

import (
	"errors"
	"fmt"

	"github.com/voxelsplace/pixelart/go/pixelart"
)

var (
	ErrSocket      = errors.New("invalid socket")
	ErrForeignNode = errors.New("node belongs to another tree")
)

// DefaultDiffuse is the viewport colour of a new material.
var DefaultDiffuse = pixelart.Color{0.8, 0.8, 0.8, 1}

// Material is a material datablock.
type Material struct {
	name     string
	Diffuse  pixelart.Color
	UseNodes bool

	// Library is the file the material was loaded from, empty for local ones.
	Library string

	tree *NodeTree
}

func newMaterial() *Material {
	return &Material{Diffuse: DefaultDiffuse}
}

func (m *Material) Name() string        { return m.name }
func (m *Material) setName(name string) { m.name = name }

func (m *Material) SetDiffuseColor(c pixelart.Color) { m.Diffuse = c }

// SetUseNodes toggles the node tree. Enabling it on a material without a
// tree creates the default diffuse-to-output graph.
func (m *Material) SetUseNodes(use bool) {
	m.UseNodes = use
	if use && m.tree == nil {
		m.tree = defaultNodeTree()
	}
}

func (m *Material) NodeTree() pixelart.NodeTree { return m.Tree() }

// Tree returns the concrete node tree, creating an empty one if needed.
func (m *Material) Tree() *NodeTree {
	if m.tree == nil {
		m.tree = &NodeTree{}
	}
	return m.tree
}

type socketType uint8

const (
	socketColor socketType = iota
	socketFloat
	socketVector
	socketShader
)

type socketDef struct {
	name string
	typ  socketType
}

var nodeInputs = map[pixelart.NodeKind][]socketDef{
	pixelart.DiffuseBSDF:     {{"Color", socketColor}, {"Roughness", socketFloat}, {"Normal", socketVector}},
	pixelart.TransparentBSDF: {{"Color", socketColor}},
	pixelart.MixShader:       {{"Fac", socketFloat}, {"Shader", socketShader}, {"Shader", socketShader}},
	pixelart.MaterialOutput:  {{"Surface", socketShader}, {"Volume", socketShader}, {"Displacement", socketVector}},
}

var nodeOutputs = map[pixelart.NodeKind][]socketDef{
	pixelart.DiffuseBSDF:     {{"BSDF", socketShader}},
	pixelart.TransparentBSDF: {{"BSDF", socketShader}},
	pixelart.MixShader:       {{"Shader", socketShader}},
	pixelart.MaterialOutput:  nil,
}

// Input is an input socket with its unlinked default value.
type Input struct {
	Name  string
	Color pixelart.Color
	Value float32
	typ   socketType
}

// ShaderNode is a node of a material node tree.
type ShaderNode struct {
	kind   pixelart.NodeKind
	tree   *NodeTree
	Inputs []Input
}

func (n *ShaderNode) Kind() pixelart.NodeKind { return n.kind }

func (n *ShaderNode) input(in int, typ socketType) (*Input, error) {
	if in < 0 || in >= len(n.Inputs) {
		return nil, fmt.Errorf("%s has no input %d: %w", n.kind, in, ErrSocket)
	}
	if n.Inputs[in].typ != typ {
		return nil, fmt.Errorf("%s input %q has the wrong type: %w", n.kind, n.Inputs[in].Name, ErrSocket)
	}
	return &n.Inputs[in], nil
}

func (n *ShaderNode) SetInputColor(in int, c pixelart.Color) error {
	s, err := n.input(in, socketColor)
	if err != nil {
		return err
	}
	s.Color = c
	return nil
}

func (n *ShaderNode) SetInputValue(in int, v float32) error {
	s, err := n.input(in, socketFloat)
	if err != nil {
		return err
	}
	s.Value = v
	return nil
}

// Link connects an output socket to an input socket.
type Link struct {
	From *ShaderNode
	Out  int
	To   *ShaderNode
	In   int
}

// NodeTree is a small shader graph.
type NodeTree struct {
	Nodes []*ShaderNode
	Links []Link
}

func defaultNodeTree() *NodeTree {
	t := &NodeTree{}
	diffuse := t.newNode(pixelart.DiffuseBSDF)
	out := t.newNode(pixelart.MaterialOutput)
	t.Links = append(t.Links, Link{From: diffuse, To: out})
	return t
}

func (t *NodeTree) Clear() {
	t.Nodes = nil
	t.Links = nil
}

func (t *NodeTree) NewNode(kind pixelart.NodeKind) (pixelart.Node, error) {
	if _, ok := nodeInputs[kind]; !ok {
		return nil, fmt.Errorf("unknown node type %s", kind)
	}
	return t.newNode(kind), nil
}

func (t *NodeTree) newNode(kind pixelart.NodeKind) *ShaderNode {
	defs := nodeInputs[kind]
	n := &ShaderNode{kind: kind, tree: t, Inputs: make([]Input, len(defs))}
	for i, d := range defs {
		n.Inputs[i] = Input{Name: d.name, typ: d.typ}
		switch d.typ {
		case socketColor:
			n.Inputs[i].Color = DefaultDiffuse
		case socketFloat:
			n.Inputs[i].Value = 0.5
		}
	}
	if kind == pixelart.DiffuseBSDF {
		n.Inputs[1].Value = 0
	}
	t.Nodes = append(t.Nodes, n)
	return n
}

// Link wires from's output out into to's input in, replacing any link
// already feeding that input.
func (t *NodeTree) Link(from pixelart.Node, out int, to pixelart.Node, in int) error {
	src, ok1 := from.(*ShaderNode)
	dst, ok2 := to.(*ShaderNode)
	if !ok1 || !ok2 || src.tree != t || dst.tree != t {
		return ErrForeignNode
	}
	if out < 0 || out >= len(nodeOutputs[src.kind]) {
		return fmt.Errorf("%s has no output %d: %w", src.kind, out, ErrSocket)
	}
	if in < 0 || in >= len(dst.Inputs) {
		return fmt.Errorf("%s has no input %d: %w", dst.kind, in, ErrSocket)
	}
	for i, l := range t.Links {
		if l.To == dst && l.In == in {
			t.Links = append(t.Links[:i], t.Links[i+1:]...)
			break
		}
	}
	t.Links = append(t.Links, Link{From: src, Out: out, To: dst, In: in})
	return nil
}

// Output returns the material output node, if any.
func (t *NodeTree) Output() *ShaderNode {
	for _, n := range t.Nodes {
		if n.kind == pixelart.MaterialOutput {
			return n
		}
	}
	return nil
}

func (t *NodeTree) linkInto(n *ShaderNode, in int) (*ShaderNode, bool) {
	for _, l := range t.Links {
		if l.To == n && l.In == in {
			return l.From, true
		}
	}
	return nil, false
}
