package pixelart

import "fmt"

// Socket indices used when wiring the per-colour shader graph.
const (
	mixFactorIn = 0
	mixShaderA  = 1
	mixShaderB  = 2
	bsdfColorIn = 0
	shaderOut   = 0
	surfaceIn   = 0
)

// BuildShaderGraph replaces the material's node tree with a diffuse shader
// of colour c feeding the output. A colour with alpha below 1 additionally
// gets a transparent shader mixed in by alpha.
func BuildShaderGraph(tree NodeTree, c Color) error {
	tree.Clear()

	diffuse, err := tree.NewNode(DiffuseBSDF)
	if err != nil {
		return err
	}
	if err := diffuse.SetInputColor(bsdfColorIn, c); err != nil {
		return fmt.Errorf("diffuse color: %w", err)
	}
	output, err := tree.NewNode(MaterialOutput)
	if err != nil {
		return err
	}

	if c.Opaque() {
		return tree.Link(diffuse, shaderOut, output, surfaceIn)
	}

	mix, err := tree.NewNode(MixShader)
	if err != nil {
		return err
	}
	if err := mix.SetInputValue(mixFactorIn, c.A()); err != nil {
		return fmt.Errorf("mix factor: %w", err)
	}
	transparent, err := tree.NewNode(TransparentBSDF)
	if err != nil {
		return err
	}
	if err := transparent.SetInputColor(bsdfColorIn, c); err != nil {
		return fmt.Errorf("transparent color: %w", err)
	}
	if err := tree.Link(diffuse, shaderOut, mix, mixShaderA); err != nil {
		return err
	}
	if err := tree.Link(transparent, shaderOut, mix, mixShaderB); err != nil {
		return err
	}
	return tree.Link(mix, shaderOut, output, surfaceIn)
}
