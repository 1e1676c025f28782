package pixelart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShaderGraph_Opaque(t *testing.T) {
	var tree fakeTree
	tree.nodes = []*fakeNode{{kind: MixShader}}
	c := Color{0.2, 0.4, 0.6, 1}
	require.NoError(t, BuildShaderGraph(&tree, c))

	assert.Equal(t, 1, tree.clears)
	require.Len(t, tree.nodes, 2)
	assert.Equal(t, c, tree.node(DiffuseBSDF).colors[0])
	assert.NotNil(t, tree.node(MaterialOutput))
	assert.Equal(t, []fakeLink{{DiffuseBSDF, 0, MaterialOutput, 0}}, tree.links)
}

func TestBuildShaderGraph_Translucent(t *testing.T) {
	var tree fakeTree
	c := Color{1, 0, 0, 0.25}
	require.NoError(t, BuildShaderGraph(&tree, c))

	require.Len(t, tree.nodes, 4)
	assert.Equal(t, c, tree.node(DiffuseBSDF).colors[0])
	assert.Equal(t, c, tree.node(TransparentBSDF).colors[0])
	assert.Equal(t, float32(0.25), tree.node(MixShader).values[0])
	assert.ElementsMatch(t, []fakeLink{
		{DiffuseBSDF, 0, MixShader, 1},
		{TransparentBSDF, 0, MixShader, 2},
		{MixShader, 0, MaterialOutput, 0},
	}, tree.links)
}

func TestNodeKindString(t *testing.T) {
	assert.Equal(t, "ShaderNodeBsdfDiffuse", DiffuseBSDF.String())
	assert.Equal(t, "ShaderNodeOutputMaterial", MaterialOutput.String())
}
