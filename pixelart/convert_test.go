package pixelart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgbImage(t *testing.T, w, h int, px ...float32) *Image {
	t.Helper()
	img, err := NewImage("test", w, h, 3, px)
	require.NoError(t, err)
	return img
}

func TestImport_TwoPixelExample(t *testing.T) {
	host := newFakeHost(rgbImage(t, 2, 1, 1, 0, 0, 0, 1, 0))

	res, err := Import(host, "/tmp/img.png", DefaultOptions())
	require.NoError(t, err)

	groups := host.groups()
	require.Len(t, groups, 1)
	assert.Equal(t, "img.png", groups[0].name)
	assert.Same(t, groups[0], res.Group)

	cubes := host.cubes()
	require.Len(t, cubes, 2)
	assert.Equal(t, "img.png_0_0", cubes[0].name)
	assert.Equal(t, "img.png_0_0_mesh", cubes[0].mesh.name)
	assert.Equal(t, [3]float64{0, 0, 0}, cubes[0].location)
	assert.Equal(t, [3]float64{1, 0, 0}, cubes[1].location)
	for _, c := range cubes {
		assert.Same(t, groups[0], c.parent)
	}

	require.Len(t, host.created, 2)
	assert.Equal(t, "pixel_art_FF0000FF", host.created[0].name)
	assert.Equal(t, "pixel_art_00FF00FF", host.created[1].name)
	assert.Equal(t, 2, res.Cubes)
	assert.Equal(t, 2, res.MaterialsCreated)
	assert.Equal(t, 1, host.releases)

	// group first, then every cube
	require.Len(t, host.linked, 3)
	assert.Same(t, groups[0], host.linked[0])
}

func TestImport_OpaqueCounts(t *testing.T) {
	// 3x2 with 3 distinct colours
	px := []float32{
		1, 0, 0, 0, 0, 1, 1, 0, 0,
		0, 0, 1, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
	}
	host := newFakeHost(rgbImage(t, 3, 2, px...))
	res, err := Import(host, "grid.bmp", DefaultOptions())
	require.NoError(t, err)

	assert.Len(t, host.cubes(), 6)
	assert.Len(t, host.created, 3)
	assert.Equal(t, 6, res.Cubes)
	assert.Zero(t, res.Skipped)

	used := map[*fakeMaterial]int{}
	for _, c := range host.cubes() {
		require.Len(t, c.mesh.materials, 1)
		used[c.mesh.materials[0].(*fakeMaterial)]++
	}
	assert.Len(t, used, 3)
}

func TestImport_RowMajorOrder(t *testing.T) {
	host := newFakeHost(rgbImage(t, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0))
	_, err := Import(host, "o.png", DefaultOptions())
	require.NoError(t, err)

	var names []string
	for _, c := range host.cubes() {
		names = append(names, c.name)
	}
	assert.Equal(t, []string{"o.png_0_0", "o.png_1_0", "o.png_0_1", "o.png_1_1"}, names)
}

func TestImport_SkipsTransparentPixels(t *testing.T) {
	// the blue transparent pixel must not create or look up a material
	img, err := NewImage("t", 3, 1, 4, []float32{
		1, 0, 0, 1,
		0, 0, 1, 0,
		1, 0, 0, 0.5,
	})
	require.NoError(t, err)
	host := newFakeHost(img)
	opts := DefaultOptions()
	opts.ReuseMaterials = true

	res, err := Import(host, "t.png", opts)
	require.NoError(t, err)
	assert.Len(t, host.cubes(), 2)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []string{"pixel_art_FF0000FF", "pixel_art_FF00007F"}, host.lookups)
	assert.Equal(t, [3]float64{2, 0, 0}, host.cubes()[1].location)
}

func TestImport_AlphaZeroSharedColor(t *testing.T) {
	img, err := NewImage("t", 2, 1, 4, []float32{0, 1, 0, 0, 0, 1, 0, 1})
	require.NoError(t, err)
	host := newFakeHost(img)
	_, err = Import(host, "t.png", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, host.created, 1)
	assert.Equal(t, Color{0, 1, 0, 1}, host.created[0].diffuse)
}

func TestImport_ExactColorKeys(t *testing.T) {
	// both render to the same hex string but are distinct keys
	a := float32(0.5)
	b := float32(0.501)
	host := newFakeHost(rgbImage(t, 3, 1, a, a, a, b, a, a, a, a, a))
	require.Equal(t, Color{a, a, a, 1}.Hex(), Color{b, a, a, 1}.Hex())

	_, err := Import(host, "k.gif", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, host.created, 2)
	cubes := host.cubes()
	assert.Same(t, cubes[0].mesh.materials[0], cubes[2].mesh.materials[0])
	assert.NotSame(t, cubes[0].mesh.materials[0], cubes[1].mesh.materials[0])
}

func TestImport_GrayscaleChannels(t *testing.T) {
	img, err := NewImage("g", 2, 1, 1, []float32{0.25, 1})
	require.NoError(t, err)
	host := newFakeHost(img)
	_, err = Import(host, "g.png", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, host.created, 2)
	assert.Equal(t, Color{0.25, 0.25, 0.25, 1}, host.created[0].diffuse)
}

func TestImport_UnsupportedChannels(t *testing.T) {
	for _, ch := range []int{0, 2, 5} {
		img := &Image{Name: "bad", Width: 1, Height: 1, Channels: ch, Pixels: make([]float32, ch)}
		host := newFakeHost(img)
		res, err := Import(host, "bad.png", DefaultOptions())
		require.ErrorIs(t, err, ErrUnsupportedChannels, "channels=%d", ch)
		assert.Contains(t, err.Error(), "cannot handle image with")
		assert.Empty(t, host.objects)
		assert.Empty(t, host.created)
		assert.Equal(t, 1, host.releases)
		require.NotNil(t, res)
		assert.Zero(t, res.Cubes)
	}
}

func TestImport_TemplateErrorsBeforeLoad(t *testing.T) {
	set := []func(*Options){
		func(o *Options) { o.GroupName = "{bogus}" },
		func(o *Options) { o.GroupName = "{color}" },
		func(o *Options) { o.CubeName = "{bogus}" },
		func(o *Options) { o.MeshName = "{bogus}" },
		func(o *Options) { o.MaterialName = "{bogus}" },
	}
	for i, mutate := range set {
		host := newFakeHost(rgbImage(t, 1, 1, 1, 1, 1))
		opts := DefaultOptions()
		mutate(&opts)
		_, err := Import(host, "x.png", opts)
		require.ErrorIs(t, err, ErrUnknownField, "case %d", i)
		assert.Zero(t, host.loads)
		assert.Zero(t, host.releases)
		assert.Empty(t, host.objects)
	}

	host := newFakeHost(rgbImage(t, 1, 1, 1, 1, 1))
	opts := DefaultOptions()
	opts.MaterialName = "{bogus}"
	_, err := Import(host, "x.png", opts)
	assert.EqualError(t, err, `illegal key used in material names: "bogus"`)

	opts = DefaultOptions()
	opts.CubeName = "{x"
	_, err = Import(host, "x.png", opts)
	require.ErrorIs(t, err, ErrTemplateSyntax)
	assert.Zero(t, host.loads)
}

func TestImport_ReuseExistingMaterial(t *testing.T) {
	host := newFakeHost(rgbImage(t, 2, 1, 1, 0, 0, 1, 0, 0))
	existing := &fakeMaterial{name: "pixel_art_FF0000FF", diffuse: Color{0, 0, 0, 1}}
	host.materials[existing.name] = existing

	opts := DefaultOptions()
	opts.ReuseMaterials = true
	res, err := Import(host, "r.png", opts)
	require.NoError(t, err)

	assert.Empty(t, host.created)
	assert.Equal(t, 1, res.MaterialsReused)
	assert.Zero(t, existing.writes)
	assert.Equal(t, Color{0, 0, 0, 1}, existing.diffuse)
	for _, c := range host.cubes() {
		assert.Same(t, existing, c.mesh.materials[0])
	}
	// looked up once, then served from the run-local cache
	assert.Len(t, host.lookups, 1)
}

func TestImport_NoReuseIgnoresExisting(t *testing.T) {
	host := newFakeHost(rgbImage(t, 1, 1, 1, 0, 0))
	host.materials["pixel_art_FF0000FF"] = &fakeMaterial{name: "pixel_art_FF0000FF"}
	_, err := Import(host, "r.png", DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, host.created, 1)
	assert.Empty(t, host.lookups)
}

func TestImport_FlatMaterials(t *testing.T) {
	host := newFakeHost(rgbImage(t, 1, 1, 0, 0, 1))
	opts := DefaultOptions()
	opts.UseNodes = false
	opts.GroupName = "{filename}_{use_nodes}"
	_, err := Import(host, "f.png", opts)
	require.NoError(t, err)
	require.Len(t, host.created, 1)
	m := host.created[0]
	assert.False(t, m.useNodes)
	assert.Zero(t, m.tree.clears)
	assert.Empty(t, m.tree.nodes)
	assert.Equal(t, "f.png_", host.groups()[0].name)
}

func TestImport_ReleaseOnHostFailure(t *testing.T) {
	host := newFakeHost(rgbImage(t, 3, 1, 1, 0, 0, 0, 1, 0, 0, 0, 1))
	host.failMeshAt = 2
	res, err := Import(host, "e.png", DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pixel (1, 0)")
	assert.Equal(t, 1, host.releases)
	// no rollback of what was created before the failure
	assert.Equal(t, 1, res.Cubes)
	assert.Len(t, host.cubes(), 1)
}

func TestImport_LoadFailure(t *testing.T) {
	host := newFakeHost(nil)
	host.loadErr = errors.New("no such file")
	_, err := Import(host, "missing.png", DefaultOptions())
	require.Error(t, err)
	assert.Zero(t, host.releases)
	assert.Empty(t, host.objects)
}

func TestImport_UnitCubeGeometry(t *testing.T) {
	host := newFakeHost(rgbImage(t, 1, 1, 1, 1, 1))
	_, err := Import(host, "c.png", DefaultOptions())
	require.NoError(t, err)
	m := host.meshes[0]
	assert.Len(t, m.vertices, 8)
	assert.Len(t, m.faces, 6)
	assert.Empty(t, m.edges)
	assert.Len(t, FaceEdges(m.faces), 12)
}
