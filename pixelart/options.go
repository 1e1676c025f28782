package pixelart

const (
	DefaultGroupName    = "{filename}"
	DefaultMaterialName = "pixel_art_{color}"
	DefaultCubeName     = "{filename}_{x}_{y}"
	DefaultMeshName     = "{filename}_{x}_{y}_mesh"
)

// Options configure an import run.
type Options struct {
	// UseNodes builds a diffuse/transparent shader graph per colour.
	// Otherwise materials only carry a flat diffuse colour.
	UseNodes bool
	// ReuseMaterials looks up an existing material by its computed name
	// before creating a new one.
	ReuseMaterials bool

	GroupName    string
	CubeName     string
	MeshName     string
	MaterialName string
}

func DefaultOptions() Options {
	return Options{
		UseNodes:     true,
		GroupName:    DefaultGroupName,
		CubeName:     DefaultCubeName,
		MeshName:     DefaultMeshName,
		MaterialName: DefaultMaterialName,
	}
}

// NameTemplates are the compiled name settings of an Options value.
type NameTemplates struct {
	Group    *Template
	Cube     *Template
	Mesh     *Template
	Material *Template
}

// Compile parses the four name templates. The first failing setting is
// returned as a *TemplateError.
func (o Options) Compile() (*NameTemplates, error) {
	var nt NameTemplates
	for _, s := range []struct {
		setting string
		kind    TemplateKind
		src     string
		dst     **Template
	}{
		{"object name", GroupTemplate, o.GroupName, &nt.Group},
		{"material names", PixelTemplate, o.MaterialName, &nt.Material},
		{"mesh names", PixelTemplate, o.MeshName, &nt.Mesh},
		{"pixel names", PixelTemplate, o.CubeName, &nt.Cube},
	} {
		t, err := ParseTemplate(s.kind, s.setting, s.src)
		if err != nil {
			return nil, err
		}
		*s.dst = t
	}
	return &nt, nil
}
