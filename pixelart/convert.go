package pixelart

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
)

// Result summarises an import run. On error it describes what was created
// before the failure; created objects are not rolled back.
type Result struct {
	Group            Object
	Cubes            int
	MaterialsCreated int
	MaterialsReused  int
	Skipped          int
	Elapsed          time.Duration
}

// Converter turns pixel images into cube groups inside a Host.
type Converter struct {
	Host    Host
	Options Options
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Import converts the image at path with the default logger.
func Import(host Host, path string, opts Options) (*Result, error) {
	c := &Converter{Host: host, Options: opts}
	return c.Import(path)
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Import validates the name templates, loads the image through the host
// and emits one cube per non-transparent pixel under a new group node.
// The image is released on every path once it has been loaded.
func (c *Converter) Import(path string) (res *Result, err error) {
	names, err := c.Options.Compile()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	img, err := c.Host.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer func() {
		if rerr := c.Host.ReleaseImage(img); rerr != nil {
			err = errors.Join(err, fmt.Errorf("release %s: %w", path, rerr))
		}
	}()

	res = &Result{}
	err = c.convert(res, img, filepath.Base(path), names)
	res.Elapsed = time.Since(start)
	if err != nil {
		return res, err
	}
	c.logger().Info("import pixel art", "file", path, "cubes", res.Cubes,
		"materials", res.MaterialsCreated, "reused", res.MaterialsReused, "took", res.Elapsed)
	return res, nil
}

func (c *Converter) convert(res *Result, img *Image, filename string, names *NameTemplates) error {
	if err := img.Check(); err != nil {
		return err
	}
	h := c.Host
	opts := c.Options
	log := c.logger()

	params := NameParams{Filename: filename, UseNodes: opts.UseNodes}
	group, err := h.NewObject(names.Group.Execute(params), nil)
	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	if err := h.LinkObject(group); err != nil {
		return fmt.Errorf("link group: %w", err)
	}
	res.Group = group

	edges := []Edge{}
	materials := make(map[Color]Material)
	alpha := img.HasAlpha()
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			color := img.Pixel(x, y)
			if alpha && color.A() == 0 {
				res.Skipped++
				continue
			}
			params.Color, params.X, params.Y = color, x, y

			mat, ok := materials[color]
			if !ok {
				mat, err = c.resolveMaterial(res, names.Material.Execute(params), color)
				if err != nil {
					return fmt.Errorf("pixel (%d, %d): %w", x, y, err)
				}
				materials[color] = mat
			}

			mesh, err := h.NewMesh(names.Mesh.Execute(params), CubeVertices, edges, CubeFaces)
			if err != nil {
				return fmt.Errorf("pixel (%d, %d): create mesh: %w", x, y, err)
			}
			if err := mesh.AppendMaterial(mat); err != nil {
				return fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}
			obj, err := h.NewObject(names.Cube.Execute(params), mesh)
			if err != nil {
				return fmt.Errorf("pixel (%d, %d): create object: %w", x, y, err)
			}
			if err := h.LinkObject(obj); err != nil {
				return fmt.Errorf("pixel (%d, %d): link object: %w", x, y, err)
			}
			obj.SetLocation(float64(x), float64(y), 0)
			if err := obj.SetParent(group); err != nil {
				return fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}
			res.Cubes++
		}
	}
	log.Debug("pixel art converted", "group", group.Name(), "width", img.Width,
		"height", img.Height, "channels", img.Channels, "skipped", res.Skipped)
	return nil
}

func (c *Converter) resolveMaterial(res *Result, name string, color Color) (Material, error) {
	if c.Options.ReuseMaterials {
		if mat, ok := c.Host.LookupMaterial(name); ok {
			res.MaterialsReused++
			return mat, nil
		}
	}
	mat, err := c.Host.NewMaterial(name)
	if err != nil {
		return nil, fmt.Errorf("create material %s: %w", name, err)
	}
	mat.SetDiffuseColor(color)
	mat.SetUseNodes(c.Options.UseNodes)
	if c.Options.UseNodes {
		if err := BuildShaderGraph(mat.NodeTree(), color); err != nil {
			return nil, fmt.Errorf("material %s: %w", name, err)
		}
	}
	res.MaterialsCreated++
	return mat, nil
}
