//go:build !(js && wasm)

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/voxelsplace/pixelart/go/config"
	"github.com/voxelsplace/pixelart/go/pixelart"
	"github.com/voxelsplace/pixelart/go/scene"
	"github.com/voxelsplace/pixelart/go/utils"
)

func usage() {
	fmt.Println("Usage: pixelarttool <command> [flags] [args]")
	fmt.Println("Commands:")
	fmt.Println("  import [flags] input.(png|gif|bmp) output.glb   (one cube per pixel, .glb.zst to compress)")
	fmt.Println("  validate [flags]                                 (check the name templates)")
	fmt.Println("  materials library.glb                            (list named materials of a .glb/.gltf)")
	fmt.Println("Name template fields:")
	fmt.Println("  object name: {filename} {use_nodes}")
	fmt.Println("  pixel, mesh and material names: {filename} {color} {x} {y} {use_nodes}")
}

// importFlags holds the command-line overrides of the config file.
type importFlags struct {
	fs *flag.FlagSet

	configPath   string
	library      string
	useNodes     bool
	reuse        bool
	groupName    string
	cubeName     string
	meshName     string
	materialName string
	compress     bool
	vv, v, q     bool
}

func newImportFlags(name string) *importFlags {
	f := &importFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	d := pixelart.DefaultOptions()
	f.fs.StringVar(&f.configPath, "config", "", "TOML config file (default ./"+config.DefaultFile+" if present)")
	f.fs.StringVar(&f.library, "library", "", "glTF file whose materials can be reused")
	f.fs.BoolVar(&f.useNodes, "nodes", d.UseNodes, "use material nodes")
	f.fs.BoolVar(&f.reuse, "reuse", d.ReuseMaterials, "reuse existing materials with matching names")
	f.fs.StringVar(&f.groupName, "group-name", d.GroupName, "object name template")
	f.fs.StringVar(&f.cubeName, "cube-name", d.CubeName, "pixel names template")
	f.fs.StringVar(&f.meshName, "mesh-name", d.MeshName, "mesh names template")
	f.fs.StringVar(&f.materialName, "material-name", d.MaterialName, "material names template")
	f.fs.BoolVar(&f.compress, "compress", false, "zstd-compress the output")
	f.fs.BoolVar(&f.vv, "vv", false, "debug output")
	f.fs.BoolVar(&f.v, "v", false, "verbose output")
	f.fs.BoolVar(&f.q, "q", false, "only print errors")
	return f
}

// resolve merges defaults, config file and explicitly set flags.
func (f *importFlags) resolve() (pixelart.Options, *config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return pixelart.Options{}, nil, err
	}
	opts := cfg.Options()
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "nodes":
			opts.UseNodes = f.useNodes
		case "reuse":
			opts.ReuseMaterials = f.reuse
		case "group-name":
			opts.GroupName = f.groupName
		case "cube-name":
			opts.CubeName = f.cubeName
		case "mesh-name":
			opts.MeshName = f.meshName
		case "material-name":
			opts.MaterialName = f.materialName
		case "library":
			cfg.Library = f.library
		case "compress":
			cfg.Output.Compress = f.compress
		}
	})
	return opts, cfg, nil
}

// levelFromFlags maps -vv, -v and -q to a log level, in that order.
func levelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func newLogger(f *importFlags) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelFromFlags(f.vv, f.v, f.q)})
	return slog.New(h)
}

func runImport(args []string) error {
	f := newImportFlags("import")
	if err := f.fs.Parse(args); err != nil {
		return err
	}
	if f.fs.NArg() != 2 {
		usage()
		os.Exit(1)
	}
	opts, cfg, err := f.resolve()
	if err != nil {
		return err
	}
	out := f.fs.Arg(1)
	if cfg.Output.Compress && !scene.IsCompressed(out) {
		out += scene.CompressedExt
	}
	log := newLogger(f)
	res, err := utils.RunImportPixelArt(utils.ImportJob{
		Input:   f.fs.Arg(0),
		Output:  out,
		Library: cfg.Library,
		Options: opts,
		Logger:  log,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%d cubes, %d new materials, %d reused -> %s\n", res.Cubes, res.MaterialsCreated, res.MaterialsReused, out)
	return nil
}

func runValidate(args []string) error {
	f := newImportFlags("validate")
	if err := f.fs.Parse(args); err != nil {
		return err
	}
	opts, _, err := f.resolve()
	if err != nil {
		return err
	}
	return utils.RunValidateNames(opts)
}

func runMaterials(args []string) error {
	if len(args) != 1 {
		usage()
		os.Exit(1)
	}
	lines, err := utils.RunListMaterials(args[0])
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(lines, "\n"))
	return nil
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "import":
		err = runImport(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "materials":
		err = runMaterials(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}
