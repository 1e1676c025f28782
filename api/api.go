package api

import (
	"fmt"
	"path/filepath"

	"github.com/voxelsplace/pixelart/go/pixelart"
	"github.com/voxelsplace/pixelart/go/scene"
)

// PixelArtToGLB converts in-memory image bytes (png, gif or bmp) into .glb
// bytes. name is the file name used for the {filename} field.
func PixelArtToGLB(name string, data []byte, opts pixelart.Options) ([]byte, error) {
	s, _, err := ImportBytes(name, data, opts)
	if err != nil {
		return nil, err
	}
	return s.GLB()
}

// ImportBytes runs an import of image bytes into a fresh scene.
func ImportBytes(name string, data []byte, opts pixelart.Options) (*scene.Scene, *pixelart.Result, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("empty image data")
	}
	name = filepath.Base(name)
	s := scene.New(name)
	s.ReadFile = func(path string) ([]byte, error) {
		if path != name {
			return nil, fmt.Errorf("unknown image %s", path)
		}
		return data, nil
	}
	res, err := pixelart.Import(s, name, opts)
	if err != nil {
		return nil, res, err
	}
	return s, res, nil
}

// ValidateNames compiles the name templates without touching any scene.
func ValidateNames(opts pixelart.Options) error {
	_, err := opts.Compile()
	return err
}
