package utils

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/voxelsplace/pixelart/go/pixelart"
	"github.com/voxelsplace/pixelart/go/scene"
)

// ImportJob describes one image-to-GLB conversion.
type ImportJob struct {
	Input   string
	Output  string
	Library string
	Options pixelart.Options
	Logger  *slog.Logger
}

// RunImportPixelArt converts an image file into a .glb (or .glb.zst) file.
func RunImportPixelArt(job ImportJob) (*pixelart.Result, error) {
	if !pixelart.HasImageExtension(job.Input) {
		return nil, fmt.Errorf("%s: expected one of %s", job.Input, pixelart.FilterGlob)
	}
	s := scene.New(job.Input)
	s.Logger = job.Logger
	if job.Library != "" {
		n, err := s.LoadMaterialLibrary(job.Library)
		if err != nil {
			return nil, err
		}
		logger(job).Info("material library", "path", job.Library, "materials", n)
	}

	conv := &pixelart.Converter{Host: s, Options: job.Options, Logger: job.Logger}
	res, err := conv.Import(job.Input)
	if err != nil {
		return res, err
	}
	if err := s.SaveGLB(job.Output); err != nil {
		return res, fmt.Errorf("save %s: %w", job.Output, err)
	}
	return res, nil
}

func logger(job ImportJob) *slog.Logger {
	if job.Logger != nil {
		return job.Logger
	}
	return slog.Default()
}

// RunValidateNames compiles the four name templates.
func RunValidateNames(opts pixelart.Options) error {
	_, err := opts.Compile()
	return err
}

// RunListMaterials returns the named materials of a glTF file as
// "name #RRGGBBAA" lines.
func RunListMaterials(path string) ([]string, error) {
	s := scene.New(path)
	if _, err := s.LoadMaterialLibrary(path); err != nil {
		return nil, err
	}
	var lines []string
	for _, m := range s.Materials() {
		kind := "nodes"
		if !m.UseNodes {
			kind = "flat"
		}
		lines = append(lines, strings.Join([]string{m.Name(), m.Diffuse.String(), kind}, " "))
	}
	return lines, nil
}
