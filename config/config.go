// Package config loads pixel art import settings from a TOML file.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/voxelsplace/pixelart/go/pixelart"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "pixelart.toml"

// Import mirrors pixelart.Options. Nil fields keep their defaults.
type Import struct {
	UseNodes       *bool   `toml:"use_nodes"`
	ReuseMaterials *bool   `toml:"reuse_materials"`
	GroupName      *string `toml:"group_name"`
	CubeName       *string `toml:"cube_name"`
	MeshName       *string `toml:"mesh_name"`
	MaterialName   *string `toml:"material_name"`
}

type Output struct {
	// Compress writes .glb.zst instead of .glb.
	Compress bool `toml:"compress"`
}

// Config is the file layout.
type Config struct {
	Import  Import `toml:"import"`
	Output  Output `toml:"output"`
	Library string `toml:"library"`
}

// Parse decodes TOML data. Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	var c Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	if c.Library != "" {
		p, err := homedir.Expand(c.Library)
		if err != nil {
			return nil, fmt.Errorf("library: %w", err)
		}
		c.Library = p
	}
	return &c, nil
}

// Load reads a config file. A missing DefaultFile is not an error and
// yields an empty config; any other missing path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", p, err)
	}
	return c, nil
}

// Apply overlays the configured values on opts.
func (c *Config) Apply(opts pixelart.Options) pixelart.Options {
	im := c.Import
	if im.UseNodes != nil {
		opts.UseNodes = *im.UseNodes
	}
	if im.ReuseMaterials != nil {
		opts.ReuseMaterials = *im.ReuseMaterials
	}
	setString(&opts.GroupName, im.GroupName)
	setString(&opts.CubeName, im.CubeName)
	setString(&opts.MeshName, im.MeshName)
	setString(&opts.MaterialName, im.MaterialName)
	return opts
}

// Options returns the defaults with the file values applied.
func (c *Config) Options() pixelart.Options {
	return c.Apply(pixelart.DefaultOptions())
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
