package scene

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/voxelsplace/pixelart/go/pixelart"
)

var ErrImageNotLoaded = errors.New("image is not loaded")

// ImageBlock is an image datablock in the scene's image cache.
type ImageBlock struct {
	name  string
	Path  string
	Hash  uint64
	Users int
	Image *pixelart.Image
}

func (b *ImageBlock) Name() string        { return b.name }
func (b *ImageBlock) setName(name string) { b.name = name }

// LoadImage reads and decodes an image file and registers it with one user.
// A resident image with identical file contents shares its pixel buffer.
func (s *Scene) LoadImage(path string) (*pixelart.Image, error) {
	data, err := s.readFile(path)
	if err != nil {
		return nil, err
	}
	hash := xxhash.Sum64(data)

	var pixels *pixelart.Image
	for _, b := range s.images.order {
		if b.Hash == hash {
			pixels = b.Image
			s.logger().Debug("image cache hit", "path", path, "shared", b.name)
			break
		}
	}
	if pixels == nil {
		pixels, err = pixelart.Decode(filepath.Base(path), data)
		if err != nil {
			return nil, err
		}
	}

	block := &ImageBlock{Path: path, Hash: hash, Users: 1}
	s.images.add(block, filepath.Base(path))
	img := *pixels
	img.Name = block.name
	block.Image = &img
	s.imagesLoaded++
	return block.Image, nil
}

// ReleaseImage clears the image's users and removes it from the cache.
func (s *Scene) ReleaseImage(img *pixelart.Image) error {
	if img == nil {
		return ErrImageNotLoaded
	}
	block, ok := s.images.get(img.Name)
	if !ok || block.Image != img {
		return fmt.Errorf("%s: %w", img.Name, ErrImageNotLoaded)
	}
	block.Users = 0
	s.images.remove(block)
	s.imagesReleased++
	return nil
}

// Images returns the resident image datablocks.
func (s *Scene) Images() []*ImageBlock {
	return s.images.all()
}
