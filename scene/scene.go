// Package scene is an in-memory 3D host for the pixel art importer. It keeps
// object, mesh, material and image datablocks in name-unique registries and
// exports the linked objects as glTF.
package scene

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/voxelsplace/pixelart/go/pixelart"
)

// Scene implements pixelart.Host. It is not safe for concurrent use.
type Scene struct {
	Name string

	// ReadFile loads image files; defaults to os.ReadFile.
	ReadFile func(path string) ([]byte, error)
	Logger   *slog.Logger

	objects   registry[*Object]
	meshes    registry[*Mesh]
	materials registry[*Material]
	images    registry[*ImageBlock]

	imagesLoaded   int
	imagesReleased int
}

var _ pixelart.Host = (*Scene)(nil)

func New(name string) *Scene {
	return &Scene{Name: name}
}

func (s *Scene) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Scene) readFile(path string) ([]byte, error) {
	if s.ReadFile != nil {
		return s.ReadFile(path)
	}
	return os.ReadFile(path)
}

// NewObject creates an object holding mesh, or an empty group node when mesh is nil.
func (s *Scene) NewObject(name string, mesh pixelart.Mesh) (pixelart.Object, error) {
	o := &Object{scene: s}
	if mesh != nil {
		m, ok := mesh.(*Mesh)
		if !ok || m.scene != s {
			return nil, fmt.Errorf("mesh %s: %w", mesh.Name(), ErrForeign)
		}
		o.Mesh = m
	}
	s.objects.add(o, name)
	return o, nil
}

func (s *Scene) NewMesh(name string, vertices []pixelart.Vertex, edges []pixelart.Edge, faces []pixelart.Face) (pixelart.Mesh, error) {
	m, err := newMesh(vertices, edges, faces)
	if err != nil {
		return nil, fmt.Errorf("mesh %s: %w", name, err)
	}
	m.scene = s
	s.meshes.add(m, name)
	return m, nil
}

func (s *Scene) NewMaterial(name string) (pixelart.Material, error) {
	m := newMaterial()
	s.materials.add(m, name)
	return m, nil
}

func (s *Scene) LookupMaterial(name string) (pixelart.Material, bool) {
	m, ok := s.materials.get(name)
	if !ok {
		return nil, false
	}
	return m, true
}

// LinkObject links obj into the scene collection so it gets exported.
func (s *Scene) LinkObject(obj pixelart.Object) error {
	o, ok := obj.(*Object)
	if !ok || o.scene != s {
		return fmt.Errorf("object %s: %w", obj.Name(), ErrForeign)
	}
	if o.Linked {
		return fmt.Errorf("object %s: %w", o.name, ErrAlreadyLinked)
	}
	o.Linked = true
	return nil
}

func (s *Scene) Object(name string) (*Object, bool)     { return s.objects.get(name) }
func (s *Scene) Material(name string) (*Material, bool) { return s.materials.get(name) }
func (s *Scene) MeshByName(name string) (*Mesh, bool)   { return s.meshes.get(name) }

func (s *Scene) Objects() []*Object     { return s.objects.all() }
func (s *Scene) Meshes() []*Mesh        { return s.meshes.all() }
func (s *Scene) Materials() []*Material { return s.materials.all() }

// Stats counts datablocks and image cache activity.
type Stats struct {
	Objects        int
	Meshes         int
	Materials      int
	Images         int
	ImagesLoaded   int
	ImagesReleased int
}

func (s *Scene) Stats() Stats {
	return Stats{
		Objects:        s.objects.len(),
		Meshes:         s.meshes.len(),
		Materials:      s.materials.len(),
		Images:         s.images.len(),
		ImagesLoaded:   s.imagesLoaded,
		ImagesReleased: s.imagesReleased,
	}
}
