package scene

import "github.com/voxelsplace/pixelart/go/pixelart"

// Surface is the flattened appearance of a material: a base colour and
// an opacity.
type Surface struct {
	Color   [3]float32
	Opacity float32
}

// RGBA returns the surface as a base colour factor.
func (s Surface) RGBA() [4]float32 {
	return [4]float32{s.Color[0], s.Color[1], s.Color[2], s.Opacity}
}

var blackSurface = Surface{Opacity: 1}

// Surface evaluates the material. Flat materials use the diffuse colour;
// node materials follow the shader linked into the output, where a mix
// node weights its first shader by 1-fac and its second by fac.
func (m *Material) Surface() Surface {
	if !m.UseNodes {
		d := m.Diffuse
		return Surface{Color: [3]float32{d[0], d[1], d[2]}, Opacity: d[3]}
	}
	t := m.Tree()
	out := t.Output()
	if out == nil {
		return blackSurface
	}
	src, ok := t.linkInto(out, 0)
	if !ok {
		return blackSurface
	}
	return t.eval(src, 0)
}

func (t *NodeTree) eval(n *ShaderNode, depth int) Surface {
	if depth > len(t.Nodes) {
		// cyclic graph
		return blackSurface
	}
	switch n.kind {
	case pixelart.DiffuseBSDF:
		c := n.Inputs[0].Color
		return Surface{Color: [3]float32{c[0], c[1], c[2]}, Opacity: 1}
	case pixelart.TransparentBSDF:
		return Surface{}
	case pixelart.MixShader:
		fac := clamp01(n.Inputs[0].Value)
		a, b := blackSurface, blackSurface
		if src, ok := t.linkInto(n, 1); ok {
			a = t.eval(src, depth+1)
		}
		if src, ok := t.linkInto(n, 2); ok {
			b = t.eval(src, depth+1)
		}
		return mixSurface(a, b, fac)
	}
	return blackSurface
}

func mixSurface(a, b Surface, fac float32) Surface {
	wa := (1 - fac) * a.Opacity
	wb := fac * b.Opacity
	out := Surface{Opacity: (1-fac)*a.Opacity + fac*b.Opacity}
	if w := wa + wb; w > 0 {
		for i := range out.Color {
			out.Color[i] = (wa*a.Color[i] + wb*b.Color[i]) / w
		}
	}
	return out
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
