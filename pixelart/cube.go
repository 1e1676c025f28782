package pixelart

// Vertex is a position in mesh-local space.
type Vertex [3]float32

// Face is a quad given by four vertex indices.
type Face [4]int

// Edge is a pair of vertex indices with the lower index first.
type Edge [2]int

// CubeVertices are the corners of the 1x1x1 box at the local origin.
var CubeVertices = []Vertex{
	{0, 0, 0}, // 0
	{1, 0, 0}, // 1
	{1, 1, 0}, // 2
	{0, 1, 0}, // 3
	{0, 0, 1}, // 4
	{1, 0, 1}, // 5
	{1, 1, 1}, // 6
	{0, 1, 1}, // 7
}

// CubeFaces are the six quads of the unit cube. No edge list is declared;
// edges follow from the faces.
var CubeFaces = []Face{
	{0, 1, 2, 3},
	{0, 1, 5, 4},
	{1, 2, 6, 5},
	{4, 5, 6, 7},
	{2, 3, 7, 6},
	{0, 3, 7, 4},
}

// FaceEdges derives the unique edges of a set of quads, in first-seen order.
func FaceEdges(faces []Face) []Edge {
	seen := make(map[Edge]struct{}, len(faces)*4)
	var edges []Edge
	for _, f := range faces {
		for i := range f {
			a, b := f[i], f[(i+1)%len(f)]
			if a > b {
				a, b = b, a
			}
			e := Edge{a, b}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}
