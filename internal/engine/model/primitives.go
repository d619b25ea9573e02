package model

import "github.com/Faultbox/tundra/internal/engine/asset"

// CubeMesh returns a unit cube centered at the origin, one quad per
// face so normals stay flat.
func CubeMesh() *asset.MeshData {
	const h = 0.5
	return &asset.MeshData{
		Name: "cube",
		Vertices: []float32{
			// front
			-h, -h, h, h, -h, h, h, h, h, -h, h, h,
			// back
			h, -h, -h, -h, -h, -h, -h, h, -h, h, h, -h,
			// left
			-h, -h, -h, -h, -h, h, -h, h, h, -h, h, -h,
			// right
			h, -h, h, h, -h, -h, h, h, -h, h, h, h,
			// top
			-h, h, h, h, h, h, h, h, -h, -h, h, -h,
			// bottom
			-h, -h, -h, h, -h, -h, h, -h, h, -h, -h, h,
		},
		Normals: []float32{
			0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1,
			0, 0, -1, 0, 0, -1, 0, 0, -1, 0, 0, -1,
			-1, 0, 0, -1, 0, 0, -1, 0, 0, -1, 0, 0,
			1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0,
			0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0,
			0, -1, 0, 0, -1, 0, 0, -1, 0, 0, -1, 0,
		},
		TexCoords: cubeTexCoords(),
		Indices: []uint16{
			0, 1, 2, 2, 3, 0,
			4, 5, 6, 6, 7, 4,
			8, 9, 10, 10, 11, 8,
			12, 13, 14, 14, 15, 12,
			16, 17, 18, 18, 19, 16,
			20, 21, 22, 22, 23, 20,
		},
	}
}

func cubeTexCoords() []float32 {
	tc := make([]float32, 0, 6*4*2)
	for face := 0; face < 6; face++ {
		tc = append(tc, 0, 0, 1, 0, 1, 1, 0, 1)
	}
	return tc
}

// QuadMesh returns a flat rectangle in the xy plane with its corner at
// (x, y, z), facing +z. Used for UI panes and ground decals.
func QuadMesh(x, y, z, w, h float32) *asset.MeshData {
	return &asset.MeshData{
		Name: "quad",
		Vertices: []float32{
			x, y, z,
			x + w, y, z,
			x + w, y + h, z,
			x, y + h, z,
		},
		Normals: []float32{
			0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1,
		},
		TexCoords: []float32{
			0, 0, 1, 0, 1, 1, 0, 1,
		},
		Indices: []uint16{0, 1, 2, 2, 3, 0},
	}
}
