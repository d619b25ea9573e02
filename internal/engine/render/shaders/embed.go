// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader is the vertex shader for model rendering, with
// optional skeletal skinning.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader is the fragment shader for model rendering.
//
//go:embed scene.frag
var SceneFragmentShader string
