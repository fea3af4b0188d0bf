// Package shaders holds the GLSL sources of the vertex color effect. The compiled modules are written to
// shaders_spv, where the default configuration expects them.
package shaders

//go:generate glslc vertex_color.vert -o ../shaders_spv/vertex_color.vert.spv
//go:generate glslc vertex_color.frag -o ../shaders_spv/vertex_color.frag.spv
