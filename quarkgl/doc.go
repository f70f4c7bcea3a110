// Package quarkgl is a small, predictable software 3D engine for toolpath
// visualization.
//
// It renders meshes and retained line buffers through a fixed pipeline:
//
//	Scene → Transform → Projection → Clipping → Rasterization → Frame output.
//
// The renderer draws into a caller-provided Target. Line buffers
// (Geometry, LineMaterial) are retained resources owned by the Renderer that
// created them: each must be released explicitly, and the renderer keeps a
// live count so leaks show up in tests. Rendering a released resource is an
// error, as is using a renderer after Dispose.
package quarkgl
