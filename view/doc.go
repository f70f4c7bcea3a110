// Package view draws parsed toolpaths with quarkgl.
//
// A Surface owns a framebuffer binding, a camera with orbit controls, the
// deposition and travel line buffers and a RenderLoop that repaints on every
// host frame until the surface is disposed. All Surface methods must be
// called from the goroutine that pumps the host's FrameScheduler; other
// goroutines hand work over with FrameScheduler.Post.
package view
