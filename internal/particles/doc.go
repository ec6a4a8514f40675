// Package particles is the particle simulation core.
//
// A [Controller] owns a columnar store (see package channels), one [Emitter],
// an ordered list of [Influencer] stages and an optional [Renderer]. Every
// stage is a [Component] bound to exactly one controller.
//
// Lifecycle:
//
//	c := particles.NewController("sparks", emitter, renderer, spawn, color, dynamics)
//	if err := c.Init(); err != nil { ... } // binds, allocates channels, inits
//	c.Start()
//	for frame := range frames {
//		c.Update(dt) // emitter, then influencers in order
//		c.Draw()     // renderer publishes the channels
//	}
//	c.End()
//	c.Dispose()
//
// Channel allocation runs emitter first, then influencers in list order, then
// the renderer, so a later stage can look up channels created by an earlier
// one. An influencer that reads a channel written by another must therefore be
// registered after it.
//
// An [Effect] groups controllers that run together and a [System] drives many
// effects and the batches that draw them.
//
// # Thread Safety
//
// A controller and its store are single-threaded. Independent effects can be
// updated concurrently with [System.UpdateParallel].
package particles
