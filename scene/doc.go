// Package scene provides a small retained node tree and the traversal
// driver that feeds it to a repaint.Surface once per frame.
//
// Nodes own a repaint.Renderable. Setters mark the renderable modified, and
// Release destroys it so the area it covered is repainted.
//
//	root := scene.NewGroup(
//	    scene.NewRect(10, 10, 100, 50, repaint.NewFill(color.White)),
//	)
//	drv := scene.NewDriver(surface, root)
//	for range frames {
//	    stats := drv.Frame()
//	    if stats.Changed {
//	        present()
//	    }
//	}
//
// Nodes are NOT safe for concurrent use; mutate them between frames only.
package scene
