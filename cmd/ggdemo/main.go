// Command ggdemo renders a single opaque triangle with the software
// rasterizer and saves the result as a PNG.
package main

import (
	"flag"
	"log"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/swr"
	"github.com/gogpu/swr/attachment"
	"github.com/gogpu/swr/internal/clip"
	"github.com/gogpu/swr/internal/raster"
)

// colorAttrs is the demo's varying bundle: a single interpolable color,
// implementing clip.Attrs so the clipping package can lerp it across a
// clipped edge without knowing its concrete shape.
type colorAttrs struct {
	swr.RGBA
}

func (c colorAttrs) Lerp(other clip.Attrs, t float64) clip.Attrs {
	return colorAttrs{c.RGBA.Lerp(other.(colorAttrs).RGBA, t)}
}

func main() {
	var (
		width  = flag.Int("width", 800, "image width")
		height = flag.Int("height", 600, "image height")
		output = flag.String("output", "demo.png", "output file")
	)
	flag.Parse()

	pm := swr.NewPixmap(*width, *height)
	pm.Clear(swr.RGBA{R: 0.05, G: 0.05, B: 0.08, A: 1})

	view := &attachment.View{
		Format:      gputypes.TextureFormatRGBA8Unorm,
		Aspect:      attachment.AspectColor,
		Width:       *width,
		Height:      *height,
		SampleCount: 1,
		RowPitch:    *width * 4,
		Base:        pm.Data(),
	}

	r := swr.NewRendererWithOptions()
	defer r.Close()

	r.SetViewport(swr.Viewport{
		X: 0, Y: 0,
		Width: float32(*width), Height: float32(*height),
		MinDepth: 0, MaxDepth: 1,
	})

	triangle := []clip.Vertex{
		{Pos: clip.Vec4{X: -0.6, Y: -0.6, Z: 0, W: 1}, Attrs: colorAttrs{swr.RGBA{R: 1, G: 0.3, B: 0.3, A: 1}}},
		{Pos: clip.Vec4{X: 0.6, Y: -0.6, Z: 0, W: 1}, Attrs: colorAttrs{swr.RGBA{R: 0.3, G: 1, B: 0.3, A: 1}}},
		{Pos: clip.Vec4{X: 0, Y: 0.6, Z: 0, W: 1}, Attrs: colorAttrs{swr.RGBA{R: 0.3, G: 0.3, B: 1, A: 1}}},
	}

	vertexRoutine := func(args *swr.VertexArgs) {
		for i := uint32(0); i < args.Count; i++ {
			args.Output[i] = triangle[args.Indices[i]%uint32(len(triangle))]
		}
	}

	setupRoutine := func(prim *raster.Primitive) {
		// No pipeline-specific adjustment needed beyond the built-in setup.
	}

	pixelRoutine := func(args *swr.PixelArgs) uint8 {
		if args.CoverageMask == 0 {
			return 0
		}
		args.Color = [4]float32{0.9, 0.85, 0.2, 1}
		return args.CoverageMask
	}

	ctx := &swr.DrawContext{
		Color: []*attachment.View{view},
		Routines: swr.Routines{
			Vertex: vertexRoutine,
			Setup:  setupRoutine,
			Pixel:  pixelRoutine,
		},
	}

	done := make(chan struct{})
	events := &demoEvents{done: done}

	if err := r.Draw(ctx, uint32(len(triangle)), events); err != nil {
		log.Fatalf("draw failed: %v", err)
	}
	<-done

	if err := pm.SavePNG(*output); err != nil {
		log.Fatalf("failed to save: %v", err)
	}

	log.Printf("demo saved to %s (%dx%d)\n", *output, *width, *height)
}

// demoEvents waits for the single draw issued by this program to retire.
type demoEvents struct {
	done chan struct{}
}

func (e *demoEvents) VertexComplete(batchIndex int)          {}
func (e *demoEvents) PrimitivesComplete(batchIndex int)      {}
func (e *demoEvents) PixelsComplete(batchIndex, cluster int) {}
func (e *demoEvents) DrawComplete()                          { close(e.done) }
