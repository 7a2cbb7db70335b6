// Command filterchain-demo wires a two-pass preset (a downscale pass
// followed by an identity passthrough) through the host-memory noop
// backend and runs it against a generated checkerboard image, printing
// the resulting pixel statistics. It exists to exercise package
// filterchain end to end without a window system or a real GPU
// (SPEC_FULL.md's demo/example scope) — the two passes' SPIR-V is a
// hand-assembled minimal module (see shaders.go), not the output of a
// real shader compiler, since compiling shader source is out of this
// core's scope (spec.md §1 Non-goals).
package main

import (
	"fmt"
	"os"

	"github.com/gogpu/filterchain"
	"github.com/gogpu/filterchain/framebuffer"
	"github.com/gogpu/filterchain/hal"
	"github.com/gogpu/filterchain/hal/noop"
	"github.com/gogpu/filterchain/preset"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Println("=== filterchain-demo: two-pass CRT-style chain on the noop backend ===")
	fmt.Println()

	device := noop.NewDevice()

	fmt.Print("1. Building chain (downscale pass + identity pass)... ")
	chain, err := filterchain.NewChain(device, demoChainInput(), filterchain.DefaultChainOptions())
	if err != nil {
		return fmt.Errorf("NewChain: %w", err)
	}
	defer chain.Destroy()
	fmt.Println("OK")

	const width, height = 64, 64
	fmt.Printf("2. Generating a %dx%d checkerboard input image... ", width, height)
	original, err := device.CreateImage(&hal.ImageDescriptor{
		Width: width, Height: height, Format: preset.FormatR8G8B8A8Unorm, Label: "original",
	})
	if err != nil {
		return fmt.Errorf("CreateImage(original): %w", err)
	}
	paintCheckerboard(original.(*noop.Image), 8)
	fmt.Println("OK")

	viewport, err := device.CreateImage(&hal.ImageDescriptor{
		Width: width, Height: height, Format: preset.FormatR8G8B8A8Unorm, Label: "viewport",
	})
	if err != nil {
		return fmt.Errorf("CreateImage(viewport): %w", err)
	}

	fmt.Print("3. Running 4 frames... ")
	for frame := uint32(0); frame < 4; frame++ {
		err := chain.Frame(filterchain.FrameInput{
			Original:       original,
			OriginalSize:   framebuffer.Size{Width: width, Height: height},
			Viewport:       viewport,
			ViewportSize:   framebuffer.Size{Width: width, Height: height},
			FrameCount:     frame,
			FrameDirection: 1,
		})
		if err != nil {
			return fmt.Errorf("Frame(%d): %w", frame, err)
		}
	}
	fmt.Println("OK")

	lit, dark := countLitTexels(viewport.(*noop.Image))
	fmt.Printf("4. Final viewport: %d lit texels, %d dark texels (of %d)\n", lit, dark, width*height)
	return nil
}

// paintCheckerboard fills img with an alternating-block pattern, cellSize
// texels per side.
func paintCheckerboard(img *noop.Image, cellSize uint32) {
	px := img.Pixels()
	w, h := img.Width(), img.Height()
	for y := uint32(0); y < h; y++ {
		for x := uint32(0); x < w; x++ {
			lit := ((x/cellSize)+(y/cellSize))%2 == 0
			off := (y*w + x) * 4
			var v byte
			if lit {
				v = 0xFF
			}
			px[off], px[off+1], px[off+2], px[off+3] = v, v, v, 0xFF
		}
	}
}

// countLitTexels reports how many texels in img are closer to white than
// black, treating only the red channel (every channel is painted
// identically by paintCheckerboard and every pass here is a pure copy).
func countLitTexels(img *noop.Image) (lit, dark int) {
	px := img.Pixels()
	for i := 0; i < len(px); i += 4 {
		if px[i] >= 0x80 {
			lit++
		} else {
			dark++
		}
	}
	return lit, dark
}

// demoChainInput builds the two-pass preset this demo runs: pass 0
// downscales by half and pass 1 copies pass 0's output to the viewport
// unchanged.
func demoChainInput() filterchain.ChainInput {
	half := preset.ScaleConfig{
		X: preset.AxisScale{Type: preset.ScaleSource, Factor: 0.5},
		Y: preset.AxisScale{Type: preset.ScaleSource, Factor: 0.5},
	}
	identity := preset.ScaleConfig{
		X: preset.AxisScale{Type: preset.ScaleViewport, Factor: 1},
		Y: preset.AxisScale{Type: preset.ScaleViewport, Factor: 1},
	}

	return filterchain.ChainInput{
		Preset: preset.Preset{
			Passes: []preset.PassConfig{
				{
					ShaderPath:   "downscale.slang",
					Alias:        "Downscale",
					Scale:        half,
					MinMagFilter: preset.FilterLinear,
				},
				{
					ShaderPath:   "identity.slang",
					Scale:        identity,
					MinMagFilter: preset.FilterLinear,
				},
			},
		},
		Shaders: []filterchain.ShaderSource{
			{VertexSPIRV: emptyShaderModule(), FragmentSPIRV: sourceSamplingShaderModule("Source")},
			{VertexSPIRV: emptyShaderModule(), FragmentSPIRV: sourceSamplingShaderModule("Source")},
		},
	}
}
