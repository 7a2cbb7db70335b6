package noop

import "github.com/gogpu/filterchain/preset"

// Pipeline is an inert handle recording just enough of its
// PipelineDescriptor for diagnostics; the noop backend never actually
// executes the shader bytecode it was built from.
type Pipeline struct {
	label        string
	outputFormat preset.Format
	destroyed    bool
}

func (p *Pipeline) Destroy() { p.destroyed = true }
