package shaders

import (
	"fmt"
	"sync"

	"github.com/gogpu/naga"

	"github.com/gogpu/texstore/internal/cache"
)

// Library resolves a program name to bytecode the device can load.
type Library interface {
	Bytecode(name string) ([]byte, error)
}

// Portable is a Library that does not depend on the Windows shader
// compiler. Programs with a WGSL rendition are compiled to SPIR-V with
// naga; the rest resolve to their HLSL source.
//
// Results are cached per program. Portable is safe for concurrent use.
type Portable struct {
	mu      sync.Mutex
	results *cache.Cache[string, []byte]
	compile func(source string) ([]byte, error)
}

// NewPortable creates a Portable library.
func NewPortable() *Portable {
	return &Portable{
		results: cache.New[string, []byte](),
		compile: naga.Compile,
	}
}

// Bytecode implements Library.
func (p *Portable) Bytecode(name string) ([]byte, error) {
	prog, err := lookup(name)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results.GetOrCreate(name, func() ([]byte, error) {
		if !prog.HasWGSL() {
			return prog.HLSL()
		}
		src, err := prog.WGSL()
		if err != nil {
			return nil, err
		}
		spirv, err := p.compile(src)
		if err != nil {
			return nil, fmt.Errorf("shaders: compile %s: %w", name, err)
		}
		return spirv, nil
	})
}

// Stats returns the result cache statistics.
func (p *Portable) Stats() cache.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results.Stats()
}

// Func adapts an ordinary function to the Library interface.
type Func func(name string) ([]byte, error)

// Bytecode implements Library.
func (f Func) Bytecode(name string) ([]byte, error) {
	return f(name)
}
