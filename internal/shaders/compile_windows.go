//go:build windows

package shaders

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/gogpu/texstore/internal/cache"
)

var (
	d3dcompiler47 = windows.NewLazySystemDLL("d3dcompiler_47.dll")

	procD3DCompile = d3dcompiler47.NewProc("D3DCompile")
)

type iUnknownVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

type id3dBlob struct {
	vtbl *struct {
		iUnknownVtbl
		GetBufferPointer uintptr
		GetBufferSize    uintptr
	}
}

// Compiler is a Library backed by d3dcompiler_47.dll. It produces DXBC
// for every program. Compiler is safe for concurrent use.
type Compiler struct {
	level9 bool

	mu      sync.Mutex
	results *cache.Cache[string, []byte]
}

// NewCompiler creates a Compiler. With level9 set, vertex and pixel
// programs are compiled against the level_9_3 profiles.
func NewCompiler(level9 bool) *Compiler {
	return &Compiler{
		level9:  level9,
		results: cache.New[string, []byte](),
	}
}

// Bytecode implements Library.
func (c *Compiler) Bytecode(name string) ([]byte, error) {
	prog, err := lookup(name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results.GetOrCreate(name, func() ([]byte, error) {
		src, err := prog.HLSL()
		if err != nil {
			return nil, err
		}
		return d3dCompile(src, prog.Name, prog.Profile(c.level9))
	})
}

func d3dCompile(src []byte, entryPoint, target string) ([]byte, error) {
	if err := procD3DCompile.Find(); err != nil {
		return nil, fmt.Errorf("shaders: %w", err)
	}
	var (
		code *id3dBlob
		errs *id3dBlob
	)
	entryPoint0 := []byte(entryPoint + "\x00")
	target0 := []byte(target + "\x00")
	r, _, _ := procD3DCompile.Call(
		uintptr(unsafe.Pointer(&src[0])),
		uintptr(len(src)),
		0, // pSourceName
		0, // pDefines
		0, // pInclude
		uintptr(unsafe.Pointer(&entryPoint0[0])),
		uintptr(unsafe.Pointer(&target0[0])),
		0, // Flags1
		0, // Flags2
		uintptr(unsafe.Pointer(&code)),
		uintptr(unsafe.Pointer(&errs)),
	)
	var compileErr string
	if errs != nil {
		compileErr = string(errs.data())
		errs.release()
	}
	if r != 0 {
		return nil, fmt.Errorf("shaders: D3DCompile %s (%s): %#x: %s", entryPoint, target, r, compileErr)
	}
	bytecode := code.data()
	cp := make([]byte, len(bytecode))
	copy(cp, bytecode)
	code.release()
	return cp, nil
}

func (b *id3dBlob) data() []byte {
	ptr, _, _ := syscall.SyscallN(b.vtbl.GetBufferPointer, uintptr(unsafe.Pointer(b)))
	n, _, _ := syscall.SyscallN(b.vtbl.GetBufferSize, uintptr(unsafe.Pointer(b)))
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), int(n))
}

func (b *id3dBlob) release() {
	syscall.SyscallN(b.vtbl.Release, uintptr(unsafe.Pointer(b)))
}
