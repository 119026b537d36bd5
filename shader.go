package drawbatch

import "sync/atomic"

// shaderIDs issues stable shader identities.
var shaderIDs atomic.Uint64

// Shader is an opaque handle to a collaborator-owned shader program.
//
// The batching core never compiles or binds programs itself; a bound
// shader only affects batching in two ways: it participates in render
// state equality, and it forces framed pools to re-render every frame
// (shader side effects cannot be captured by the content hash).
type Shader struct {
	id   uint64
	name string
}

// NewShader creates a shader handle with the given debug name.
func NewShader(name string) *Shader {
	return &Shader{id: shaderIDs.Add(1), name: name}
}

// ID returns the stable shader identity.
func (s *Shader) ID() uint64 { return s.id }

// Name returns the debug name.
func (s *Shader) Name() string { return s.name }
