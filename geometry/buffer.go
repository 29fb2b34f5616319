// Package geometry stores named vertex attributes for a mesh and derives
// bounding volumes, vertex normals and tangent frames from them.
package geometry

const (
	FLOAT32 BufferType = iota
	UINT16
	UINT32
)

// BufferType tags the element kind of a Buffer.
type BufferType uint8

func (t BufferType) String() string {
	switch t {
	case FLOAT32:
		return "Float32Array"
	case UINT16:
		return "Uint16Array"
	case UINT32:
		return "Uint32Array"
	}
	return "Unknown"
}

// Buffer is a flat typed array. Values are read and written as float64 and
// converted to the element kind on write.
type Buffer interface {
	Type() BufferType
	Len() int
	At(i int) float64
	Set(i int, v float64)
	// Make returns a zeroed buffer of the same kind with n elements.
	Make(n int) Buffer
	Clone() Buffer
}

type Float32Buffer []float32

func (b Float32Buffer) Type() BufferType     { return FLOAT32 }
func (b Float32Buffer) Len() int             { return len(b) }
func (b Float32Buffer) At(i int) float64     { return float64(b[i]) }
func (b Float32Buffer) Set(i int, v float64) { b[i] = float32(v) }
func (b Float32Buffer) Make(n int) Buffer    { return make(Float32Buffer, n) }
func (b Float32Buffer) Clone() Buffer        { return append(Float32Buffer(nil), b...) }

type Uint16Buffer []uint16

func (b Uint16Buffer) Type() BufferType     { return UINT16 }
func (b Uint16Buffer) Len() int             { return len(b) }
func (b Uint16Buffer) At(i int) float64     { return float64(b[i]) }
func (b Uint16Buffer) Set(i int, v float64) { b[i] = uint16(v) }
func (b Uint16Buffer) Make(n int) Buffer    { return make(Uint16Buffer, n) }
func (b Uint16Buffer) Clone() Buffer        { return append(Uint16Buffer(nil), b...) }

type Uint32Buffer []uint32

func (b Uint32Buffer) Type() BufferType     { return UINT32 }
func (b Uint32Buffer) Len() int             { return len(b) }
func (b Uint32Buffer) At(i int) float64     { return float64(b[i]) }
func (b Uint32Buffer) Set(i int, v float64) { b[i] = uint32(v) }
func (b Uint32Buffer) Make(n int) Buffer    { return make(Uint32Buffer, n) }
func (b Uint32Buffer) Clone() Buffer        { return append(Uint32Buffer(nil), b...) }
