package geometry

import (
	"math"
	"slices"

	"github.com/akmonengine/scene3d/event"
	"github.com/akmonengine/scene3d/ident"
	"github.com/akmonengine/scene3d/math3d"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Well-known attribute names.
const (
	POSITION = "position"
	NORMAL   = "normal"
	UV       = "uv"
	TANGENT  = "tangent"
	COLOR    = "color"
)

// InfiniteCount is the draw range count meaning "up to the end".
const InfiniteCount = math.MaxInt

// maxUint16Index is the largest index a Uint16 index buffer can hold.
const maxUint16Index = 65535

var (
	ErrMissingAttributes = errors.New("missing required attributes")
	ErrNaNBounds         = errors.New("computed bounds contain NaN values")
	ErrNilGeometry       = errors.New("nil geometry")
)

// Group is a contiguous range of the index (or of the vertices when there is
// no index) drawn with a single material.
type Group struct {
	Start         int `json:"start" yaml:"start"`
	Count         int `json:"count" yaml:"count"`
	MaterialIndex int `json:"materialIndex" yaml:"materialIndex"`
}

type DrawRange struct {
	Start int
	Count int
}

// Geometry is a set of named vertex attributes with an optional index,
// morph targets, draw groups and lazily computed bounding volumes.
type Geometry struct {
	ID   uint64
	UUID string
	Name string

	index      *Attribute
	attributes map[string]*Attribute

	MorphAttributes      map[string][]*Attribute
	MorphTargetsRelative bool

	Groups    []Group
	DrawRange DrawRange

	// Bounding volumes are nil until computed.
	BoundingBox    *math3d.Box3
	BoundingSphere *math3d.Sphere

	UserData map[string]any

	ids    *ident.Allocator
	logger *zap.Logger
	events event.Events
}

// New creates an empty geometry. ids issues the geometry id and must not be nil.
func New(ids *ident.Allocator) *Geometry {
	return &Geometry{
		ID:              ids.Next(),
		UUID:            ident.NewUUID(),
		attributes:      make(map[string]*Attribute),
		MorphAttributes: make(map[string][]*Attribute),
		DrawRange:       DrawRange{Start: 0, Count: InfiniteCount},
		UserData:        make(map[string]any),
		ids:             ids,
	}
}

// SetLogger sets the logger receiving diagnostics. nil restores the global logger.
func (g *Geometry) SetLogger(logger *zap.Logger) {
	g.logger = logger
}

func (g *Geometry) log() *zap.Logger {
	if g.logger != nil {
		return g.logger
	}
	return zap.L()
}

// Index returns the index attribute, or nil for non-indexed geometry.
func (g *Geometry) Index() *Attribute {
	return g.index
}

// SetIndex replaces the index attribute. nil makes the geometry non-indexed.
func (g *Geometry) SetIndex(index *Attribute) {
	g.index = index
}

// SetIndexValues builds the index from raw values, using a Uint32 buffer when
// a value exceeds 65535 and a Uint16 buffer otherwise.
func (g *Geometry) SetIndexValues(values []uint32) {
	var array Buffer
	if slices.Max(append([]uint32{0}, values...)) > maxUint16Index {
		b := make(Uint32Buffer, len(values))
		copy(b, values)
		array = b
	} else {
		b := make(Uint16Buffer, len(values))
		for i, v := range values {
			b[i] = uint16(v)
		}
		array = b
	}

	g.index = &Attribute{Array: array, ItemSize: 1}
}

// Attribute returns the named attribute, or nil.
func (g *Geometry) Attribute(name string) *Attribute {
	return g.attributes[name]
}

// SetAttribute stores attr under name, replacing any previous one.
func (g *Geometry) SetAttribute(name string, attr *Attribute) {
	g.attributes[name] = attr
}

// DeleteAttribute removes the named attribute if present.
func (g *Geometry) DeleteAttribute(name string) {
	delete(g.attributes, name)
}

// HasAttribute reports whether the named attribute is present.
func (g *Geometry) HasAttribute(name string) bool {
	_, ok := g.attributes[name]
	return ok
}

// AttributeNames returns the attribute names in sorted order.
func (g *Geometry) AttributeNames() []string {
	names := make([]string, 0, len(g.attributes))
	for name := range g.attributes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (g *Geometry) morphNames() []string {
	names := make([]string, 0, len(g.MorphAttributes))
	for name := range g.MorphAttributes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AddGroup appends a draw group.
func (g *Geometry) AddGroup(start, count, materialIndex int) {
	g.Groups = append(g.Groups, Group{Start: start, Count: count, MaterialIndex: materialIndex})
}

// ClearGroups removes every draw group.
func (g *Geometry) ClearGroups() {
	g.Groups = nil
}

// SetDrawRange limits the rendered part of the geometry.
func (g *Geometry) SetDrawRange(start, count int) {
	g.DrawRange = DrawRange{Start: start, Count: count}
}

// Subscribe registers listener for the events this geometry dispatches.
func (g *Geometry) Subscribe(eventType event.EventType, listener event.Listener) {
	g.events.Subscribe(eventType, listener)
}

// Dispose notifies subscribers that the geometry's derived resources can be
// released. The geometry itself stays usable.
func (g *Geometry) Dispose() {
	g.events.Dispatch(event.DisposeEvent{Target: g})
}
