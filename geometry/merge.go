package geometry

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Merge copies other's attribute data into g, starting at vertex offset.
// Only attributes present in both geometries are touched; data that does not
// fit in g's buffers is truncated. Buffers are never resized and the index is
// left alone.
func (g *Geometry) Merge(other *Geometry, offset int) error {
	if other == nil {
		return errors.Wrap(ErrNilGeometry, "merge")
	}
	if offset < 0 {
		return errors.Errorf("merge: negative offset %d", offset)
	}

	for _, name := range g.AttributeNames() {
		dst := g.attributes[name]
		src, ok := other.attributes[name]
		if !ok {
			continue
		}

		start := src.ItemSize * offset
		length := min(src.Array.Len(), dst.Array.Len()-start)
		for i := 0; i < length; i++ {
			dst.Array.Set(start+i, src.Array.At(i))
		}
		if length > 0 {
			dst.MarkNeedsUpdate()
		}
	}

	return nil
}

// expandAttribute gathers one item per index entry into a new attribute of
// the same buffer kind.
func expandAttribute(a *Attribute, indices Buffer) *Attribute {
	array := a.Array.Make(indices.Len() * a.ItemSize)
	for i := 0; i < indices.Len(); i++ {
		src := int(indices.At(i)) * a.ItemSize
		for c := 0; c < a.ItemSize; c++ {
			array.Set(i*a.ItemSize+c, a.Array.At(src+c))
		}
	}

	return &Attribute{Name: a.Name, Array: array, ItemSize: a.ItemSize, Normalized: a.Normalized}
}

// ToNonIndexed returns a new geometry where every index entry becomes its own
// vertex. Morph attributes, the relative morph flag and groups are carried
// over. A non-indexed geometry is returned as is.
func (g *Geometry) ToNonIndexed() *Geometry {
	if g.index == nil {
		g.log().Warn("Geometry is already non-indexed", zap.Uint64("geometry", g.ID))
		return g
	}

	out := New(g.ids)
	out.logger = g.logger
	indices := g.index.Array

	for name, attr := range g.attributes {
		out.attributes[name] = expandAttribute(attr, indices)
	}

	for name, morphs := range g.MorphAttributes {
		expanded := make([]*Attribute, len(morphs))
		for i, morph := range morphs {
			expanded[i] = expandAttribute(morph, indices)
		}
		out.MorphAttributes[name] = expanded
	}
	out.MorphTargetsRelative = g.MorphTargetsRelative

	for _, group := range g.Groups {
		out.AddGroup(group.Start, group.Count, group.MaterialIndex)
	}

	return out
}
