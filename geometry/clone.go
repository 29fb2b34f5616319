package geometry

import "maps"

// CloneContext remembers the clone made for each attribute during one copy,
// so that an attribute referenced several times is cloned once and stays
// shared in the result.
type CloneContext struct {
	clones map[*Attribute]*Attribute
}

func NewCloneContext() *CloneContext {
	return &CloneContext{clones: make(map[*Attribute]*Attribute)}
}

// Attribute returns the clone of a, making it on first use.
func (ctx *CloneContext) Attribute(a *Attribute) *Attribute {
	if a == nil {
		return nil
	}
	if c, ok := ctx.clones[a]; ok {
		return c
	}
	c := a.Clone()
	ctx.clones[a] = c
	return c
}

// Copy replaces g's content with a deep copy of source's, keeping g's
// identity. Attributes shared inside source stay shared inside g.
func (g *Geometry) Copy(source *Geometry) *Geometry {
	ctx := NewCloneContext()

	g.Name = source.Name
	g.index = ctx.Attribute(source.index)

	g.attributes = make(map[string]*Attribute, len(source.attributes))
	for name, attr := range source.attributes {
		g.attributes[name] = ctx.Attribute(attr)
	}

	g.MorphAttributes = make(map[string][]*Attribute, len(source.MorphAttributes))
	for name, morphs := range source.MorphAttributes {
		cloned := make([]*Attribute, len(morphs))
		for i, morph := range morphs {
			cloned[i] = ctx.Attribute(morph)
		}
		g.MorphAttributes[name] = cloned
	}
	g.MorphTargetsRelative = source.MorphTargetsRelative

	g.Groups = append([]Group(nil), source.Groups...)

	g.BoundingBox = nil
	if source.BoundingBox != nil {
		box := *source.BoundingBox
		g.BoundingBox = &box
	}
	g.BoundingSphere = nil
	if source.BoundingSphere != nil {
		sphere := *source.BoundingSphere
		g.BoundingSphere = &sphere
	}

	g.DrawRange = source.DrawRange
	g.UserData = maps.Clone(source.UserData)
	if g.UserData == nil {
		g.UserData = make(map[string]any)
	}

	return g
}

// Clone returns a deep copy of g with a fresh identity.
func (g *Geometry) Clone() *Geometry {
	c := New(g.ids)
	c.logger = g.logger
	return c.Copy(g)
}
