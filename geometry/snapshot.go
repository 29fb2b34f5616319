package geometry

// AttributeSnapshot is the serializable form of an Attribute.
type AttributeSnapshot struct {
	Name       string    `json:"name,omitempty" yaml:"name,omitempty"`
	ItemSize   int       `json:"itemSize" yaml:"itemSize"`
	Type       string    `json:"type" yaml:"type"`
	Array      []float64 `json:"array" yaml:"array,flow"`
	Normalized bool      `json:"normalized" yaml:"normalized"`
}

type IndexSnapshot struct {
	Type  string    `json:"type" yaml:"type"`
	Array []float64 `json:"array" yaml:"array,flow"`
}

type SphereSnapshot struct {
	Center [3]float64 `json:"center" yaml:"center,flow"`
	Radius float64    `json:"radius" yaml:"radius"`
}

type GeometryData struct {
	Index                *IndexSnapshot                 `json:"index,omitempty" yaml:"index,omitempty"`
	Attributes           map[string]AttributeSnapshot   `json:"attributes" yaml:"attributes"`
	MorphAttributes      map[string][]AttributeSnapshot `json:"morphAttributes,omitempty" yaml:"morphAttributes,omitempty"`
	MorphTargetsRelative bool                           `json:"morphTargetsRelative,omitempty" yaml:"morphTargetsRelative,omitempty"`
	Groups               []Group                        `json:"groups,omitempty" yaml:"groups,omitempty"`
	BoundingSphere       *SphereSnapshot                `json:"boundingSphere,omitempty" yaml:"boundingSphere,omitempty"`
}

// GeometrySnapshot is a plain data view of a Geometry, ready for an encoder.
type GeometrySnapshot struct {
	UUID     string         `json:"uuid" yaml:"uuid"`
	Type     string         `json:"type" yaml:"type"`
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	UserData map[string]any `json:"userData,omitempty" yaml:"userData,omitempty"`
	Data     GeometryData   `json:"data" yaml:"data"`
}

func (a *Attribute) Snapshot() AttributeSnapshot {
	return AttributeSnapshot{
		Name:       a.Name,
		ItemSize:   a.ItemSize,
		Type:       a.Array.Type().String(),
		Array:      a.Floats(),
		Normalized: a.Normalized,
	}
}

// Snapshot captures the geometry's data. Morph data is only included when
// there are morph attributes and the bounding sphere only once computed.
func (g *Geometry) Snapshot() GeometrySnapshot {
	s := GeometrySnapshot{
		UUID: g.UUID,
		Type: "BufferGeometry",
		Name: g.Name,
		Data: GeometryData{
			Attributes: make(map[string]AttributeSnapshot, len(g.attributes)),
		},
	}
	if len(g.UserData) > 0 {
		s.UserData = g.UserData
	}

	if g.index != nil {
		s.Data.Index = &IndexSnapshot{Type: g.index.Array.Type().String(), Array: g.index.Floats()}
	}

	for name, attr := range g.attributes {
		s.Data.Attributes[name] = attr.Snapshot()
	}

	if len(g.MorphAttributes) > 0 {
		s.Data.MorphAttributes = make(map[string][]AttributeSnapshot, len(g.MorphAttributes))
		for _, name := range g.morphNames() {
			morphs := g.MorphAttributes[name]
			snaps := make([]AttributeSnapshot, len(morphs))
			for i, morph := range morphs {
				snaps[i] = morph.Snapshot()
			}
			s.Data.MorphAttributes[name] = snaps
		}
		s.Data.MorphTargetsRelative = g.MorphTargetsRelative
	}

	if len(g.Groups) > 0 {
		s.Data.Groups = append([]Group(nil), g.Groups...)
	}

	if g.BoundingSphere != nil {
		s.Data.BoundingSphere = &SphereSnapshot{
			Center: [3]float64(g.BoundingSphere.Center),
			Radius: g.BoundingSphere.Radius,
		}
	}

	return s
}
