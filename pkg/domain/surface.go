package domain

// Surface represents one addressable UI region built up by a message stream.
//
// Components are stored flat, keyed by id. References between components
// (child / children.explicitList) are resolved against this map at render
// time, so the graph may legally contain shared children or even cycles;
// renderers are responsible for bounding traversal.
//
// Order records component insertion order so rendering is deterministic.
// Replacing an existing component keeps its original slot.
type Surface struct {
	SurfaceID  string               `json:"surfaceId"`
	RootID     string               `json:"rootId,omitempty"`
	CatalogID  string               `json:"catalogId,omitempty"`
	Components map[string]Component `json:"components"`
	Order      []string             `json:"order,omitempty"`
	DataModel  map[string]any       `json:"dataModel"`
	Styles     map[string]any       `json:"styles,omitempty"`
}

// NewSurface creates an empty active surface.
func NewSurface(surfaceID string) *Surface {
	return &Surface{
		SurfaceID:  surfaceID,
		Components: make(map[string]Component),
		DataModel:  make(map[string]any),
	}
}

// PutComponent inserts or replaces a component record. A later record with
// the same id replaces the earlier one entirely but keeps its render slot.
// Records without an id are ignored.
func (s *Surface) PutComponent(c Component) {
	if c.ID == "" {
		return
	}
	if _, exists := s.Components[c.ID]; !exists {
		s.Order = append(s.Order, c.ID)
	}
	s.Components[c.ID] = c
}

// Clone returns a deep copy of the surface. Mutating the copy never affects
// the original; stores and read accessors rely on this for copy-on-read.
func (s *Surface) Clone() *Surface {
	if s == nil {
		return nil
	}
	out := &Surface{
		SurfaceID:  s.SurfaceID,
		RootID:     s.RootID,
		CatalogID:  s.CatalogID,
		Components: make(map[string]Component, len(s.Components)),
		DataModel:  copyTree(s.DataModel),
		Styles:     copyTree(s.Styles),
	}
	for id, c := range s.Components {
		out.Components[id] = c.clone()
	}
	if len(s.Order) > 0 {
		out.Order = append([]string(nil), s.Order...)
	}
	return out
}

// copyTree deep-copies a nested map tree. Scalars are shared (they are
// immutable once decoded from JSON); maps and slices are duplicated.
func copyTree(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = copyTreeValue(v)
	}
	return out
}

func copyTreeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyTree(t)
	case []any:
		cp := make([]any, len(t))
		for i, e := range t {
			cp[i] = copyTreeValue(e)
		}
		return cp
	default:
		return v
	}
}
