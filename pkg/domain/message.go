package domain

// DefaultSurfaceID is used when a message omits its surfaceId.
const DefaultSurfaceID = "default"

// Message is one A2UI protocol envelope. Exactly one of the fields is set;
// an envelope with none set is malformed and must be ignored by the
// processor (producers are untrusted).
type Message struct {
	BeginRendering  *BeginRendering  `json:"beginRendering,omitempty"`
	SurfaceUpdate   *SurfaceUpdate   `json:"surfaceUpdate,omitempty"`
	DataModelUpdate *DataModelUpdate `json:"dataModelUpdate,omitempty"`
	DeleteSurface   *DeleteSurface   `json:"deleteSurface,omitempty"`
}

// Kind returns the name of the action this message carries, or "" if the
// envelope is malformed (carries none).
func (m Message) Kind() string {
	switch {
	case m.BeginRendering != nil:
		return "beginRendering"
	case m.SurfaceUpdate != nil:
		return "surfaceUpdate"
	case m.DataModelUpdate != nil:
		return "dataModelUpdate"
	case m.DeleteSurface != nil:
		return "deleteSurface"
	}
	return ""
}

// BeginRendering resets a surface to a fresh record, setting its root
// component and opaque style map. It is a hard reset: any prior component
// or data-model state for the surface is discarded.
type BeginRendering struct {
	SurfaceID string         `json:"surfaceId,omitempty"`
	Root      string         `json:"root,omitempty"`
	CatalogID string         `json:"catalogId,omitempty"`
	Styles    map[string]any `json:"styles,omitempty"`
}

// SurfaceUpdate inserts or replaces individual components. Components not
// named in the message are left untouched (incremental patch).
type SurfaceUpdate struct {
	SurfaceID  string      `json:"surfaceId,omitempty"`
	Components []Component `json:"components,omitempty"`
}

// DataModelEntry is a single key/value pair in a dataModelUpdate. Exactly
// one value variant should be set; ValueMap nests recursively.
type DataModelEntry struct {
	Key          string           `json:"key,omitempty"`
	ValueString  *string          `json:"valueString,omitempty"`
	ValueNumber  *float64         `json:"valueNumber,omitempty"`
	ValueBoolean *bool            `json:"valueBoolean,omitempty"`
	ValueMap     []DataModelEntry `json:"valueMap,omitempty"`
}

// DataModelUpdate writes into a surface's data model. An absent or "/" path
// replaces the whole tree; any other path replaces only that subtree.
type DataModelUpdate struct {
	SurfaceID string           `json:"surfaceId,omitempty"`
	Path      string           `json:"path,omitempty"`
	Contents  []DataModelEntry `json:"contents,omitempty"`
}

// DeleteSurface removes a surface and all its state. Deleting an unknown
// id is a no-op.
type DeleteSurface struct {
	SurfaceID string `json:"surfaceId"`
}
