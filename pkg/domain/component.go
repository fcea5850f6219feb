package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Component type catalog. The dispatch tables in the renderers are keyed by
// these names; extending the catalog means adding a name here, a property
// record below, and a case per renderer.
const (
	TypeText    = "Text"
	TypeHeading = "Heading"
	TypeImage   = "Image"
	TypeCard    = "Card"
	TypeRow     = "Row"
	TypeColumn  = "Column"
	TypeList    = "List"
	TypeButton  = "Button"
	TypeDivider = "Divider"
)

// Value is a bound property value as it arrives on the wire: a bare literal
// (string/number/boolean), a tagged literal map ({"literalString": ...},
// {"literalNumber": ...}, {"literalBoolean": ...}) or a {"path": ...}
// reference into the owning surface's data model. Resolution order lives in
// pkg/datamodel.
type Value any

// Component is one node of a surface's UI description. The Component map
// carries exactly one key, the type name, mapping to that type's raw
// properties. Weight is a layout hint passed through opaquely.
type Component struct {
	ID        string         `json:"id,omitempty" mapstructure:"id"`
	Weight    float64        `json:"weight,omitempty" mapstructure:"weight"`
	Component map[string]any `json:"component,omitempty" mapstructure:"component"`
}

// Type returns the component's type name and raw property map. A record
// whose wrapper is empty or carries no recognizable shape yields "".
func (c Component) Type() (string, map[string]any) {
	for name, raw := range c.Component {
		props, _ := raw.(map[string]any)
		return name, props
	}
	return "", nil
}

func (c Component) clone() Component {
	out := c
	out.Component = copyTree(c.Component)
	return out
}

// ChildrenRef references an ordered list of child component ids. References
// are lookups, not ownership: a missing id renders as nothing.
type ChildrenRef struct {
	ExplicitList []string `json:"explicitList" mapstructure:"explicitList"`
}

// TextProps are the properties of a Text component. UsageHint selects a
// presentation variant but never changes which text is shown.
type TextProps struct {
	Text      Value  `mapstructure:"text"`
	UsageHint string `mapstructure:"usageHint"`
}

// HeadingProps are the properties of a Heading component. Renderers clamp
// Level to a valid range.
type HeadingProps struct {
	Text  Value `mapstructure:"text"`
	Level int   `mapstructure:"level"`
}

// ImageProps are the properties of an Image component. Site-relative URLs
// are rewritten against the renderer's configured base URL.
type ImageProps struct {
	URL Value `mapstructure:"url"`
	Alt Value `mapstructure:"alt"`
}

// CardProps reference a single child by id.
type CardProps struct {
	Child string `mapstructure:"child"`
}

// RowProps lay children out horizontally.
type RowProps struct {
	Children ChildrenRef `mapstructure:"children"`
}

// ColumnProps lay children out vertically.
type ColumnProps struct {
	Children ChildrenRef `mapstructure:"children"`
}

// ListProps render children as a vertical list.
type ListProps struct {
	Children ChildrenRef `mapstructure:"children"`
}

// ButtonProps carry a label and an opaque action payload. A button with no
// resolvable label falls back to a fixed default at render time.
type ButtonProps struct {
	Label  Value          `mapstructure:"label"`
	Action map[string]any `mapstructure:"action"`
}

// DividerProps ignore all properties.
type DividerProps struct{}

// DecodeCatalog decodes the component's properties into the typed record
// for its catalog entry. Unknown types yield (nil, nil): the catalog is open
// for extension and unrecognized components simply render as nothing. A
// component without a type, or with properties that don't fit its record,
// yields an error; callers treat that as producer noise, not a fault.
func (c Component) DecodeCatalog() (any, error) {
	name, props := c.Type()
	switch name {
	case TypeText:
		return decodeAs[TextProps](props)
	case TypeHeading:
		return decodeAs[HeadingProps](props)
	case TypeImage:
		return decodeAs[ImageProps](props)
	case TypeCard:
		return decodeAs[CardProps](props)
	case TypeRow:
		return decodeAs[RowProps](props)
	case TypeColumn:
		return decodeAs[ColumnProps](props)
	case TypeList:
		return decodeAs[ListProps](props)
	case TypeButton:
		return decodeAs[ButtonProps](props)
	case TypeDivider:
		return decodeAs[DividerProps](props)
	case "":
		return nil, fmt.Errorf("component %q carries no type", c.ID)
	default:
		return nil, nil
	}
}

func decodeAs[T any](props map[string]any) (any, error) {
	var p T
	if err := DecodeProps(props, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeProps decodes a raw property map into a typed record. Unknown extra
// fields are tolerated (producers may send richer catalogs); type
// mismatches on known fields are reported so malformed records can be
// skipped at render time.
func DecodeProps(props map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build props decoder: %w", err)
	}
	if err := dec.Decode(props); err != nil {
		return fmt.Errorf("failed to decode props: %w", err)
	}
	return nil
}
