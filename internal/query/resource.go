package query

// Kind is the value type of a filterable field. Filter values are coerced to it
// before they reach the store.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindBool:
		return "boolean"
	case KindTime:
		return "timestamp"
	default:
		return "string"
	}
}

// Resource is the allow-list configuration of one listable resource.
type Resource struct {
	Name          string
	Filterable    map[string]Kind
	Sortable      []string
	Relations     []string
	Fields        []string
	DefaultFields []string
	DefaultSort   []SortSpec
}
