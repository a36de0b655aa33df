package duco

// Section is a nested fragment of the device document as decoded from JSON.
type Section = map[string]interface{}

// Document is the combined snapshot of all polled API endpoints. It is
// replaced wholesale on every refresh and never mutated in place.
type Document map[string]interface{}

// Top-level document sections, filled in by the registry on every poll.
const (
	SectionInfo        string = "info"
	SectionNodes       string = "nodes"
	SectionConfig      string = "config"
	SectionConfigNodes string = "config_nodes"
	SectionAction      string = "action"
	SectionActionNodes string = "action_nodes"
)

// Info returns the /info section of the snapshot.
func (d Document) Info() Section {
	section, _ := d[SectionInfo].(map[string]interface{})
	return section
}

// Config returns the /config section of the snapshot.
func (d Document) Config() Section {
	section, _ := d[SectionConfig].(map[string]interface{})
	return section
}

// Nodes returns the node list from /info/nodes.
func (d Document) Nodes() []Section {
	nodes, _ := d[SectionNodes].([]Section)
	return nodes
}

// ConfigNodes returns the node list from /config/nodes.
func (d Document) ConfigNodes() []Section {
	nodes, _ := d[SectionConfigNodes].([]Section)
	return nodes
}

// Actions returns the decoded box action list.
func (d Document) Actions() []Action {
	actions, _ := d[SectionAction].([]Action)
	return actions
}

// ActionNodes returns the decoded per-node action lists.
func (d Document) ActionNodes() []NodeActions {
	nodes, _ := d[SectionActionNodes].([]NodeActions)
	return nodes
}

// Node finds one node of /info/nodes by its id.
func (d Document) Node(nodeId int) Section {
	for _, node := range d.Nodes() {
		if id, ok := toFloat(node["Node"]); ok && int(id) == nodeId {
			return node
		}
	}
	return nil
}

// SafeGet walks the given path through nested maps. It returns nil as soon as
// a key is absent or an intermediate value is not a map. An empty path returns
// the input unchanged. It never panics on missing data.
func SafeGet(data interface{}, path ...string) interface{} {
	current := data
	for _, key := range path {
		section, ok := current.(map[string]interface{})
		if !ok {
			if doc, isDoc := current.(Document); isDoc {
				section = map[string]interface{}(doc)
			} else {
				return nil
			}
		}
		value, found := section[key]
		if !found {
			return nil
		}
		current = value
	}
	return current
}

// ExtractVal unwraps the {"Val": x} leaf envelope. Anything that is not a map
// containing "Val" is passed through unchanged, including nil and a stored
// Val of nil.
func ExtractVal(value interface{}) interface{} {
	if section, ok := value.(map[string]interface{}); ok {
		if val, found := section["Val"]; found {
			return val
		}
	}
	return value
}

// Bounds carries the tunability range of a leaf parameter.
type Bounds struct {
	Min float64
	Max float64
	Inc float64
}

// Leaf is an atomic parameter of the device document. A leaf without Bounds is
// a plain scalar reading; a leaf with Bounds is a tunable parameter carrying
// Min/Max/Inc from the API.
type Leaf struct {
	Value  interface{}
	Bounds *Bounds
}

// ParseLeaf interprets a raw document value as a leaf parameter. The second
// return value is false when the input is not a {"Val": ...} map.
func ParseLeaf(value interface{}) (Leaf, bool) {
	section, ok := value.(map[string]interface{})
	if !ok {
		return Leaf{}, false
	}
	val, found := section["Val"]
	if !found {
		return Leaf{}, false
	}
	leaf := Leaf{Value: val}

	min, minOk := toFloat(section["Min"])
	max, maxOk := toFloat(section["Max"])
	inc, incOk := toFloat(section["Inc"])
	if minOk && maxOk && incOk {
		leaf.Bounds = &Bounds{Min: min, Max: max, Inc: inc}
	}
	return leaf, true
}

// Tunable reports whether the leaf carries the full Val/Min/Max/Inc envelope.
func (l Leaf) Tunable() bool {
	return l.Bounds != nil
}

// Fixed reports whether the leaf is tunable in shape but not user-adjustable
// because its range collapses to a single value.
func (l Leaf) Fixed() bool {
	return l.Bounds != nil && l.Bounds.Min == l.Bounds.Max
}

// Boolean reports whether the leaf is a 0/1 toggle.
func (l Leaf) Boolean() bool {
	return l.Bounds != nil && l.Bounds.Min == 0 && l.Bounds.Max == 1
}
