package dtdscan

// Entity is anything the entity/parameter table can hand back to the
// reference expander (§4.2). Only the replacement text matters here;
// everything else about a declared entity (its public/system identifiers,
// NDATA notation, ...) belongs to EntityDecl and the container that
// declared it, not to this interface.
type Entity interface {
	// ReplacementText is the entity's node value: the text spliced into
	// the intermediate stream in place of a "%name;" or "&name;" reference.
	ReplacementText() string
}

// Container is the read-only view onto the surrounding entity and
// parameter-entity table that the reference expander consults (§6,
// "consumed interface: Container"). A higher-level DTD builder owns the
// real table, populating it as EntityDecl tokens stream past; dtdscan
// never writes to it.
type Container interface {
	GetParameter(name string) (Entity, bool)
	GetEntity(name string) (Entity, bool)
}

type simpleEntity string

func (e simpleEntity) ReplacementText() string { return string(e) }

// MapContainer is a minimal in-memory Container. It mirrors the split the
// teacher repository's DTD type makes between a general-entity table and a
// parameter-entity table (dtd.go's RegisterEntity/LookupEntity/
// LookupParameterEntity), trimmed to the read side dtdscan needs.
//
// It is useful standalone for tests and for callers with no table of their
// own yet; most production uses will implement Container directly over
// whatever structure their DTD builder already maintains.
type MapContainer struct {
	general   map[string]Entity
	parameter map[string]Entity
}

// NewMapContainer returns an empty MapContainer.
func NewMapContainer() *MapContainer {
	return &MapContainer{
		general:   make(map[string]Entity),
		parameter: make(map[string]Entity),
	}
}

// DeclareGeneral registers a general entity's replacement text.
func (c *MapContainer) DeclareGeneral(name, replacement string) {
	c.general[name] = simpleEntity(replacement)
}

// DeclareParameter registers a parameter entity's replacement text.
func (c *MapContainer) DeclareParameter(name, replacement string) {
	c.parameter[name] = simpleEntity(replacement)
}

func (c *MapContainer) GetEntity(name string) (Entity, bool) {
	e, ok := c.general[name]
	return e, ok
}

func (c *MapContainer) GetParameter(name string) (Entity, bool) {
	e, ok := c.parameter[name]
	return e, ok
}
