package chunk

import "errors"

// ErrBlockExists is returned when registering a block name that is already
// taken.
var ErrBlockExists = errors.New("chunk: block name already registered")

// BlockData describes one registered block type.
type BlockData struct {
	Name        string
	DisplayText string
	ID          BlockID
}

// Registry assigns stable identifiers to block names. Adding blocks is cheap;
// removing them would require rewriting every stored chunk and is not
// supported.
type Registry struct {
	data []BlockData
	ids  map[string]BlockID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]BlockID)}
}

// Add registers a block under name and returns its identifier. Identifiers
// start at 1 so that 0 stays reserved for "no block".
func (r *Registry) Add(name, displayText string) (BlockID, error) {
	if _, taken := r.ids[name]; taken {
		return 0, ErrBlockExists
	}
	id := BlockID(len(r.data) + 1)
	r.ids[name] = id
	r.data = append(r.data, BlockData{Name: name, DisplayText: displayText, ID: id})
	return id, nil
}

// ByID returns the data for a block identifier.
func (r *Registry) ByID(id BlockID) (BlockData, bool) {
	i := int(id) - 1
	if i < 0 || i >= len(r.data) {
		return BlockData{}, false
	}
	return r.data[i], true
}

// IDByName returns the identifier registered under name.
func (r *Registry) IDByName(name string) (BlockID, bool) {
	id, ok := r.ids[name]
	return id, ok
}

// ByName returns the data for a block name.
func (r *Registry) ByName(name string) (BlockData, bool) {
	id, ok := r.ids[name]
	if !ok {
		return BlockData{}, false
	}
	return r.ByID(id)
}

// Len returns the number of registered block types.
func (r *Registry) Len() int {
	return len(r.data)
}
