// Package material holds the sellable-materials domain: the entity persisted
// per row, the availability derivation rule, and the alias coalescing applied
// to inbound records before they reach the repository.
package material

// Material is one sellable item on the public price list. Slug is the stable
// identifier that staff partial updates target; it survives full replaces.
type Material struct {
	Slug       string
	Name       string
	Category   string
	Price      *float64 // nullable; hidden on the public page when absent
	Unit       string   // small enumerated set, e.g. "m3", "t"
	Available  bool
	Status     string // free-text availability label, e.g. "pieejams"
	Note       string
	OrderIndex int
}

// PartialUpdate is the restricted field subset staff may write. Available is
// always re-derived from Status, never taken from the client.
type PartialUpdate struct {
	Slug   string
	Status string
	Note   string
}

func (u PartialUpdate) Available() bool {
	return AvailableFromStatus(u.Status)
}
