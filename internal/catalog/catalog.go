package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownRole is returned when a role ID is not in the catalogue.
var ErrUnknownRole = errors.New("unknown role")

// Catalog is the immutable set of roles supplied at startup.
type Catalog struct {
	Roles []Role `yaml:"roles"`

	byID map[string]int
}

// New builds a Catalog from roles and validates it.
func New(roles []Role) (*Catalog, error) {
	c := &Catalog{Roles: roles}
	if err := validateRoles(c.Roles); err != nil {
		return nil, err
	}
	c.index()
	return c, nil
}

func (c *Catalog) index() {
	c.byID = make(map[string]int, len(c.Roles))
	for i, r := range c.Roles {
		c.byID[r.ID] = i
	}
}

// Role returns the role with the given ID.
func (c *Catalog) Role(id string) (*Role, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, id)
	}
	return &c.Roles[i], nil
}

// RoleIDs returns role IDs in catalogue order.
func (c *Catalog) RoleIDs() []string {
	ids := make([]string, len(c.Roles))
	for i, r := range c.Roles {
		ids[i] = r.ID
	}
	return ids
}

// AllRoles returns a copy of the role list.
func (c *Catalog) AllRoles() []Role {
	return slices.Clone(c.Roles)
}

// SituationCount returns the number of situations for a role, or 0 when
// the role is unknown.
func (c *Catalog) SituationCount(roleID string) int {
	i, ok := c.byID[roleID]
	if !ok {
		return 0
	}
	return len(c.Roles[i].Situations)
}

// TotalSituations returns the number of situations across all roles.
func (c *Catalog) TotalSituations() int {
	n := 0
	for _, r := range c.Roles {
		n += len(r.Situations)
	}
	return n
}
