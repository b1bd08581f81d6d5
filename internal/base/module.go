// Package base holds the pieces shared by every module.
package base

// BaseModule provides the identity half of the modulemanager.Module interface.
// Embed it and implement Migrate and Init.
type BaseModule struct {
	id   string
	name string
	core bool
}

// NewBaseModule creates a base module with common properties
func NewBaseModule(id, name string, core bool) BaseModule {
	return BaseModule{id: id, name: name, core: core}
}

// ID returns the unique module identifier
func (m BaseModule) ID() string {
	return m.id
}

// Name returns the module display name
func (m BaseModule) Name() string {
	return m.name
}

// Core returns whether this is a core module
func (m BaseModule) Core() bool {
	return m.core
}
