// Package hooks runs optional user scripts around package installation and
// removal. Scripts are written in Tengo and live in
// <hooks dir>/<package>/<hook type>.tengo.
package hooks

// HookType represents the type of hooks.
type HookType string

// Supported hooks types.
const (
	PreInstall  HookType = "pre-install"
	PostInstall HookType = "post-install"
	PreRemove   HookType = "pre-remove"
	PostRemove  HookType = "post-remove"
)

// HookTypes lists every supported hook type.
var HookTypes = []HookType{PreInstall, PostInstall, PreRemove, PostRemove}

// HookContext contains information passed to hooks.
type HookContext struct {
	PackageName    string
	PackageVersion string
	InstallPath    string
	ExecutablePath string
	Vars           map[string]interface{}
}
