package platform

const (
	// OSWindows is the GOOS value of Windows.
	OSWindows = "windows"

	// UninstallKey is the registry path, relative to a hive, that holds one
	// subkey per installed program.
	UninstallKey = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`

	// MsiExec is the system installer used for .msi files.
	MsiExec = "msiexec"

	startMenuPrograms = `Microsoft\Windows\Start Menu\Programs`
)

// Values read from an uninstall entry.
const (
	ValueDisplayName          = "DisplayName"
	ValueQuietUninstallString = "QuietUninstallString"
	ValueUninstallString      = "UninstallString"
)

// SilentInstallFlags are passed to every non-MSI installer: Inno Setup and
// NSIS each ignore the other's flag.
var SilentInstallFlags = []string{"/VERYSILENT", "/S"}
