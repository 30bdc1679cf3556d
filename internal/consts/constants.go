package consts

// Constants for the dependency, installers and configuration files
const (
	DefaultDependency = "fecoding"

	InstallerDefault = "npm"
	InstallerWindows = "npm.cmd"
	InstallVerb      = "install"

	ConfigFileName = "fecoding.yaml"
	EnvFileName    = ".env"
	EnvPrefix      = "FECODING_"

	// OutputMarker separates script noise from the JSON record in the
	// output read by the editor host.
	OutputMarker = "*** Fecoding output json ***"
)
