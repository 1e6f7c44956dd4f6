package constants

const (
	Version        = `0.1.0`
	AppName        = `fx`
	ConfigFile     = `config`
	ConfigFileType = `yaml`
	ConfigDir      = `.config/fx`
	ConfigDirEnv   = `FX_CONFIG_DIR`
	SessionFile    = `session.yaml`
	LogFile        = `fx.log`
	TrashDir       = `trash`

	// TooBigThreshold is the size above which a file is never read for
	// preview.
	TooBigThreshold = 1_000_000_000
	// PreviewReadLimit caps how much of a file is read for sniffing and
	// text preview.
	PreviewReadLimit = 256 * 1024
	PreviewCacheSize = 64
	TabWidth         = 4
	MinTermSize      = 4

	DefaultProgressEvery = 50

	Help = `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
)
