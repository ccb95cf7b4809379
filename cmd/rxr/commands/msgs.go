package commands

// Short messages (one-liners)
const (
	MsgRootShort       = "Extract an archive and run what is inside"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgGenConfigShort  = "Print an example configuration file"

	MsgFlagConfig     = "Configuration file"
	MsgFlagConfigDir  = "Directory holding rxr.toml, rxr.yaml or rxr.json"
	MsgFlagDataDir    = "Data directory, available as {data}"
	MsgFlagTempDir    = "Directory under which targets are created"
	MsgFlagTargetDir  = "Extract to this directory instead of a derived one"
	MsgFlagExtractor  = "Use this extractor instead of matching extensions"
	MsgFlagProfile    = "Use this profile instead of scoring the extracted files"
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun     = "Print the resolved plan without extracting or launching"
	MsgFlagFormat     = "Plan output format for --dry-run (toml or yaml)"
	MsgScoresHeader   = "Profile scores:"
	MsgVersionFormat  = "rxr version %s\n  commit: %s\n  built:  %s\n"
	MsgUnknownShell   = "unknown shell %q"
	MsgNoArchiveGiven = "at least one archive is required"
)

// Long messages
const (
	MsgRootLong = `rxr extracts one or more archives into a target directory and launches a
program found inside, using extractors and profiles from a catalog file.

Archives sharing a target directory are only extracted once. The profile is
chosen by scoring the extracted files against each profile's features, unless
one is given with --profile.`

	MsgRootExample = `  rxr -c ~/.config/rxr/rxr.toml game.zip
  rxr -p dosbox disk1.zip disk2.zip
  rxr --dry-run --format yaml game.7z`

	MsgCompletionLong = `To load completions:

Bash:
  $ source <(rxr completion bash)

Zsh:
  $ rxr completion zsh > "${fpath[1]}/_rxr"

Fish:
  $ rxr completion fish | source

PowerShell:
  PS> rxr completion powershell | Out-String | Invoke-Expression`

	MsgGenConfigLong = `Print an example catalog with extractors and profiles. Redirect it to
$XDG_CONFIG_HOME/rxr/rxr.toml to get started.`
)
