package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/rxr/internal/version"
	"github.com/arthur-debert/rxr/pkg/dosbox"
	"github.com/arthur-debert/rxr/pkg/logging"
)

const (
	msgShort = "Merge two DOSBox configuration files"
	msgLong  = `Merge TARGET over SOURCE and write the result to DESTINATION, which
defaults to TARGET. Settings from TARGET win; autoexec lines from both files
are kept, SOURCE lines first.`
	msgExample = `  rxr-dosbox-conf ~/.dosbox/dosbox.conf game.conf
  rxr-dosbox-conf base.conf game.conf merged.conf`
)

func newRootCmd(fs afero.Fs) *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:     "rxr-dosbox-conf SOURCE TARGET [DESTINATION]",
		Short:   msgShort,
		Long:    msgLong,
		Example: msgExample,
		Version: version.Version,
		Args:    cobra.RangeArgs(2, 3),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			source, target := args[0], args[1]
			destination := target
			if len(args) == 3 {
				destination = args[2]
			}
			return mergeFiles(fs, source, target, destination)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	return cmd
}

func mergeFiles(fs afero.Fs, source, target, destination string) error {
	base, err := dosbox.Read(fs, source)
	if err != nil {
		return err
	}
	overlay, err := dosbox.Read(fs, target)
	if err != nil {
		return err
	}

	merged := base.Merge(overlay)
	if err := merged.WriteFile(fs, destination); err != nil {
		return err
	}

	log.Info().
		Str("source", source).
		Str("target", target).
		Str("destination", destination).
		Int("sections", len(merged.Sections())).
		Msg("DOSBox configuration merged")
	return nil
}
