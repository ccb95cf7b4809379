package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/rxr/internal/version"
	"github.com/arthur-debert/rxr/pkg/config"
	"github.com/arthur-debert/rxr/pkg/core"
	"github.com/arthur-debert/rxr/pkg/errors"
	"github.com/arthur-debert/rxr/pkg/logging"
	"github.com/arthur-debert/rxr/pkg/style"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		flags     config.Flags
		verbosity int
		dryRun    bool
		format    string
	)

	rootCmd := &cobra.Command{
		Use:     "rxr [flags] ARCHIVE...",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errors.New(errors.ErrNoArchives, MsgNoArchiveGiven)
			}
			flags.Archives = args

			cfg, err := loadConfiguration(flags)
			if err != nil {
				return err
			}

			plan, err := core.Run(cmd.Context(), cfg, core.RunOptions{DryRun: dryRun})
			if err != nil {
				return err
			}

			if verbosity > 0 && len(plan.Scores) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), style.TitleStyle.Render(MsgScoresHeader))
				style.WriteScores(cmd.ErrOrStderr(), plan.Scores, plan.Profile)
			}
			if dryRun {
				return plan.Write(cmd.OutOrStdout(), format)
			}
			return nil
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	f := rootCmd.Flags()
	f.StringVarP(&flags.Config, "config", "c", "", MsgFlagConfig)
	f.StringVar(&flags.ConfigDirectory, "config-directory", "", MsgFlagConfigDir)
	f.StringVarP(&flags.DataDir, "data-directory", "d", "", MsgFlagDataDir)
	f.StringVarP(&flags.TempDir, "temporary-directory", "t", "", MsgFlagTempDir)
	f.StringVarP(&flags.TargetDir, "target-directory", "o", "", MsgFlagTargetDir)
	f.StringVarP(&flags.Extractor, "extractor", "x", "", MsgFlagExtractor)
	f.StringVarP(&flags.Profile, "profile", "p", "", MsgFlagProfile)
	f.BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	f.StringVar(&format, "format", core.FormatTOML, MsgFlagFormat)
	rootCmd.MarkFlagsMutuallyExclusive("config", "config-directory")
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{core.FormatTOML, core.FormatYAML}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newGenConfigCmd())

	return rootCmd
}

// loadConfiguration merges the command line with the environment and the
// compiled defaults.
func loadConfiguration(flags config.Flags) (*config.Configuration, error) {
	cli, err := config.FromFlags(flags)
	if err != nil {
		return nil, err
	}
	env, err := config.FromEnvironment()
	if err != nil {
		return nil, err
	}
	return config.Load(cli, env, config.Compiled())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf(MsgUnknownShell, args[0])
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen-config",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.ExampleConfig())
			return err
		},
	}
}
