package cli

import (
	"fmt"
	"io"

	"github.com/openmsx/openmsx-install/internal/version"
	"github.com/openmsx/openmsx-install/pkg/config"
	"github.com/openmsx/openmsx-install/pkg/errors"
	"github.com/openmsx/openmsx-install/pkg/filesystem"
	"github.com/openmsx/openmsx-install/pkg/installer"
	"github.com/openmsx/openmsx-install/pkg/logging"
	"github.com/openmsx/openmsx-install/pkg/makevars"
	"github.com/openmsx/openmsx-install/pkg/style"
	"github.com/openmsx/openmsx-install/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const argCount = 8

// installArgs holds the positional arguments once validated.
type installArgs struct {
	prefix    string
	binaryDir string
	shareDir  string
	docDir    string
	binary    string
	platform  string
	verbose   bool
	cbios     bool
}

// Execute runs the installer command line and returns the process exit
// code.
func Execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd, stderr, err)
	}
	return errors.ExitCode(err)
}

// NewRootCmd creates and returns the root command
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting(stdout)

	var (
		verbosity  int
		configFile string
		sourceRoot string
		logFile    string
		closeLog   = func() {}
	)

	rootCmd := &cobra.Command{
		Use:     MsgRootUse,
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.String(),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != argCount {
				return errors.Newf(errors.ErrUsage, MsgErrArgCount, argCount, len(args))
			}
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Console only; the log file is opened once arguments are valid.
			closeLog = logging.SetupLogger(verbosity, logging.Options{
				Console: stderr,
				NoColor: !style.ColorEnabled(stderr),
			})
			log.Debug().Str("command", cmd.Name()).Strs("args", args).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { closeLog() }()

			a, err := parseArgs(args)
			if err != nil {
				return err
			}

			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("source-root") {
				overrides["source.root"] = sourceRoot
			}
			if cmd.Flags().Changed("log-file") {
				overrides["log.file"] = logFile
			}
			cfg, err := config.Load(config.LoadOptions{ConfigFile: configFile, Overrides: overrides})
			if err != nil {
				return err
			}

			fsys := filesystem.NewOS()
			symlinkForBinary, err := readSymlinkForBinary(fsys, cfg)
			if err != nil {
				return err
			}

			if cfg.Log.File != "" {
				closeLog()
				closeLog = logging.SetupLogger(verbosity, logging.Options{
					Console: stderr,
					File:    cfg.Log.File,
					NoColor: !style.ColorEnabled(stderr),
				})
			}

			plan := installer.NewPlan(a.prefix, a.binaryDir, a.shareDir, a.docDir,
				a.binary, a.platform, a.cbios, symlinkForBinary)
			return runInstall(fsys, cfg, plan, a.verbose, style.NewTheme(stdout))
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrUsage, "invalid flag")
	})

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.Flags().StringVar(&configFile, "config", "", MsgFlagConfig)
	rootCmd.Flags().StringVar(&sourceRoot, "source-root", ".", MsgFlagSourceRoot)
	rootCmd.Flags().StringVar(&logFile, "log-file", "", MsgFlagLogFile)

	return rootCmd
}

// parseArgs checks the boolean arguments before anything is read or
// written.
func parseArgs(args []string) (installArgs, error) {
	verbose, err := makevars.ParseBool(args[6])
	if err != nil {
		return installArgs{}, errors.Wrap(err, errors.ErrInvalidInput, "INSTALL_VERBOSE")
	}
	cbios, err := makevars.ParseBool(args[7])
	if err != nil {
		return installArgs{}, errors.Wrap(err, errors.ErrInvalidInput, "INSTALL_CONTRIB")
	}
	return installArgs{
		prefix:    args[0],
		binaryDir: args[1],
		shareDir:  args[2],
		docDir:    args[3],
		binary:    args[4],
		platform:  args[5],
		verbose:   verbose,
		cbios:     cbios,
	}, nil
}

func readSymlinkForBinary(fsys types.FS, cfg *config.Config) (bool, error) {
	custom, err := makevars.LoadCustomConfig(fsys, cfg.SourcePath(cfg.Descriptors.Custom))
	if err != nil {
		return false, err
	}
	token, err := custom.SymlinkForBinary()
	if err != nil {
		return false, err
	}
	value, err := makevars.ParseBool(token)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrInvalidInput, types.VarSymlinkForBinary)
	}
	return value, nil
}

func runInstall(fsys types.FS, cfg *config.Config, plan types.InstallPlan, verbose bool, out *style.Theme) error {
	if verbose {
		out.Println(style.Header, MsgInstalling)
	}

	inst := installer.New(installer.Options{
		FS:           fsys,
		Config:       cfg,
		Capabilities: filesystem.DetectCapabilities(fsys),
		Theme:        out,
	})
	if err := inst.InstallAll(plan); err != nil {
		log.Debug().Err(err).Interface("details", errors.GetErrorDetails(err)).Msg("Installation failed")
		return errors.Wrap(err, errors.ErrInstall, "")
	}

	if verbose {
		out.Println(style.Success, MsgComplete)
		out.Println(style.Notice, fmt.Sprintf(MsgROMNotice, plan.ShareDestDir))
	}
	return nil
}

func reportError(cmd *cobra.Command, stderr io.Writer, err error) {
	theme := style.NewTheme(stderr)
	switch {
	case errors.IsErrorCode(err, errors.ErrUsage):
		theme.Println(style.Error, errors.Describe(err))
		fmt.Fprintf(stderr, "%s %s\n", formatBold(stderr, MsgUsagePrefix), cmd.UseLine())
	case errors.ExitCode(err) == errors.ExitUsageError:
		theme.Println(style.Error, fmt.Sprintf(MsgInvalidArgument, errors.Describe(err)))
	default:
		theme.Println(style.Error, fmt.Sprintf(MsgInstallFailed, errors.Describe(err)))
	}
}
