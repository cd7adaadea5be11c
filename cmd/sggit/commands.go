package sggit

import (
	"fmt"
	"os"

	"github.com/Duckilicious/sggit/internal/version"
	"github.com/Duckilicious/sggit/pkg/commands"
	"github.com/Duckilicious/sggit/pkg/config"
	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/types"
	"github.com/Duckilicious/sggit/pkg/ui"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// newRenderer picks the output format from --format, falling back to the
// output.format setting.
func newRenderer(cmd *cobra.Command) (ui.Renderer, error) {
	name, _ := cmd.Root().PersistentFlags().GetString("format")
	if name == "" {
		name = config.Get().Output.Format
	}
	format, err := ui.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// render prints result when there is one and passes runErr through, so
// partial results (update with some failed files) are still shown.
func render[R types.CommandResult | types.GenConfigResult](cmd *cobra.Command, result *R, runErr error) error {
	if result == nil {
		return runErr
	}
	renderer, err := newRenderer(cmd)
	if err != nil {
		return err
	}
	if err := renderer.RenderResult(result); err != nil {
		return err
	}
	return runErr
}

func newInitCmd() *cobra.Command {
	var opts commands.InitOptions

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (opts.Platform == "" || opts.RepoPath == "") && isatty.IsTerminal(os.Stdin.Fd()) {
				opts.Prompter = commands.TerminalPrompter{}
			}
			result, err := commands.Init(cmd.Context(), opts)
			return render(cmd, result, err)
		},
	}
	cmd.Flags().StringVar(&opts.Platform, "platform", "", MsgFlagPlatform)
	cmd.Flags().StringVar(&opts.RepoPath, "repo", "", MsgFlagRepo)
	cmd.Flags().BoolVar(&opts.Force, "force", false, MsgFlagInitForce)
	return cmd
}

func newTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "track <real_path> [repo_path]",
		Aliases: []string{"add"},
		Short:   MsgTrackShort,
		Long:    MsgTrackLong,
		Example: MsgTrackExample,
		GroupID: "core",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.TrackOptions{RealPath: args[0]}
			if len(args) == 2 {
				opts.RepoPath = args[1]
			}
			result, err := commands.Track(cmd.Context(), opts)
			return render(cmd, result, err)
		},
	}
}

func newUntrackCmd() *cobra.Command {
	var opts commands.UntrackOptions

	cmd := &cobra.Command{
		Use:     "untrack <repo_path>",
		Aliases: []string{"rm"},
		Short:   MsgUntrackShort,
		Long:    MsgUntrackLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.RepoPath = args[0]
			result, err := commands.Untrack(cmd.Context(), opts)
			return render(cmd, result, err)
		},
	}
	cmd.Flags().BoolVar(&opts.All, "all", false, MsgFlagAll)
	cmd.Flags().BoolVar(&opts.KeepFile, "keep-file", false, MsgFlagKeepFile)
	return cmd
}

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "update",
		Short:   MsgUpdateShort,
		Long:    MsgUpdateLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Update(cmd.Context(), commands.UpdateOptions{})
			return render(cmd, result, err)
		},
	}
}

func newSyncCmd() *cobra.Command {
	var opts commands.SyncOptions

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Sync(cmd.Context(), opts)
			return render(cmd, result, err)
		},
	}
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}

func newCommitCmd() *cobra.Command {
	var opts commands.CommitOptions

	cmd := &cobra.Command{
		Use:     "commit -m <message>",
		Short:   MsgCommitShort,
		Long:    MsgCommitLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Commit(cmd.Context(), opts)
			return render(cmd, result, err)
		},
	}
	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", MsgFlagMessage)
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Status(cmd.Context(), commands.StatusOptions{})
			return render(cmd, result, err)
		},
	}
}

func newProxyCmd() *cobra.Command {
	var command string

	cmd := &cobra.Command{
		Use:     "proxy [-c \"<git args>\"] [-- <git args>...]",
		Short:   MsgProxyShort,
		Long:    MsgProxyLong,
		Example: MsgProxyExample,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if command != "" && len(args) > 0 {
				return errors.New(errors.ErrInvalidInput, MsgErrProxyArgs)
			}
			result, err := commands.Proxy(cmd.Context(), commands.ProxyOptions{
				Command: command,
				Args:    args,
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			// git already wrote to the terminal
			log.Debug().Str("ran", result.Message).Msg("Proxy finished")
			return nil
		},
	}
	cmd.Flags().StringVarP(&command, "command", "c", "", MsgFlagCommand)
	return cmd
}

func newGenConfigCmd() *cobra.Command {
	var opts commands.GenConfigOptions

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.GenConfig(opts)
			return render(cmd, result, err)
		},
	}
	cmd.Flags().BoolVar(&opts.Write, "write", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&opts.Force, "force", false, MsgFlagGenForce)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sggit version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletion,
		GroupID:               "misc",
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
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
