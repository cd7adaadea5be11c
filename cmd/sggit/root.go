package sggit

import (
	"embed"

	"github.com/Duckilicious/sggit/internal/version"
	"github.com/Duckilicious/sggit/pkg/cobrax/topics"
	"github.com/Duckilicious/sggit/pkg/config"
	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		format    string
	)

	rootCmd := &cobra.Command{
		Use:     "sggit",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			// User level configuration; commands that know the repository
			// reload it with the repository overlay.
			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			config.Initialize(cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&format, "format", "", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newTrackCmd())
	rootCmd.AddCommand(newUntrackCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newProxyCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	manager, err := topics.Load(topicFiles, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return rootCmd
	}
	topicsCmd := manager.NewCommand(MsgTopicsShort, MsgTopicsLong)
	topicsCmd.GroupID = "misc"
	rootCmd.AddCommand(topicsCmd)
	manager.Attach(rootCmd)

	return rootCmd
}
