package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mootlabs/moot/internal/client"
	"github.com/mootlabs/moot/internal/config"
)

var resumeCmd = &cobra.Command{
	Use:   "resume <thread-id>",
	Short: "Resume a paused debate",
	Long: `Resume continues a debate that paused in supervised or participatory
mode. The server retains the round history for the thread; only your
steering input travels with the request.

Use --message to inject a comment for the panel to debate, --tag to
direct the next round at specific panelists, and --exit to ask the
panel to wrap up with a final verdict now.`,
	Args: cobra.ExactArgs(1),
	RunE: runResume,
}

var (
	resumeMessage string
	resumeTags    []string
	resumeExit    bool
	resumeUseTUI  bool
)

func init() {
	rootCmd.AddCommand(resumeCmd)

	resumeCmd.Flags().StringVarP(&resumeMessage, "message", "m", "", "message for the panel to consider")
	resumeCmd.Flags().StringArrayVarP(&resumeTags, "tag", "t", nil, "panelist to address directly (repeatable)")
	resumeCmd.Flags().BoolVar(&resumeExit, "exit", false, "ask the panel to conclude with a verdict now")
	resumeCmd.Flags().BoolVar(&resumeUseTUI, "tui", false, "render the debate in the interactive viewer")
}

func runResume(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	threadID := args[0]
	req := client.AskRequest{
		ThreadID:        threadID,
		ContinueDebate:  true,
		TaggedPanelists: resumeTags,
		UserMessage:     resumeMessage,
		ExitDebate:      resumeExit,
		ProviderKeys:    cfg.Panel.ProviderKeys,
	}

	return runDebate(cfg, req, "thread "+threadID, resumeUseTUI)
}
