package cmd

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mootlabs/moot/internal/client"
	"github.com/mootlabs/moot/internal/config"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Start a new panel debate",
	Long: `Ask puts a question to the panel and streams the debate live.

In autonomous mode the panel debates to a verdict on its own. In
supervised mode the debate pauses after each round for your review; in
participatory mode you can steer it with messages and panelist tags
(see "moot resume").`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

var (
	askMode   string
	askRounds int
	askAttach []string
	askUseTUI bool
)

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVarP(&askMode, "mode", "m", "", "debate mode: autonomous, supervised, or participatory")
	askCmd.Flags().IntVarP(&askRounds, "rounds", "r", 0, "maximum number of debate rounds")
	askCmd.Flags().StringArrayVarP(&askAttach, "attach", "a", nil, "file to attach as debate context (repeatable)")
	askCmd.Flags().BoolVar(&askUseTUI, "tui", false, "render the debate in the interactive viewer")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	mode := cfg.Debate.Mode
	if askMode != "" {
		if !slices.Contains(config.ValidDebateModes(), askMode) {
			return fmt.Errorf("unknown debate mode %q", askMode)
		}
		mode = askMode
	}
	rounds := cfg.Debate.MaxRounds
	if askRounds > 0 {
		rounds = askRounds
	}

	attachments, err := readAttachments(askAttach)
	if err != nil {
		return err
	}

	threadID := newThreadID()
	req := client.AskRequest{
		ThreadID:        threadID,
		Question:        args[0],
		Attachments:     attachments,
		Panelists:       rosterFromConfig(cfg),
		ProviderKeys:    cfg.Panel.ProviderKeys,
		DebateMode:      client.DebateMode(mode),
		MaxDebateRounds: rounds,
	}

	fmt.Printf("thread %s\n", threadID)
	return runDebate(cfg, req, args[0], askUseTUI)
}

// readAttachments loads each attachment file and encodes it as a data URI.
func readAttachments(paths []string) ([]string, error) {
	attachments := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read attachment %s: %w", path, err)
		}
		mimeType := mime.TypeByExtension(filepath.Ext(path))
		if mimeType == "" {
			mimeType = http.DetectContentType(data)
		}
		attachments = append(attachments,
			"data:"+mimeType+";base64,"+base64.StdEncoding.EncodeToString(data))
	}
	return attachments, nil
}
