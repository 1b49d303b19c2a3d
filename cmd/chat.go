package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yfkiwi/voicefirst/pkg/assistant"
	"github.com/yfkiwi/voicefirst/pkg/gateway"
	"github.com/yfkiwi/voicefirst/pkg/proposal"
	"github.com/yfkiwi/voicefirst/pkg/sections"
)

var chatSection int

// NewChatCmd returns the plain-terminal chat command: the same
// assistant conversation as the TUI, line by line on stdin/stdout.
// Useful over SSH or when scripting a conversation.
func NewChatCmd() *cobra.Command {
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the grant assistant in the terminal",
		Long: `Starts a line-based conversation with the AI grant assistant.
Field values extracted from the conversation are merged into your saved
draft. Use /section <n> to switch sections and /quit to exit.`,
		RunE: runChat,
	}
	chatCmd.Flags().IntVarP(&chatSection, "section", "s", 1, "Proposal section to start in (0-11)")
	return chatCmd
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := proposal.NewStore()
	state, err := proposal.LoadDraft(cfg.DraftPath)
	if err != nil {
		return fmt.Errorf("failed to load draft: %w", err)
	}
	hasDraft := state.ProjectTitle != ""
	store.Replace(state)

	client := gateway.NewClient(cfg.APIBaseURL, gateway.WithVoiceID(cfg.VoiceID))
	orch := assistant.New(store, client)

	aiColor := color.New(color.FgCyan)
	sysColor := color.New(color.FgYellow)
	printed := 0

	printNew := func() {
		for _, msg := range orch.Timeline()[printed:] {
			switch msg.Role {
			case assistant.RoleAssistant:
				aiColor.Fprintf(cmd.OutOrStdout(), "assistant> %s\n", msg.Content)
			case assistant.RoleSystem:
				sysColor.Fprintf(cmd.OutOrStdout(), "%s\n", msg.Content)
			}
		}
		printed = len(orch.Timeline())
	}

	orch.Reset(hasDraft)
	if chatSection != 0 {
		orch.SetSection(chatSection)
		orch.Guidance(chatSection)
	}
	printNew()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprint(cmd.OutOrStdout(), "you> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "/quit" || line == "/exit":
			return saveChatDraft(cfg.DraftPath, store)
		case strings.HasPrefix(line, "/section "):
			n, convErr := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/section ")))
			if convErr != nil || n < 0 || n >= sections.Count {
				sysColor.Fprintln(cmd.OutOrStdout(), "usage: /section <0-11>")
			} else {
				orch.SetSection(n)
				orch.Guidance(n)
				printNew()
			}
		case line != "":
			// Errors surface as timeline entries; nothing extra to do.
			_ = orch.Send(line)
			printNew()
		}
		fmt.Fprint(cmd.OutOrStdout(), "you> ")
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return saveChatDraft(cfg.DraftPath, store)
}

func saveChatDraft(path string, store *proposal.Store) error {
	if err := proposal.SaveDraft(path, store.Snapshot()); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}
