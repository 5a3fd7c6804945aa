package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spiralbot/spiralbot/internal/output"
	"github.com/spiralbot/spiralbot/internal/screen"
)

// ClipboardReadResult is the output of `clipboard read`.
type ClipboardReadResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	Text   string `yaml:"text"   json:"text"`
}

// ClipboardWriteResult is the output of `clipboard write` and `clipboard clear`.
type ClipboardWriteResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
}

var clipboardCmd = &cobra.Command{
	Use:   "clipboard",
	Short: "Read, write, or clear the system clipboard",
	Long:  "Interact with the system clipboard the bot uses for on-screen text extraction.",
}

var clipboardReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read the current clipboard text",
	RunE:  runClipboardRead,
}

var clipboardWriteCmd = &cobra.Command{
	Use:   "write [text]",
	Short: "Write text to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runClipboardWrite,
}

var clipboardClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the clipboard",
	RunE:  runClipboardClear,
}

func init() {
	rootCmd.AddCommand(clipboardCmd)
	clipboardCmd.AddCommand(clipboardReadCmd)
	clipboardCmd.AddCommand(clipboardWriteCmd)
	clipboardCmd.AddCommand(clipboardClearCmd)
}

func runClipboardRead(cmd *cobra.Command, args []string) error {
	text, err := screen.NewSystemClipboard().GetText()
	if err != nil {
		return fmt.Errorf("clipboard read: %w", err)
	}
	return output.Print(ClipboardReadResult{OK: true, Action: "read", Text: text})
}

func runClipboardWrite(cmd *cobra.Command, args []string) error {
	if err := screen.NewSystemClipboard().SetText(args[0]); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return output.Print(ClipboardWriteResult{OK: true, Action: "write"})
}

func runClipboardClear(cmd *cobra.Command, args []string) error {
	if err := screen.NewSystemClipboard().Clear(); err != nil {
		return fmt.Errorf("clipboard clear: %w", err)
	}
	return output.Print(ClipboardWriteResult{OK: true, Action: "clear"})
}
