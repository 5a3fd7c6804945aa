package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/spiralbot/spiralbot/internal/output"
)

// WaitResult is the output of the wait command.
type WaitResult struct {
	OK       bool    `yaml:"ok"                 json:"ok"`
	Element  string  `yaml:"element"            json:"element"`
	WaitTime float64 `yaml:"wait_time"          json:"wait_time"`
	Attempts int     `yaml:"attempts"           json:"attempts"`
	TimedOut bool    `yaml:"timed_out,omitempty" json:"timed_out,omitempty"`
}

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for a UI element to appear or disappear",
	Long:  "Poll detection until the element appears (or, with --gone, disappears) or the timeout elapses.",
	RunE:  runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().String("name", "", "Logical element name")
	waitCmd.Flags().String("template", "", "Template asset name")
	waitCmd.Flags().String("text", "", "Text to locate via OCR")
	waitCmd.Flags().Float64("threshold", 0, "Confidence threshold override")
	waitCmd.Flags().Bool("gone", false, "Invert: wait until the element is NO LONGER detected")
	waitCmd.Flags().Int("timeout", 10, "Max seconds to wait")
	waitCmd.Flags().Int("interval", 1000, "Polling interval in milliseconds")
}

func runWait(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	template, _ := cmd.Flags().GetString("template")
	text, _ := cmd.Flags().GetString("text")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	gone, _ := cmd.Flags().GetBool("gone")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")
	intervalMs, _ := cmd.Flags().GetInt("interval")

	criteria, err := criteriaFromFlags(name, template, text, threshold, 0, 0)
	if err != nil {
		return err
	}

	timeout := time.Duration(timeoutSec) * time.Second
	interval := time.Duration(intervalMs) * time.Millisecond

	s := newStack()
	wait := s.ctrl.WaitForElement
	if gone {
		wait = s.ctrl.WaitForElementGone
	}
	res := wait(criteria, timeout, interval)

	out := WaitResult{
		OK:       res.Success(),
		Element:  criteria.Name,
		TimedOut: !res.Success(),
	}
	if v, ok := res.Data["wait_time"].(float64); ok {
		out.WaitTime = v
	}
	if v, ok := res.Data["attempts"].(int); ok {
		out.Attempts = v
	}
	return output.Print(out)
}
