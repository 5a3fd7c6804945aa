package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spiralbot/spiralbot/internal/output"
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Detect an element and click it",
	Long:  "Detect a UI element by template asset or OCR text, move the pointer to its center, and click. Retries detection with the configured budget.",
	RunE:  runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().String("name", "", "Logical element name")
	clickCmd.Flags().String("template", "", "Template asset name")
	clickCmd.Flags().String("text", "", "Text to locate via OCR")
	clickCmd.Flags().Float64("threshold", 0, "Confidence threshold override")
	clickCmd.Flags().Int("fallback-x", 0, "Fixed fallback X coordinate")
	clickCmd.Flags().Int("fallback-y", 0, "Fixed fallback Y coordinate")
}

func runClick(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	template, _ := cmd.Flags().GetString("template")
	text, _ := cmd.Flags().GetString("text")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	fx, _ := cmd.Flags().GetInt("fallback-x")
	fy, _ := cmd.Flags().GetInt("fallback-y")

	criteria, err := criteriaFromFlags(name, template, text, threshold, fx, fy)
	if err != nil {
		return err
	}

	s := newStack()
	res := s.ctrl.FindAndClick(criteria)
	return output.Print(output.NewRunResult(res))
}
