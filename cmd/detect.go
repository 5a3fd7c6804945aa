package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spiralbot/spiralbot/internal/output"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Run a one-shot detection and print the result",
	Long:  "Detect a UI element by template asset, OCR text, or both, and print its bounding box, strategy, and confidence. Useful for calibrating templates and thresholds.",
	RunE:  runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().String("name", "", "Logical element name for logs and output")
	detectCmd.Flags().String("template", "", "Template asset name (e.g. game/play_button.png)")
	detectCmd.Flags().String("text", "", "Text to locate via OCR")
	detectCmd.Flags().Float64("threshold", 0, "Confidence threshold override (0 = config default)")
	detectCmd.Flags().Int("fallback-x", 0, "Fixed fallback X coordinate")
	detectCmd.Flags().Int("fallback-y", 0, "Fixed fallback Y coordinate")
}

func runDetect(cmd *cobra.Command, args []string) error {
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
	el, found := s.detector.Find(criteria)
	return output.Print(output.NewDetectionResult(criteria.Name, el, found))
}
