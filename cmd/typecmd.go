package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spiralbot/spiralbot/internal/output"
)

var typeCmd = &cobra.Command{
	Use:   "type [text]",
	Short: "Detect an input field and type into it",
	Long:  "Detect an input field by template asset or fallback coordinates, click it to take focus, select the existing contents, and type the given text.",
	Args:  cobra.ExactArgs(1),
	RunE:  runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
	typeCmd.Flags().String("name", "", "Logical element name")
	typeCmd.Flags().String("template", "", "Template asset name")
	typeCmd.Flags().Float64("threshold", 0, "Confidence threshold override")
	typeCmd.Flags().Int("fallback-x", 0, "Fixed fallback X coordinate")
	typeCmd.Flags().Int("fallback-y", 0, "Fixed fallback Y coordinate")
}

func runType(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	template, _ := cmd.Flags().GetString("template")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	fx, _ := cmd.Flags().GetInt("fallback-x")
	fy, _ := cmd.Flags().GetInt("fallback-y")

	criteria, err := criteriaFromFlags(name, template, "", threshold, fx, fy)
	if err != nil {
		return fmt.Errorf("type: %w", err)
	}

	s := newStack()
	res := s.ctrl.FindAndType(criteria, args[0])
	return output.Print(output.NewRunResult(res))
}
