package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spiralbot/spiralbot/internal/screen"
)

var coordsCmd = &cobra.Command{
	Use:   "coords",
	Short: "Report the live mouse position",
	Long:  "Print the mouse position at a fixed interval. Used to calibrate fallback coordinates for launcher and game elements.",
	RunE:  runCoords,
}

func init() {
	rootCmd.AddCommand(coordsCmd)
	coordsCmd.Flags().Int("interval", 500, "Sampling interval in milliseconds")
	coordsCmd.Flags().Int("count", 0, "Number of samples to print (0 = until interrupted)")
}

func runCoords(cmd *cobra.Command, args []string) error {
	intervalMs, _ := cmd.Flags().GetInt("interval")
	count, _ := cmd.Flags().GetInt("count")

	input := screen.NewRobotInputter()
	interval := time.Duration(intervalMs) * time.Millisecond

	for i := 0; count == 0 || i < count; i++ {
		if i > 0 {
			time.Sleep(interval)
		}
		x, y := input.MousePosition()
		fmt.Printf("x=%d y=%d\n", x, y)
	}
	return nil
}
