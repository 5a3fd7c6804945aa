package cmd

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	xdraw "golang.org/x/image/draw"

	"github.com/spiralbot/spiralbot/internal/element"
	"github.com/spiralbot/spiralbot/internal/output"
	"github.com/spiralbot/spiralbot/internal/screen"
)

// ScreenshotResult is the output of the screenshot command.
type ScreenshotResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Path   string `yaml:"path"   json:"path"`
	Width  int    `yaml:"width"  json:"width"`
	Height int    `yaml:"height" json:"height"`
}

var screenshotCmd = &cobra.Command{
	Use:   "screenshot [file]",
	Short: "Capture the screen to an image file",
	Long:  "Capture the primary display (or a region) and write it as PNG or JPEG. Captures at native resolution unless --scale is given.",
	Args:  cobra.ExactArgs(1),
	RunE:  runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().Int("x", 0, "Region origin X")
	screenshotCmd.Flags().Int("y", 0, "Region origin Y")
	screenshotCmd.Flags().Int("width", 0, "Region width (0 = full screen)")
	screenshotCmd.Flags().Int("height", 0, "Region height (0 = full screen)")
	screenshotCmd.Flags().Float64("scale", 1.0, "Scale factor 0.1-1.0")
	screenshotCmd.Flags().Int("quality", 80, "JPEG quality 1-100")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	scale, _ := cmd.Flags().GetFloat64("scale")
	quality, _ := cmd.Flags().GetInt("quality")

	capturer := screen.NewDisplayCapturer()
	img, err := captureArea(capturer, x, y, width, height)
	if err != nil {
		return err
	}
	img = scaleImage(img, scale)

	path := args[0]
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	switch ext(path) {
	case "jpg", "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encoding %q: %w", path, err)
	}

	b := img.Bounds()
	return output.Print(ScreenshotResult{OK: true, Path: path, Width: b.Dx(), Height: b.Dy()})
}

func captureArea(capturer screen.Capturer, x, y, width, height int) (image.Image, error) {
	if width > 0 && height > 0 {
		return capturer.CaptureRegion(element.BoundingBox{X: x, Y: y, Width: width, Height: height})
	}
	return capturer.Capture()
}

// scaleImage downscales img by factor using Catmull-Rom resampling. A factor
// at or above 1 returns img unchanged.
func scaleImage(img image.Image, factor float64) image.Image {
	if factor >= 1.0 || factor <= 0 {
		return img
	}
	b := img.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	if w < 1 || h < 1 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func ext(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
