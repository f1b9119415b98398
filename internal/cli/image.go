package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nearestcolour/internal/image"
	"github.com/jmylchreest/nearestcolour/internal/security"
)

func newImageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image <path|url>",
		Short: "Classify the pixels of an image by nearest named colour",
		Long: `Classify every pixel of an image against the catalog.

Supported image formats: JPEG, PNG, GIF, WebP. Remote images must be served
over HTTPS.

Examples:
  nearestcolour image wallpaper.jpg
  nearestcolour image -n 10 --strategy MultiThreadedMerge photo.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runImage(cmd, args[0])
		},
	}
	addRunFlags(cmd.Flags())
	return cmd
}

func (a *app) runImage(cmd *cobra.Command, path string) error {
	cfg, err := a.runConfig(cmd)
	if err != nil {
		return err
	}

	if !security.IsRemote(path) && !image.IsImageFile(path) {
		a.logger.Warn("unrecognised image extension, detecting format from content",
			"path", path, "supported", image.SupportedImageExtensions())
	}

	img, err := image.NewSmartLoader().Load(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	src := image.NewPixelSource(img)
	w, h := src.Size()
	a.logger.Debug("image loaded", "path", path, "width", w, "height", h)

	cat, err := a.loadCatalog(cmd.Context(), cfg.Catalog)
	if err != nil {
		return err
	}

	rep, err := a.classify(cfg, path, src, cat)
	if err != nil {
		return err
	}
	return a.emit(cmd, cfg, rep)
}
