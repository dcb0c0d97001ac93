package imagepkg

import (
	"bytes"
	"context"
	"image"
	"time"

	"github.com/disintegration/imaging"

	"github.com/youruser/spellhub/internal/util"
)

// DownloadImage downloads an image from url and decodes it.
func DownloadImage(ctx context.Context, url string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	body, err := util.GetBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(body))
}
