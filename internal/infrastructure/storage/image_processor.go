package storage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// Photo bounds for report uploads. Phones produce 4000px images; the map
// popups never show more than a fraction of that.
const (
	MaxPhotoEdge     = 1600
	PhotoJPEGQuality = 82
)

type ImageProcessorImpl struct {
	maxEdge int
	quality int
}

func NewImageProcessor() *ImageProcessorImpl {
	return &ImageProcessorImpl{maxEdge: MaxPhotoEdge, quality: PhotoJPEGQuality}
}

// Process applies EXIF orientation and fits the photo inside a
// MaxPhotoEdge square. PNG stays PNG, everything else becomes JPEG.
// Bytes that do not decode are returned as they came, with zero dimensions.
func (p *ImageProcessorImpl) Process(reader io.Reader, contentType string) (io.Reader, int64, int, int, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("reading photo: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return bytes.NewReader(raw), int64(len(raw)), 0, 0, nil
	}

	size := img.Bounds().Size()
	if size.X > p.maxEdge || size.Y > p.maxEdge {
		img = imaging.Fit(img, p.maxEdge, p.maxEdge, imaging.Lanczos)
		size = img.Bounds().Size()
	}

	format := imaging.JPEG
	if contentType == "image/png" {
		format = imaging.PNG
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, img, format, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, 0, 0, 0, fmt.Errorf("encoding photo as %s: %w", format, err)
	}

	return &out, int64(out.Len()), size.X, size.Y, nil
}
