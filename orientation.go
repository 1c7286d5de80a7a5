package pictor

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// normalizeOrientation applies the EXIF orientation tag of the original bytes
// so resized output is upright. Best effort: missing or unreadable EXIF
// leaves the image as decoded.
func normalizeOrientation(img image.Image, original []byte) image.Image {
	x, err := exif.Decode(bytes.NewReader(original))
	if err != nil {
		return img
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return img
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return img
	}

	// imaging rotations are counter-clockwise.
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}
