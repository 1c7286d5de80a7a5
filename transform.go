package pictor

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/nfnt/resize"
)

// jpegQuality balances file size against the zoom variant's close-inspection
// use case.
const jpegQuality = 90

// ProbeResult is the outcome of reading image metadata without decoding pixel
// data. Known is false when the buffer could not be classified; that only
// affects format selection, not the decode itself.
type ProbeResult struct {
	Format string
	Width  int
	Height int
	Known  bool
}

func probeImage(data []byte) ProbeResult {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ProbeResult{}
	}
	return ProbeResult{Format: format, Width: cfg.Width, Height: cfg.Height, Known: true}
}

// selectFormat keeps png and webp as-is; every other origin format, including
// an unclassifiable one, normalizes to jpeg.
func selectFormat(probe ProbeResult) string {
	switch probe.Format {
	case "png", "webp":
		return probe.Format
	}
	return "jpeg"
}

// TransformedImage is the per-request product of the pipeline. It has no
// identity beyond the response it rides in; caching is left to HTTP
// intermediaries.
type TransformedImage struct {
	Bytes       []byte
	ContentType string
	LongEdgePx  int
}

// transformImage decodes the origin bytes, normalizes EXIF orientation,
// resizes to fit inside a maxLongEdge square without enlarging, and
// re-encodes. An undecodable buffer fails the whole request; unrecognized
// bytes are never passed through with a guessed content type.
func transformImage(data []byte, maxLongEdge int) (TransformedImage, error) {
	probe := probeImage(data)
	format := selectFormat(probe)

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return TransformedImage{}, &StageError{Stage: "transform", Err: err}
	}

	img = normalizeOrientation(img, data)
	img = resize.Thumbnail(uint(maxLongEdge), uint(maxLongEdge), img, resize.Lanczos3)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "webp":
		err = webp.Encode(&buf, img, nil)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return TransformedImage{}, &StageError{Stage: "transform", Err: err}
	}

	bounds := img.Bounds()
	longEdge := bounds.Dx()
	if bounds.Dy() > longEdge {
		longEdge = bounds.Dy()
	}

	return TransformedImage{
		Bytes:       buf.Bytes(),
		ContentType: "image/" + format,
		LongEdgePx:  longEdge,
	}, nil
}
