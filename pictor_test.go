package pictor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/chai2010/webp"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/artfolio/pictor/app"
)

const testJwtSecret = "test-secret"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(db Querier) *Pictor {
	return New(db, nil, discardLogger(), app.Config{
		DbSchema:       "public",
		AdminJwtSecret: testJwtSecret,
	})
}

func newTestRouter(p *Pictor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	p.RegisterRoutes(r.Group("/api"))
	r.GET("/healthz", p.GetHealth)
	return r
}

func strPtr(s string) *string { return &s }

// fakeRow satisfies pgx.Row for the single-column origin_url lookups.
type fakeRow struct {
	url *string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if p, ok := dest[0].(**string); ok {
		*p = r.url
	}
	return nil
}

type fakeDB struct {
	row      pgx.Row
	tx       pgx.Tx
	beginErr error
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return f.row
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

// fakeTx overrides the methods the write path touches; the embedded interface
// covers the rest of pgx.Tx.
type fakeTx struct {
	pgx.Tx
	execTag    pgconn.CommandTag
	execErr    error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.execTag, t.execErr
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

func testImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 128, 255})
		}
	}
	return img
}

func makeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(width, height), &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

// exifApp1 builds a minimal EXIF APP1 segment holding only the orientation
// tag: big-endian TIFF header, one IFD0 entry, no further IFDs.
func exifApp1(orientation byte) []byte {
	payload := []byte{
		'E', 'x', 'i', 'f', 0x00, 0x00,
		'M', 'M', 0x00, 0x2a, // big-endian TIFF
		0x00, 0x00, 0x00, 0x08, // IFD0 offset
		0x00, 0x01, // one entry
		0x01, 0x12, // orientation tag
		0x00, 0x03, // SHORT
		0x00, 0x00, 0x00, 0x01, // count
		0x00, orientation, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, // no next IFD
	}
	segment := []byte{0xff, 0xe1, 0x00, byte(len(payload) + 2)}
	return append(segment, payload...)
}

// makeOrientedJPEG splices the APP1 segment right after the SOI marker, the
// way cameras write it.
func makeOrientedJPEG(t *testing.T, width, height int, orientation byte) []byte {
	t.Helper()
	data := makeJPEG(t, width, height)
	require.True(t, bytes.HasPrefix(data, []byte{0xff, 0xd8}))

	out := append([]byte{}, data[:2]...)
	out = append(out, exifApp1(orientation)...)
	return append(out, data[2:]...)
}

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(width, height)))
	return buf.Bytes()
}

func makeWebP(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, webp.Encode(&buf, testImage(width, height), nil))
	return buf.Bytes()
}

func makeGIF(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, testImage(width, height), nil))
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

var _ Querier = (*fakeDB)(nil)
