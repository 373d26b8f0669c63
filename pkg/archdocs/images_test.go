package archdocs_test

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raelgalvan/archdocs/pkg/archdocs"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: uint8(40 * x), G: uint8(40 * y), B: 128, A: 255})
		}
	}
	return img
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, testImage()))
}

func writeTestJPEG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, testImage(), nil))
}

func writeTestGIF(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, gif.Encode(f, testImage(), nil))
}

func TestImageStoreIngestDirectory(t *testing.T) {
	t.Run("imports matching files and skips the rest", func(t *testing.T) {
		dir := t.TempDir()
		writeTestPNG(t, filepath.Join(dir, "context.png"))
		writeTestJPEG(t, filepath.Join(dir, "deployment.jpg"))
		writeTestGIF(t, filepath.Join(dir, "Sequence.GIF"))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0644))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

		store := archdocs.NewImageStore()
		count, err := store.IngestDirectory(dir)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		images := store.All()
		require.Len(t, images, 3)
		assert.Equal(t, "Sequence.GIF", images[0].Name)
		assert.Equal(t, "image/gif", images[0].ContentType)
		assert.Equal(t, "context.png", images[1].Name)
		assert.Equal(t, "image/png", images[1].ContentType)
		assert.Equal(t, "deployment.jpg", images[2].Name)
		assert.Equal(t, "image/jpeg", images[2].ContentType)

		// Payloads are valid base64 of the re-encoded pixel data
		for _, img := range images {
			raw, err := base64.StdEncoding.DecodeString(img.Content)
			require.NoError(t, err)
			assert.NotEmpty(t, raw)
		}
	})

	t.Run("re-ingesting the same directory is a set union", func(t *testing.T) {
		dir := t.TempDir()
		writeTestPNG(t, filepath.Join(dir, "context.png"))

		store := archdocs.NewImageStore()

		count, err := store.IngestDirectory(dir)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = store.IngestDirectory(dir)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		assert.Equal(t, 1, store.Len())
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		store := archdocs.NewImageStore()
		count, err := store.IngestDirectory("")
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("missing directory is a no-op", func(t *testing.T) {
		store := archdocs.NewImageStore()
		count, err := store.IngestDirectory(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("regular file path is a no-op", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.png")
		writeTestPNG(t, path)

		store := archdocs.NewImageStore()
		count, err := store.IngestDirectory(path)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("corrupt image aborts the whole ingest", func(t *testing.T) {
		dir := t.TempDir()
		writeTestPNG(t, filepath.Join(dir, "good.png"))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "zz-corrupt.png"), []byte("not a png"), 0644))

		store := archdocs.NewImageStore()
		count, err := store.IngestDirectory(dir)
		require.Error(t, err)
		assert.Zero(t, count)

		var imageErr *archdocs.ImageError
		require.ErrorAs(t, err, &imageErr)
		assert.Equal(t, "zz-corrupt.png", imageErr.Name)

		// Atomic: the decodable file was not inserted either
		assert.Zero(t, store.Len())
	})
}

func TestImageKey(t *testing.T) {
	base := archdocs.Image{Name: "context.png", ContentType: "image/png", Content: "aGVsbG8="}

	t.Run("stable for equal values", func(t *testing.T) {
		same := archdocs.Image{Name: "context.png", ContentType: "image/png", Content: "aGVsbG8="}
		assert.Equal(t, base.Key(), same.Key())
	})

	t.Run("differs per field", func(t *testing.T) {
		cases := map[string]archdocs.Image{
			"name":         {Name: "other.png", ContentType: "image/png", Content: "aGVsbG8="},
			"content type": {Name: "context.png", ContentType: "image/gif", Content: "aGVsbG8="},
			"payload":      {Name: "context.png", ContentType: "image/png", Content: "d29ybGQ="},
		}
		for field, img := range cases {
			assert.NotEqual(t, base.Key(), img.Key(), "expected key to differ by %s", field)
		}
	})
}

func TestImageStoreReplaceAll(t *testing.T) {
	store := archdocs.NewImageStore()

	store.ReplaceAll([]archdocs.Image{
		{Name: "a.png", ContentType: "image/png", Content: "YQ=="},
		{Name: "a.png", ContentType: "image/png", Content: "YQ=="},
		{Name: "b.gif", ContentType: "image/gif", Content: "Yg=="},
	})

	// Duplicates collapse under set semantics
	images := store.All()
	require.Len(t, images, 2)
	assert.Equal(t, "a.png", images[0].Name)
	assert.Equal(t, "b.gif", images[1].Name)

	t.Run("round trip is idempotent", func(t *testing.T) {
		before := store.All()
		store.ReplaceAll(before)
		assert.Equal(t, before, store.All())
	})
}
