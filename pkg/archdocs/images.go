package archdocs

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// imageContentTypes maps the accepted file extensions to their content
// types. Extensions are matched case-insensitively; everything else in an
// ingested directory is ignored.
var imageContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

// ImageStore holds the workspace's binary image assets as a set: images are
// deduplicated over name, content type and payload.
type ImageStore struct {
	mu     sync.RWMutex
	images map[string]Image
}

// NewImageStore creates an empty image store
func NewImageStore() *ImageStore {
	return &ImageStore{
		images: make(map[string]Image),
	}
}

// IngestDirectory imports the png/jpg/jpeg/gif files in the given directory.
// A missing, empty or non-directory path is a no-op. Each matching file is
// decoded and re-encoded through the codec implied by its extension, so a
// corrupt file with a matching extension fails the call with a decode error.
// Ingestion is atomic: nothing is inserted unless every matching file in the
// directory decodes cleanly. It returns the number of images inserted.
func (st *ImageStore) IngestDirectory(dir string) (int, error) {
	if dir == "" {
		return 0, nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return 0, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, &ImageError{Name: dir, Op: "ingest", Err: err}
	}

	var staged []Image
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		contentType, ok := imageContentTypes[ext]
		if !ok {
			continue
		}
		if detected := mime.TypeByExtension(ext); detected != "" {
			contentType = detected
		}

		img, err := reencodeImage(filepath.Join(dir, entry.Name()), contentType)
		if err != nil {
			return 0, &ImageError{Name: entry.Name(), Op: "ingest", Err: err}
		}
		staged = append(staged, img)
	}

	st.mu.Lock()
	for _, img := range staged {
		st.images[img.Key()] = img
	}
	st.mu.Unlock()

	return len(staged), nil
}

// reencodeImage decodes the file at path and re-encodes its pixel data into
// the format implied by contentType, returning the base64-encoded result.
func reencodeImage(path, contentType string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return Image{}, fmt.Errorf("decode: %w", err)
	}

	var buf bytes.Buffer
	switch contentType {
	case "image/png":
		err = png.Encode(&buf, src)
	case "image/jpeg":
		err = jpeg.Encode(&buf, src, nil)
	case "image/gif":
		err = gif.Encode(&buf, src, nil)
	default:
		err = fmt.Errorf("unsupported content type %q", contentType)
	}
	if err != nil {
		return Image{}, fmt.Errorf("encode: %w", err)
	}

	return Image{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Content:     base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// All returns a copy of the stored images ordered by name. Mutating the
// returned slice does not affect the store.
func (st *ImageStore) All() []Image {
	st.mu.RLock()
	defer st.mu.RUnlock()

	result := make([]Image, 0, len(st.images))
	for _, img := range st.images {
		result = append(result, img)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].Key() < result[j].Key()
	})

	return result
}

// Len returns the number of stored images
func (st *ImageStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.images)
}

// ReplaceAll replaces the store contents with the given images. Restore path
// for persisted state; duplicates collapse under set semantics.
func (st *ImageStore) ReplaceAll(images []Image) {
	next := make(map[string]Image, len(images))
	for _, img := range images {
		next[img.Key()] = img
	}

	st.mu.Lock()
	st.images = next
	st.mu.Unlock()
}
