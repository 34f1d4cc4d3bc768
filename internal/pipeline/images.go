package pipeline

import (
	"context"
	"encoding/base64"
	"path"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/examgest/internal/docx"
)

// resolveImages reads every located image payload into the asset map as a
// data URI, rasterizing the two legacy vector formats. Plain images are
// light, so resolution runs unbounded. A failed image is simply omitted
// from the map.
func (c *Converter) resolveImages(ctx context.Context, pkg *docx.Package, rels map[string]string, images []*docx.Image, assets *assetMap) {
	g, ctx := errgroup.WithContext(ctx)
	for _, img := range images {
		img := img
		g.Go(func() error {
			target, ok := rels[img.Ref]
			if !ok {
				return nil
			}
			entry := docx.ResolveTarget(target)
			payload, ok := pkg.Get(entry)
			if !ok {
				c.log.Warn("image payload unreadable", "key", img.Key, "target", target)
				return nil
			}

			mime, vector := mimeForPath(entry)
			if vector {
				png, err := c.rasterizer.Rasterize(ctx, payload, extForPath(entry))
				if err != nil {
					c.log.Warn("image rasterization failed", "key", img.Key, "error", err)
					return nil
				}
				payload, mime = png, "image/png"
			}
			assets.put(img.Key, dataURI(mime, payload))
			return nil
		})
	}
	_ = g.Wait()
}

// assetMap is the request-scoped image store, shared by the bounded
// formula workers and the unbounded image workers.
type assetMap struct {
	mu sync.Mutex
	m  map[string]string
}

func newAssetMap() *assetMap {
	return &assetMap{m: make(map[string]string)}
}

func (a *assetMap) put(key, uri string) {
	a.mu.Lock()
	a.m[key] = uri
	a.mu.Unlock()
}

func (a *assetMap) snapshot() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]string, len(a.m))
	for k, v := range a.m {
		out[k] = v
	}
	return out
}

func dataURI(mime string, payload []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

var mimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".wmf":  "image/x-wmf",
	".emf":  "image/x-emf",
}

// mimeForPath reports an entry's mime type and whether it is one of the
// two legacy vector formats that must be rasterized before storage.
func mimeForPath(entry string) (string, bool) {
	ext := extForPath(entry)
	mime, ok := mimeTypes[ext]
	if !ok {
		mime = "application/octet-stream"
	}
	return mime, ext == ".wmf" || ext == ".emf"
}

func extForPath(entry string) string {
	return strings.ToLower(path.Ext(entry))
}
