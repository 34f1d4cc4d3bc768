package pipeline

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dgallion1/examgest/internal/docx"
	"github.com/dgallion1/examgest/internal/mathml"
	"github.com/dgallion1/examgest/internal/mathtool"
)

// mathResolver carries the per-request state of formula resolution: the
// content-hash cache and its singleflight guard. Both live exactly as
// long as the request.
type mathResolver struct {
	pkg        *docx.Package
	rels       map[string]string
	translator mathtool.Translator
	rasterizer mathtool.Rasterizer
	assets     *assetMap
	log        *slog.Logger

	mu    sync.Mutex
	cache map[string]string // content hash -> LaTeX
	group singleflight.Group
}

// resolveFormulas resolves every located formula under the FIFO admission
// limiter and returns the key->LaTeX map. The map always contains one
// entry per key; an empty string means the formula is unavailable.
func (c *Converter) resolveFormulas(ctx context.Context, pkg *docx.Package, rels map[string]string, formulas []*docx.Formula, assets *assetMap) map[string]string {
	r := &mathResolver{
		pkg:        pkg,
		rels:       rels,
		translator: c.translator,
		rasterizer: c.rasterizer,
		assets:     assets,
		log:        c.log,
		cache:      make(map[string]string),
	}

	results := make(map[string]string, len(formulas))
	var mu sync.Mutex
	var wg sync.WaitGroup

	// FIFO admission: slots are acquired here, in document order, and a
	// queued formula is admitted each time an in-flight one releases its
	// slot. Completion order is irrelevant; substitution is by key.
	sem := make(chan struct{}, c.concurrency)
	for _, f := range formulas {
		sem <- struct{}{}
		wg.Add(1)
		go func(f *docx.Formula) {
			defer wg.Done()
			defer func() { <-sem }()
			latex := r.resolve(ctx, f)
			mu.Lock()
			results[f.Key] = latex
			mu.Unlock()
		}(f)
	}
	wg.Wait()
	return results
}

// resolve produces the LaTeX for one formula, falling back to its preview
// image and finally to the empty string. It never fails the request.
func (r *mathResolver) resolve(ctx context.Context, f *docx.Formula) string {
	target, ok := r.rels[f.BinaryRef]
	if !ok {
		return ""
	}
	payload, ok := r.pkg.Get(docx.ResolveTarget(target))
	if !ok {
		r.log.Warn("equation payload unreadable", "key", f.Key, "target", target)
		r.fallbackImage(ctx, f)
		return ""
	}
	f.ContentHash = fmt.Sprintf("%x", sha256.Sum256(payload))

	// Byte-identical formulas are common (repeated answer choices), so
	// each content hash is converted at most once per request.
	v, _, _ := r.group.Do(f.ContentHash, func() (any, error) {
		r.mu.Lock()
		cached, ok := r.cache[f.ContentHash]
		r.mu.Unlock()
		if ok {
			return cached, nil
		}
		latex := r.convert(ctx, payload)
		r.mu.Lock()
		r.cache[f.ContentHash] = latex
		r.mu.Unlock()
		return latex, nil
	})
	latex := v.(string)

	if latex == "" {
		r.fallbackImage(ctx, f)
	}
	return latex
}

// convert obtains semantic math markup for the payload and converts it to
// LaTeX. Every failure path returns the empty string.
func (r *mathResolver) convert(ctx context.Context, payload []byte) string {
	markup := extractMarkup(payload)
	if markup == "" {
		out, err := r.translator.Translate(ctx, payload)
		if err != nil {
			r.log.Warn("equation translation failed", "error", err)
		} else if m := sliceMathML(out); m != "" {
			markup = m
		} else {
			// Diagnostic chatter on stdout is not markup.
			r.log.Warn("translator output contained no math markup")
		}
	}
	if markup == "" {
		return ""
	}

	markup = mathml.Normalize(markup)
	latex := mathml.ConvertMarkup(markup)
	return mathml.Postprocess(latex, markup)
}

// fallbackImage resolves the formula's preview image into the asset map
// under fallback_<key>. Failures degrade to no asset at all.
func (r *mathResolver) fallbackImage(ctx context.Context, f *docx.Formula) {
	if f.PreviewRef == "" {
		return
	}
	target, ok := r.rels[f.PreviewRef]
	if !ok {
		return
	}
	entry := docx.ResolveTarget(target)
	payload, ok := r.pkg.Get(entry)
	if !ok {
		return
	}

	mime, vector := mimeForPath(entry)
	if vector {
		png, err := r.rasterizer.Rasterize(ctx, payload, extForPath(entry))
		if err != nil {
			r.log.Warn("preview rasterization failed", "key", f.Key, "error", err)
			return
		}
		payload, mime = png, "image/png"
	}
	r.assets.put("fallback_"+f.Key, dataURI(mime, payload))
}
