// Package pipeline runs a single document-conversion request end to end:
// locate formulas and images, resolve them concurrently, extract text,
// parse questions and sections, and assemble the result payload.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/examgest/internal/docx"
	"github.com/dgallion1/examgest/internal/exam"
	"github.com/dgallion1/examgest/internal/mathtool"
	"github.com/dgallion1/examgest/internal/parse"
)

// DefaultMathConcurrency bounds simultaneous external translator spawns.
const DefaultMathConcurrency = 3

// Converter turns uploaded DOCX payloads into structured exam results.
// It holds only configuration and capabilities; all per-request state
// (cache, limiter counters, asset map) is created inside Convert, so
// requests cannot interfere with each other.
type Converter struct {
	translator  mathtool.Translator
	rasterizer  mathtool.Rasterizer
	log         *slog.Logger
	concurrency int
}

func NewConverter(tr mathtool.Translator, ra mathtool.Rasterizer, log *slog.Logger, concurrency int) *Converter {
	if concurrency <= 0 {
		concurrency = DefaultMathConcurrency
	}
	return &Converter{
		translator:  tr,
		rasterizer:  ra,
		log:         log,
		concurrency: concurrency,
	}
}

// Convert runs the full pipeline. It returns an error only for fatal
// conditions (unreadable container, missing required entries); every
// per-formula and per-image failure degrades inside the result instead.
func (c *Converter) Convert(ctx context.Context, data []byte) (*exam.Result, error) {
	pkg, err := docx.Open(data)
	if err != nil {
		return nil, err
	}

	relsData, _ := pkg.Get(docx.RelsEntry) // presence checked by Open
	rels, err := docx.ParseRelationships(relsData)
	if err != nil {
		return nil, fmt.Errorf("relationship manifest: %w", err)
	}

	docData, ok := pkg.Get(docx.DocumentEntry)
	if !ok {
		return nil, &docx.MissingEntryError{Entry: docx.DocumentEntry}
	}

	// Single-threaded scan phase: placeholder keys are assigned here, in
	// document order, before any concurrent resolution starts.
	markup, formulas := docx.LocateFormulas(string(docData), rels)
	markup, images := docx.LocateImages(markup, rels)

	assets := newAssetMap()
	latex := c.resolveFormulas(ctx, pkg, rels, formulas, assets)
	c.resolveImages(ctx, pkg, rels, images, assets)

	text := docx.ExtractText(markup)
	questions, sections := parse.Parse(text)
	blocks := parse.Assemble(sections, questions)

	res := &exam.Result{
		Total:     len(questions),
		Sections:  sections,
		Blocks:    blocks,
		Questions: questions,
		MCQ:       []exam.Question{},
		Latex:     latex,
		Images:    assets.snapshot(),
		Text:      text,
		Debug:     exam.Debug{Concurrency: c.concurrency},
	}
	for _, q := range questions {
		switch q.Type {
		case exam.TypeMCQ:
			res.Debug.MCQCount++
			res.MCQ = append(res.MCQ, q)
		case exam.TypeTrueFalse:
			res.Debug.TrueFalseCount++
		case exam.TypeShortAnswer:
			res.Debug.ShortAnswerCount++
		}
	}
	return res, nil
}
