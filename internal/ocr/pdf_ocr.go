package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Maariakh-cs/medex/constants"
)

var rePageNum = regexp.MustCompile(`-(\d+)\.png$`)

// ExtractPDF rasterizes every page and OCRs each one. Per-page text is
// joined with a double newline so line-anchored matchers do not bleed
// across page boundaries. Any page failure fails the whole extraction;
// partial text is never returned.
func (e *Extractor) ExtractPDF(ctx context.Context, data []byte) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.PDF}

	path, cleanup, err := writeTemp(data, "medex-pdf-*")
	if err != nil {
		return res, acquisitionError("persist pdf", err)
	}
	defer cleanup()

	tmpDir, err := os.MkdirTemp("", "medex-pp-*")
	if err != nil {
		return res, acquisitionError("create raster dir", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			e.logger.Warn("failed to remove raster dir", "dir", tmpDir, "error", rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", strconv.Itoa(e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		res.Warnings = append(res.Warnings, string(errb))
		return res, acquisitionError("rasterize pdf", err)
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...) in page order
	matches, _ := filepath.Glob(prefix + "-*.png")
	sortByPageNumber(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return res, acquisitionError("rasterize pdf", fmt.Errorf("no pages rendered"))
	}

	pageTexts := make([]string, len(matches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.PageWorkers)
	for i, img := range matches {
		i, img := i, img
		g.Go(func() error {
			txt, _, err := e.tesseractOCR(gctx, img)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			pageTexts[i] = joinFragments(txt)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	text := strings.Join(pageTexts, "\n\n")
	return ExtractionResult{
		Text:       text,
		Pages:      len(matches),
		SourceType: constants.PDF,
		Method:     "pdf-ocr",
		Language:   e.cfg.TesseractLang,
		Confidence: heuristicConfidence(text),
	}, nil
}

// sortByPageNumber orders rendered page files numerically so page-10
// does not sort before page-2.
func sortByPageNumber(paths []string) {
	pageNo := func(p string) int {
		m := rePageNum.FindStringSubmatch(p)
		if m == nil {
			return 0
		}
		n, _ := strconv.Atoi(m[1])
		return n
	}
	sort.Slice(paths, func(i, j int) bool { return pageNo(paths[i]) < pageNo(paths[j]) })
}
