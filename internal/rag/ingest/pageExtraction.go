package ingest

import (
	"errors"
	"fmt"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

// ErrExtraction marks a document that could not be read. Extraction failures
// are isolated per document: the caller skips the file and keeps going.
var ErrExtraction = errors.New("document extraction failed")

func extractPDF(path string) ([]rawSection, error) {
	logger.Debug("extractPDF", "attempting extraction", path)
	f, err := pdf.Open(path)
	if err != nil {
		logger.Error("failed opening of pdf file", "path", path)
		return nil, fmt.Errorf("%w: open pdf %s: %v", ErrExtraction, path, err)
	}

	var sections []rawSection
	numPages := f.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// Log warning but continue with other pages
			logger.Error("Error parsing page content", "page", i, "Error", err)
			continue
		}

		sections = append(sections, rawSection{
			Number:  i,
			Content: content,
		})
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no readable pages in %s", ErrExtraction, path)
	}
	return sections, nil
}

// extractDocxTxtRtf reads a .odt, .docx, .rtf or plaintext file. The whole
// document lands in one section since these formats carry no page boundaries.
func extractDocxTxtRtf(path string) ([]rawSection, error) {

	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from doc", "path", path)
		return nil, fmt.Errorf("%w: %s: %v", ErrExtraction, path, err)
	}

	return []rawSection{
		{
			Number:  1,
			Content: text,
		},
	}, nil
}

func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		logger.Error("pageExtract", "timeout")
		return "", errors.New("timeout")
	}
}
