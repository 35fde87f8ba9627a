package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
)

const docxDocumentPath = "word/document.xml"

var (
	// docxParagraph matches one <w:p> element, attributes included.
	docxParagraph = regexp.MustCompile(`(?s)<w:p[ >].*?</w:p>`)
	// docxText matches <w:t> runs, including xml:space="preserve".
	docxText = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
)

// extractDOCX reads word/document.xml from the archive and joins the text
// runs of each paragraph, one paragraph per line.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open DOCX: not a zip: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != docxDocumentPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open DOCX %s: %w", f.Name, err)
		}
		docXML, err = io.ReadAll(io.LimitReader(rc, MaxDocumentBytes))
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("read DOCX %s: %w", f.Name, err)
		}
		break
	}
	if docXML == nil {
		return "", fmt.Errorf("open DOCX: %s not found", docxDocumentPath)
	}

	var lines []string
	for _, para := range docxParagraph.FindAllString(string(docXML), -1) {
		var sb strings.Builder
		for _, run := range docxText.FindAllStringSubmatch(para, -1) {
			sb.WriteString(html.UnescapeString(run[1]))
		}
		lines = append(lines, sb.String())
	}
	return cleanWhitespace(strings.Join(lines, "\n")), nil
}
