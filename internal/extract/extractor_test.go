package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes_Plain(t *testing.T) {
	got, err := Bytes([]byte("Senior Go engineer\nRemote"), ".txt")
	require.NoError(t, err)
	assert.Equal(t, "Senior Go engineer\nRemote", got)
}

func TestBytes_PlainInvalidUTF8(t *testing.T) {
	got, err := Bytes([]byte("caf\x80e"), "")
	require.NoError(t, err)
	assert.Equal(t, "caf�e", got)
}

func TestBytes_HTMLUsesJobDescription(t *testing.T) {
	page := `<html><head><style>.x{}</style></head><body>
<nav>Home Jobs Login</nav>
<div class="job-description">
  <h2>Platform Engineer</h2>
  <ul><li>Go</li><li>Kubernetes</li></ul>
  <script>track()</script>
</div>
<footer>Copyright</footer>
</body></html>`

	got, err := Bytes([]byte(page), ".HTML")
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer\nGo\nKubernetes", got)
}

func TestBytes_HTMLFallsBackToBody(t *testing.T) {
	page := `<html><body><header>Brand</header><p>Build APIs.</p><p>Ship often.</p></body></html>`

	got, err := Bytes([]byte(page), ".htm")
	require.NoError(t, err)
	assert.Equal(t, "Build APIs.\nShip often.", got)
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(docxDocumentPath)
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestBytes_DOCX(t *testing.T) {
	doc := buildDOCX(t, `<?xml version="1.0"?>
<w:document><w:body>
<w:p w:rsidR="00A1"><w:r><w:t>Built </w:t></w:r><w:r><w:t xml:space="preserve">Go &amp; gRPC services</w:t></w:r></w:p>
<w:p><w:r><w:t>Led on-call</w:t></w:r></w:p>
<w:p></w:p>
</w:body></w:document>`)

	got, err := Bytes(doc, ".docx")
	require.NoError(t, err)
	assert.Equal(t, "Built Go & gRPC services\nLed on-call", got)
}

func TestBytes_DOCXNotZip(t *testing.T) {
	_, err := Bytes([]byte("plain text"), ".docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a zip")
}

func TestBytes_DOCXMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Bytes(buf.Bytes(), ".docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestBytes_PDFInvalid(t *testing.T) {
	_, err := Bytes([]byte("not a pdf"), ".pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open PDF")
}

func TestBytes_Unsupported(t *testing.T) {
	_, err := Bytes([]byte("x"), ".xlsx")
	require.Error(t, err)

	var unsupported *UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, ".xlsx", unsupported.Ext)
}

func TestReader_TooLarge(t *testing.T) {
	big := strings.NewReader(strings.Repeat("a", MaxDocumentBytes+1))

	_, err := Reader(big, ".txt")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestReader_Plain(t *testing.T) {
	got, err := Reader(strings.NewReader("hello"), ".md")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("Python and Docker"), 0644))

	got, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, "Python and Docker", got)
}

func TestFile_Missing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestSupportedExtensions(t *testing.T) {
	for _, ext := range SupportedExtensions() {
		_, err := Bytes([]byte{}, ext)
		var unsupported *UnsupportedFormatError
		assert.False(t, errors.As(err, &unsupported), ext)
	}
}
