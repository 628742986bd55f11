package web_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/staffdir/internal/web"
)

const indexHTML = `<!doctype html>
<html><head><title>Employee Directory</title></head>
<body><div id="root"></div><script src="/assets/app.js"></script></body></html>`

func bundle() fstest.MapFS {
	return fstest.MapFS{
		"index.html":    {Data: []byte(indexHTML)},
		"assets/app.js": {Data: []byte("console.log('app')")},
		"favicon.ico":   {Data: []byte{0, 0, 1, 0}},
	}
}

func get(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// parseHTML parses response body as HTML and returns goquery document
func parseHTML(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestSPA_ServesIndexAtRoot(t *testing.T) {
	rec := get(t, web.NewSPAHandlerFS(bundle()), http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseHTML(t, rec.Body.String())
	require.Equal(t, "Employee Directory", doc.Find("title").Text())
	require.Equal(t, 1, doc.Find("#root").Length())
}

func TestSPA_ServesAssets(t *testing.T) {
	rec := get(t, web.NewSPAHandlerFS(bundle()), http.MethodGet, "/assets/app.js")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "console.log('app')", rec.Body.String())
}

func TestSPA_ClientRoutesFallBackToIndex(t *testing.T) {
	h := web.NewSPAHandlerFS(bundle())

	for _, target := range []string{"/employees", "/employees/3", "/login", "/assets"} {
		rec := get(t, h, http.MethodGet, target)
		require.Equal(t, http.StatusOK, rec.Code, target)
		doc := parseHTML(t, rec.Body.String())
		require.Equal(t, 1, doc.Find("#root").Length(), target)
	}
}

func TestSPA_TraversalIsRejected(t *testing.T) {
	rec := get(t, web.NewSPAHandlerFS(bundle()), http.MethodGet, "/../../etc/passwd")

	require.GreaterOrEqual(t, rec.Code, http.StatusBadRequest)
	require.NotContains(t, rec.Body.String(), "root:")
}

func TestSPA_RejectsWrites(t *testing.T) {
	rec := get(t, web.NewSPAHandlerFS(bundle()), http.MethodPost, "/employees")

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestSPA_MissingIndexIsNotFound(t *testing.T) {
	rec := get(t, web.NewSPAHandlerFS(fstest.MapFS{}), http.MethodGet, "/anything")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSPA_ServesFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(indexHTML), 0o644))

	rec := get(t, web.NewSPAHandler(dir), http.MethodGet, "/settings")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Employee Directory")
}
