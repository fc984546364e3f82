package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scom-repos/scom-scatter-chart-sub000/datasource"
	"github.com/scom-repos/scom-scatter-chart-sub000/services"
	"github.com/scom-repos/scom-scatter-chart-sub000/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaoapp/kun/log"
)

const priceData = `{
	"dataSource": "inline",
	"title": "Prices",
	"rows": [{"t": "2024-01-01", "price": 100}, {"t": "2024-01-02", "price": 110}],
	"options": {"xColumn": {"key": "t", "type": "time"}, "yColumns": ["price"]}
}`

type cannedLLM string

func (c cannedLLM) Generate(context.Context, string, services.Params) (string, error) {
	return string(c), nil
}

func newTestServer(llm services.LLM) http.Handler {
	return NewServer(nil, llm).Handler([]string{"*"})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodGet, "/register", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var reg widget.Registration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	assert.Equal(t, "entity_category", reg.DefaultData.Options.GroupBy)
	assert.NotEmpty(t, reg.Types)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodPost, "/register", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestFormSchema(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodPost, "/form-schema", `{"columns":["day","value"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"builderSchema"`)
	assert.Contains(t, rec.Body.String(), `"embededSchema"`)
	assert.Contains(t, rec.Body.String(), `["day","value"]`)
}

func TestChart(t *testing.T) {
	h := newTestServer(nil)
	rec := do(t, h, http.MethodPost, "/chart", priceData)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		ChartData struct {
			Series []struct {
				Name string          `json:"name"`
				Data [][]interface{} `json:"data"`
			} `json:"series"`
		} `json:"chartData"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.ChartData.Series, 1)
	assert.Equal(t, "price", out.ChartData.Series[0].Name)
	assert.Len(t, out.ChartData.Series[0].Data, 2)
	assert.Contains(t, rec.Body.String(), `"defaulBuildertData"`)
}

func TestChartErrors(t *testing.T) {
	h := newTestServer(nil)

	rec := do(t, h, http.MethodPost, "/chart", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")

	rec = do(t, h, http.MethodPost, "/chart", `{"options":{"xColumn":{"key":"t","type":"time"},"yColumns":[]}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/chart", `{"dataSource":"postgres","query":"SELECT 1","options":{"xColumn":{"key":"t","type":"time"},"yColumns":["v"]}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func fileData(path string) string {
	file, _ := json.Marshal(path)
	return `{"dataSource":"csv","file":` + string(file) + `,"options":{"xColumn":{"key":"key","type":"category"},"yColumns":["value"]}}`
}

func TestChartFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prices.csv"), []byte("key,value\nlido,32\n"), 0644))
	secret := filepath.Join(t.TempDir(), "secret.csv")
	require.NoError(t, os.WriteFile(secret, []byte("key,value\nDB_PASSWORD,hunter2\n"), 0644))

	// files are off unless a data directory is configured
	rec := do(t, newTestServer(nil), http.MethodPost, "/chart", fileData(secret))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")

	h := NewServer(datasource.Factory{DataDir: dir}, nil).Handler([]string{"*"})
	rec = do(t, h, http.MethodPost, "/chart", fileData("prices.csv"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "32")

	for _, path := range []string{secret, "../" + filepath.Base(secret), filepath.Join(dir, "prices.csv")} {
		for _, route := range []string{"/chart", "/render"} {
			rec = do(t, h, http.MethodPost, route, fileData(path))
			assert.Equal(t, http.StatusBadRequest, rec.Code, route+" "+path)
			assert.NotContains(t, rec.Body.String(), "hunter2")
		}
	}
}

type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestRenderWriteError(t *testing.T) {
	var out bytes.Buffer
	log.SetOutput(&out)
	defer log.SetOutput(os.Stderr)

	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(priceData))
	NewServer(nil, nil).handleRender(brokenWriter{httptest.NewRecorder()}, req)
	assert.Contains(t, out.String(), "failed to write page: connection reset")
}

func TestRender(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodPost, "/render", priceData)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Prices")
}

func TestSuggest(t *testing.T) {
	rec := do(t, newTestServer(nil), http.MethodPost, "/suggest", `{"columns":["t","v"]}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	h := newTestServer(cannedLLM(`{"title":"V","xColumn":{"key":"t","type":"time"},"yColumns":["v"]}`))
	rec = do(t, h, http.MethodPost, "/suggest", `{"rows":[{"t":"2024-01-01","v":1}],"prompt":"v over time"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"yColumns":["v"]`)

	rec = do(t, h, http.MethodPost, "/suggest", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWidgetLifecycle(t *testing.T) {
	h := newTestServer(nil)

	rec := do(t, h, http.MethodPost, "/widgets", priceData)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created WidgetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	path := "/widgets/" + created.ID

	rec = do(t, h, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Prices"`)

	rec = do(t, h, http.MethodGet, path+"/chart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"price"`)

	updated := strings.Replace(priceData, `"Prices"`, `"Prices v2"`, 1)
	rec = do(t, h, http.MethodPut, path, updated)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, path, "")
	assert.Contains(t, rec.Body.String(), `"title":"Prices v2"`)

	rec = do(t, h, http.MethodPut, path, `{"options":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodGet, path+"/chart", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodPatch, path, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	wg, err := widget.New(widget.DefaultData(), widget.WithID("a"))
	require.NoError(t, err)
	r.Add(wg)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get("a")
	require.NoError(t, err)
	assert.Same(t, wg, got)

	assert.NoError(t, r.Remove("a"))
	assert.ErrorIs(t, r.Remove("a"), ErrNotFound)
	_, err = r.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}
