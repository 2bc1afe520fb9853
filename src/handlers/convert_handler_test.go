package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/username/taxformfill/src/config"
	"github.com/username/taxformfill/src/filler"
	"github.com/username/taxformfill/src/forms"
	"github.com/username/taxformfill/src/services"
)

func init() {
	config.Cfg = &config.AppConfig{
		Port:               "8080",
		TaxYear:            2021,
		ValidateForms:      true,
		TemplatesDir:       "templates",
		MaxUploadSizeBytes: 10 * 1024 * 1024,
	}
}

func newTestHandler() *ConvertHandler {
	svc := services.NewConvertService(
		forms.NewDispatcher(forms.DefaultHandlers()...),
		filler.NewFDFFiller("templates"),
		cache.New(5*time.Minute, 10*time.Minute),
	)
	return NewConvertHandler(svc)
}

func testWorkbookBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "f8949"))
	rows := [][]any{
		{"Quantity", "Name", "Purchase Date", "Sell Date", "Purchase Price", "Sell Price"},
		{5, "ACME", "01/15/2021", "03/20/2021", 500, 650},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("f8949", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func multipartUpload(t *testing.T, fieldValues map[string]string, filename, contentType string, fileBytes []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(fileBytes)
	require.NoError(t, err)

	for k, v := range fieldValues {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleConvert(t *testing.T) {
	handler := newTestHandler()
	req := multipartUpload(t, nil, "book.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", testWorkbookBytes(t))
	rr := httptest.NewRecorder()

	handler.HandleConvert(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp conversionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, []string{"f8949_1"}, resp.FormIDs)
	assert.True(t, resp.Validation.IsValid)
	assert.Equal(t, "/api/convert/"+resp.ID+"/archive", resp.ArchivePath)
	assert.Contains(t, resp.FormsData, "f8949_1")
}

func TestHandleConvertRejectsBadContentType(t *testing.T) {
	handler := newTestHandler()
	req := multipartUpload(t, nil, "data.csv", "text/csv", []byte("a,b,c"))
	rr := httptest.NewRecorder()

	handler.HandleConvert(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleConvertRejectsBadMagicBytes(t *testing.T) {
	handler := newTestHandler()
	// Declared type is fine but the payload is not a zip container.
	req := multipartUpload(t, nil, "book.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []byte("plain text"))
	rr := httptest.NewRecorder()

	handler.HandleConvert(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleConvertMissingFile(t *testing.T) {
	handler := newTestHandler()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("year", "2021"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()

	handler.HandleConvert(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleGetResult(t *testing.T) {
	handler := newTestHandler()

	// Convert first so the result is cached.
	convertReq := multipartUpload(t, nil, "book.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", testWorkbookBytes(t))
	convertRR := httptest.NewRecorder()
	handler.HandleConvert(convertRR, convertReq)
	require.Equal(t, http.StatusOK, convertRR.Code)

	var resp conversionResponse
	require.NoError(t, json.Unmarshal(convertRR.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/api/convert/"+resp.ID, nil)
	req.SetPathValue("id", resp.ID)
	rr := httptest.NewRecorder()
	handler.HandleGetResult(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	etag := rr.Header().Get("ETag")
	assert.NotEmpty(t, etag)

	// A matching If-None-Match short-circuits with 304.
	cachedReq := httptest.NewRequest(http.MethodGet, "/api/convert/"+resp.ID, nil)
	cachedReq.SetPathValue("id", resp.ID)
	cachedReq.Header.Set("If-None-Match", etag)
	cachedRR := httptest.NewRecorder()
	handler.HandleGetResult(cachedRR, cachedReq)
	assert.Equal(t, http.StatusNotModified, cachedRR.Code)
}

func TestHandleGetResultNotFound(t *testing.T) {
	handler := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/convert/nope", nil)
	req.SetPathValue("id", "nope")
	rr := httptest.NewRecorder()

	handler.HandleGetResult(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleGetArchive(t *testing.T) {
	handler := newTestHandler()

	convertReq := multipartUpload(t, nil, "book.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", testWorkbookBytes(t))
	convertRR := httptest.NewRecorder()
	handler.HandleConvert(convertRR, convertReq)
	require.Equal(t, http.StatusOK, convertRR.Code)

	var resp conversionResponse
	require.NoError(t, json.Unmarshal(convertRR.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/api/convert/"+resp.ID+"/archive", nil)
	req.SetPathValue("id", resp.ID)
	rr := httptest.NewRecorder()
	handler.HandleGetArchive(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/zip", rr.Header().Get("Content-Type"))
	assert.NotEmpty(t, rr.Body.Bytes())

	missing := httptest.NewRequest(http.MethodGet, "/api/convert/nope/archive", nil)
	missing.SetPathValue("id", "nope")
	missingRR := httptest.NewRecorder()
	handler.HandleGetArchive(missingRR, missing)
	assert.Equal(t, http.StatusNotFound, missingRR.Code)
}

func TestOptionsFromRequest(t *testing.T) {
	handler := newTestHandler()

	req := multipartUpload(t, map[string]string{
		"year":          "2023",
		"validate":      "false",
		"skipEmptyRows": "true",
	}, "book.xlsx", "application/zip", testWorkbookBytes(t))
	require.NoError(t, req.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes))

	opts := handler.optionsFromRequest(req)
	assert.Equal(t, 2023, opts.Year)
	assert.False(t, opts.Validate)
	assert.True(t, opts.SkipEmptyRows)

	// Defaults come from config when the fields are absent or invalid.
	plain := multipartUpload(t, map[string]string{"year": "soon"}, "book.xlsx", "application/zip", testWorkbookBytes(t))
	require.NoError(t, plain.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes))
	opts = handler.optionsFromRequest(plain)
	assert.Equal(t, config.Cfg.TaxYear, opts.Year)
	assert.Equal(t, config.Cfg.ValidateForms, opts.Validate)
}
