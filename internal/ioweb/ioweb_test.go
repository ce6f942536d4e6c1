package ioweb_test

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aire-program/aire-impact-dashboard/internal/ioref"
	"github.com/aire-program/aire-impact-dashboard/internal/ioweb"
	"github.com/aire-program/aire-impact-dashboard/pkg/config"
	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/aire-program/aire-impact-dashboard/pkg/source"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionID = "6f1c4c1e-2b1a-4f7e-9d3b-0c5a7e1f2a90"

func newServer(t *testing.T) *ioweb.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.New()
	ref := source.NewReferenceCache(ioref.NewLoader())
	return ioweb.New(cfg.Server, ref)
}

func do(s *ioweb.Server, req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set(ioweb.SessionHeader, sessionID)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// bundle builds a multipart upload from the reference tables, replacing
// files named in override.
func bundle(t *testing.T, skip string, override map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, tn := range dataset.TableNames() {
		name := tn.FileName()
		if name == skip {
			continue
		}
		data, err := fs.ReadFile(ioref.FS(), name)
		require.NoError(t, err)
		if v, ok := override[name]; ok {
			data = []byte(v)
		}
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func upload(t *testing.T, s *ioweb.Server, skip string, override map[string]string) *httptest.ResponseRecorder {
	body, ct := bundle(t, skip, override)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	return do(s, req)
}

func status(t *testing.T, rec *httptest.ResponseRecorder) source.Status {
	t.Helper()
	var res source.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestHealthCheck(t *testing.T) {
	s := newServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSessionMinted(t *testing.T) {
	assert := assert.New(t)
	s := newServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/source", nil))
	assert.Equal(http.StatusOK, rec.Code)
	id := rec.Header().Get(ioweb.SessionHeader)
	assert.Len(id, 36)
	assert.Equal(id, status(t, rec).ID)
	assert.Equal(1, s.Registry().Len())

	req := httptest.NewRequest(http.MethodGet, "/api/source", nil)
	req.AddCookie(&http.Cookie{Name: ioweb.SessionCookie, Value: id})
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(id, rec.Header().Get(ioweb.SessionHeader))
	assert.Equal(1, s.Registry().Len())
}

func TestDashboard(t *testing.T) {
	assert := assert.New(t)
	s := newServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Source source.Status `json:"source"`
		Report struct {
			Overview struct {
				TotalAttendance int `json:"total_attendance"`
			} `json:"overview"`
		} `json:"report"`
		Tables       []string `json:"tables"`
		FocusOptions []string `json:"focus_options"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal("reference", res.Source.State)
	assert.Greater(res.Report.Overview.TotalAttendance, 0)
	assert.Contains(res.Tables, "overview_readiness")
	assert.Len(res.FocusOptions, 8)

	url := "/api/dashboard?departments=D01,D02&roles=faculty"
	rec = do(s, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal([]string{"D01", "D02"}, res.FocusOptions)

	url = "/api/dashboard?from=2024-06-01&to=2024-01-01"
	rec = do(s, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(http.StatusBadRequest, rec.Code)
	assert.Contains(rec.Body.String(), "invalid_selection")
}

func TestTableCSV(t *testing.T) {
	assert := assert.New(t)
	s := newServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/tables/reflections_themes.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(rec.Header().Get("Content-Type"), "text/csv")
	assert.True(strings.HasPrefix(rec.Body.String(), "theme,count\n"))

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/tables/nope", nil))
	assert.Equal(http.StatusNotFound, rec.Code)
}

func TestFocus(t *testing.T) {
	assert := assert.New(t)
	s := newServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/focus/D01", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), `"department_id":"D01"`)

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/focus/D01?departments=D02", nil))
	assert.Equal(http.StatusNotFound, rec.Code)

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/focus/D99", nil))
	assert.Equal(http.StatusNotFound, rec.Code)
}

func TestUploadFlow(t *testing.T) {
	assert := assert.New(t)
	s := newServer(t)

	rec := upload(t, s, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := status(t, rec)
	assert.Equal("uploaded", st.State)
	assert.True(st.HasUpload)
	assert.NotEmpty(st.DatasetID)

	req := httptest.NewRequest(http.MethodPut, "/api/source", strings.NewReader(`{"source":"reference"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = do(s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	st = status(t, rec)
	assert.Equal("reference", st.State)
	assert.True(st.HasUpload)

	rec = do(s, httptest.NewRequest(http.MethodDelete, "/api/upload", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(status(t, rec).HasUpload)

	req = httptest.NewRequest(http.MethodPut, "/api/source", strings.NewReader(`{"source":"uploaded"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = do(s, req)
	assert.Equal(http.StatusConflict, rec.Code)
}

func TestUploadFailures(t *testing.T) {
	tests := []struct {
		msg      string
		skip     string
		override map[string]string
		code     string
	}{
		{"missing file", "reflections.csv", nil, "missing_input"},
		{
			"bad value", "",
			map[string]string{"departments.csv": "department_id,department_name,division," +
				"baseline_readiness_score,current_readiness_score,training_coverage_rate\n" +
				"D01,Biology,Sciences,0.36,1.59,0.67\n"},
			"validation_failed",
		},
		{
			"missing column", "",
			map[string]string{"departments.csv": "department_id,department_name\nD01,Biology\n"},
			"validation_failed",
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert := assert.New(t)
			s := newServer(t)
			rec := upload(t, s, v.skip, v.override)
			assert.Equal(http.StatusUnprocessableEntity, rec.Code)

			var env ioweb.ErrorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(v.code, env.Error.Code)
			if v.code == "validation_failed" {
				assert.NotEmpty(env.Error.Issues)
			}

			rec = do(s, httptest.NewRequest(http.MethodGet, "/api/source", nil))
			st := status(t, rec)
			assert.Equal("reference", st.State)
			assert.False(st.HasUpload)
			assert.Contains(st.Message, "Validation failed")
		})
	}
}

func TestIdleSessionExpires(t *testing.T) {
	assert := assert.New(t)
	s := newServer(t)
	ttl := s.Registry().TTL()
	assert.Equal(30*time.Minute, ttl)

	rec := upload(t, s, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(status(t, rec).HasUpload)

	assert.Equal(0, s.Registry().Sweep(time.Now().Add(ttl/2)))
	assert.Equal(1, s.Registry().Len())

	assert.Equal(1, s.Registry().Sweep(time.Now().Add(ttl+time.Minute)))
	assert.Equal(0, s.Registry().Len())

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/source", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	st := status(t, rec)
	assert.Equal(sessionID, st.ID)
	assert.Equal("reference", st.State)
	assert.False(st.HasUpload)
}

func TestRegistrySweep(t *testing.T) {
	assert := assert.New(t)
	ref := source.NewReferenceCache(ioref.NewLoader())
	r := ioweb.NewRegistry(ref, time.Minute)

	for range 500 {
		r.Get(uuid.NewString())
	}
	active := r.Get(sessionID)
	assert.Equal(501, r.Len())

	assert.Equal(0, r.Sweep(time.Now()))
	assert.Equal(501, r.Sweep(time.Now().Add(2*time.Minute)))
	assert.Equal(0, r.Len())

	// a fresh session replaces the expired one
	assert.NotSame(active, r.Get(sessionID))
	assert.Equal(1, r.Len())
}

func TestRegistryDefaultTTL(t *testing.T) {
	ref := source.NewReferenceCache(ioref.NewLoader())
	r := ioweb.NewRegistry(ref, 0)
	assert.Equal(t, 30*time.Minute, r.TTL())
}
