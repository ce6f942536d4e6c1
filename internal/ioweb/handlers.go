package ioweb

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aire-program/aire-impact-dashboard/internal/iocsv"
	aire "github.com/aire-program/aire-impact-dashboard/pkg"
	"github.com/aire-program/aire-impact-dashboard/pkg/dashboard"
	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/aire-program/aire-impact-dashboard/pkg/source"
	"github.com/gin-gonic/gin"
)

// DashboardResponse is the body of GET /api/dashboard.
type DashboardResponse struct {
	Source       source.Status     `json:"source"`
	Report       *dashboard.Report `json:"report"`
	Tables       []string          `json:"tables"`
	FocusOptions []string          `json:"focus_options"`
}

func (s *Server) healthCheck(c *gin.Context) {
	RespondOK(c, gin.H{
		"status":  "ok",
		"version": aire.Version,
	})
}

func (s *Server) getSource(c *gin.Context) {
	RespondOK(c, session(c).Status())
}

type sourceRequest struct {
	Source string `json:"source" binding:"required"`
}

func (s *Server) putSource(c *gin.Context) {
	var req sourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	st, ok := source.ParseState(req.Source)
	if !ok {
		err := fmt.Errorf("unknown source %q", req.Source)
		RespondError(c, http.StatusBadRequest, "invalid_source", err)
		return
	}
	sess := session(c)
	if err := sess.Select(st); err != nil {
		RespondError(c, http.StatusConflict, "no_upload", err)
		return
	}
	RespondOK(c, sess.Status())
}

// upload reads a multipart bundle. Files are matched to tables by their
// base name, for example departments.csv.
func (s *Server) upload(c *gin.Context) {
	sess := session(c)
	limit := int64(s.cfg.MaxUploadMB) << 20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	form, err := c.MultipartForm()
	if err != nil {
		sess.Fail(err)
		RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return
	}

	files := make(map[string]io.Reader)
	for _, fhs := range form.File {
		for _, fh := range fhs {
			f, err := fh.Open()
			if err != nil {
				sess.Fail(err)
				RespondError(c, http.StatusBadRequest, "invalid_upload", err)
				return
			}
			defer f.Close()
			files[strings.ToLower(filepath.Base(fh.Filename))] = f
		}
	}

	raw, err := iocsv.ReadBundle(files)
	if err != nil {
		sess.Fail(err)
		respondDataError(c, err)
		return
	}
	if err = sess.Upload(raw); err != nil {
		respondDataError(c, err)
		return
	}
	RespondOK(c, sess.Status())
}

func respondDataError(c *gin.Context, err error) {
	code := "validation_failed"
	if dataset.IsMissingInput(err) {
		code = "missing_input"
	}
	RespondIssues(c, http.StatusUnprocessableEntity, code, err, dataset.Issues(err))
}

func (s *Server) discard(c *gin.Context) {
	sess := session(c)
	sess.Discard()
	RespondOK(c, sess.Status())
}

func (s *Server) dashboard(c *gin.Context) {
	rep, ok := s.report(c)
	if !ok {
		return
	}
	RespondOK(c, DashboardResponse{
		Source:       session(c).Status(),
		Report:       rep,
		Tables:       rep.TableNames(),
		FocusOptions: rep.FocusOptions(),
	})
}

func (s *Server) tableCSV(c *gin.Context) {
	rep, ok := s.report(c)
	if !ok {
		return
	}
	name := strings.TrimSuffix(c.Param("name"), ".csv")
	t, ok := rep.Table(name)
	if !ok {
		err := fmt.Errorf("unknown table %q", name)
		RespondError(c, http.StatusNotFound, "unknown_table", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := t.WriteCSV(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func (s *Server) focus(c *gin.Context) {
	rep, ok := s.report(c)
	if !ok {
		return
	}
	f, err := rep.Focus(c.Param("department"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "unknown_department", err)
		return
	}
	RespondOK(c, f)
}

// report runs a dashboard pass over the session's active dataset with
// selections from the query string.
func (s *Server) report(c *gin.Context) (*dashboard.Report, bool) {
	sel, err := dashboard.ParseSelections(
		c.Query("from"),
		c.Query("to"),
		queryList(c, "departments"),
		queryList(c, "roles"),
	)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_selection", err)
		return nil, false
	}

	ds, _, err := session(c).Active()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "reference_unavailable", err)
		return nil, false
	}
	return dashboard.Build(ds, sel), true
}

// queryList accepts repeated keys as well as comma separated values.
func queryList(c *gin.Context, key string) []string {
	var res []string
	for _, v := range c.QueryArray(key) {
		res = append(res, strings.Split(v, ",")...)
	}
	return res
}
