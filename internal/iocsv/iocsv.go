// Package iocsv reads the six input tables from CSV files, either from a
// directory or from an uploaded bundle.
package iocsv

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/aire-program/aire-impact-dashboard/pkg/schema"
	"golang.org/x/sync/errgroup"
)

const bom = "\ufeff"

// ReadTable parses CSV text with a header row. Header names and values
// are trimmed. Short rows leave trailing columns empty.
func ReadTable(r io.Reader) ([]string, []schema.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("file is empty")
	}
	if err != nil {
		return nil, nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], bom))
	}

	recs := []schema.Record{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if isBlank(row) {
			continue
		}
		rec := make(schema.Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = strings.TrimSpace(row[i])
			}
		}
		recs = append(recs, rec)
	}
	return header, recs, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

type fsLoader struct {
	fsys fs.FS
}

// NewFSLoader reads tables from the root of a file system.
func NewFSLoader(fsys fs.FS) dataset.Loader {
	return &fsLoader{fsys: fsys}
}

// NewDirLoader reads tables from a directory.
func NewDirLoader(dir string) dataset.Loader {
	return &fsLoader{fsys: os.DirFS(dir)}
}

// Load reads all six files concurrently. A missing file is reported
// before anything is parsed.
func (l *fsLoader) Load(ctx context.Context) (dataset.Raw, error) {
	names := dataset.TableNames()
	for _, t := range names {
		if _, err := fs.Stat(l.fsys, t.FileName()); err != nil {
			return nil, dataset.MissingInputError(t.FileName())
		}
	}

	headers := make([][]string, len(names))
	tables := make([][]schema.Record, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, t := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := l.fsys.Open(t.FileName())
			if err != nil {
				return ReadTableError(t.FileName(), err)
			}
			defer f.Close()

			headers[i], tables[i], err = ReadTable(f)
			if err != nil {
				return ReadTableError(t.FileName(), err)
			}
			slog.Debug("Read table", "table", t, "rows", len(tables[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assemble(names, headers, tables)
}

// ReadBundle parses an uploaded bundle keyed by file name. All six files
// must be present before anything is parsed.
func ReadBundle(files map[string]io.Reader) (dataset.Raw, error) {
	names := dataset.TableNames()
	for _, t := range names {
		if _, ok := files[t.FileName()]; !ok {
			return nil, dataset.MissingInputError(t.FileName())
		}
	}

	headers := make([][]string, len(names))
	tables := make([][]schema.Record, len(names))
	for i, t := range names {
		var err error
		headers[i], tables[i], err = ReadTable(files[t.FileName()])
		if err != nil {
			return nil, ReadTableError(t.FileName(), err)
		}
	}
	return assemble(names, headers, tables)
}

// assemble checks headers of all tables and reports every missing
// required column at once.
func assemble(
	names []dataset.TableName,
	headers [][]string,
	tables [][]schema.Record,
) (dataset.Raw, error) {
	verr := &schema.ValidationError{}
	res := make(dataset.Raw, len(names))
	for i, t := range names {
		err := schema.ValidateColumns(headers[i], t.Schema())
		if e, ok := err.(*schema.ValidationError); ok {
			verr.Merge(e)
		}
		res[t] = tables[i]
	}
	if len(verr.Issues) > 0 {
		return nil, dataset.ValidationFailedError(verr)
	}
	return res, nil
}
