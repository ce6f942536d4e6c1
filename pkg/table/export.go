package table

// Exporter writes a set of tables to a destination path.
type Exporter interface {
	// Format is the name of the output format.
	Format() string

	// Export writes tables under path and returns the location of the
	// written report.
	Export(path string, tables []*Table) (string, error)
}
