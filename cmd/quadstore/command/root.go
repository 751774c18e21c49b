package command

import (
	"github.com/spf13/cobra"

	"github.com/oxicore/quadstore/internal/rdf"
)

// NewRootCmd assembles the quadstore CLI: a --db persistent flag shared by
// every subcommand that touches a store, grounded on the
// backend/database-path flag pattern cayley's `cmd/cayley/command` package
// uses throughout.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quadstore",
		Short: "Inspect and manipulate an indexed quad store.",
	}
	root.PersistentFlags().String("db", "", "path to the store directory (required)")

	root.AddCommand(
		newOpenCmd(),
		newInsertCmd(),
		newScanCmd(),
		newGraphsCmd(),
		newVersionCmd(),
		newFlushCmd(),
	)
	return root
}

func dbPath(cmd *cobra.Command) (string, error) {
	path, err := cmd.Flags().GetString("db")
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", errNoDBPath
	}
	return path, nil
}

var errNoDBPath = cmdError("--db is required")

type cmdError string

func (e cmdError) Error() string { return string(e) }

// graphTermOrDefault parses raw as a graph term, treating "" as the
// default graph rather than an error.
func graphTermOrDefault(raw string) (rdf.Term, error) {
	if raw == "" {
		return rdf.NewDefaultGraph(), nil
	}
	return parseTerm(raw)
}
