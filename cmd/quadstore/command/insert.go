package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxicore/quadstore/internal/rdf"
)

func newInsertCmd() *cobra.Command {
	var graphRaw string

	cmd := &cobra.Command{
		Use:   "insert <subject> <predicate> <object>",
		Short: "Insert a single quad.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dbPath(cmd)
			if err != nil {
				return err
			}

			s, p, o, err := parseTriple(args)
			if err != nil {
				return err
			}
			g, err := graphTermOrDefault(graphRaw)
			if err != nil {
				return err
			}

			store, err := openStore(path, false)
			if err != nil {
				return err
			}
			defer store.Close()

			isNew, err := store.Insert(rdf.NewQuad(s, p, o, g))
			if err != nil {
				return err
			}
			if isNew {
				fmt.Println("inserted")
			} else {
				fmt.Println("already present")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&graphRaw, "graph", "", "named graph IRI, e.g. <http://example.org/g1> (default graph if omitted)")
	return cmd
}

func parseTriple(args []string) (s, p, o rdf.Term, err error) {
	if s, err = parseTerm(args[0]); err != nil {
		return nil, nil, nil, err
	}
	if p, err = parseTerm(args[1]); err != nil {
		return nil, nil, nil, err
	}
	if o, err = parseTerm(args[2]); err != nil {
		return nil, nil, nil, err
	}
	return s, p, o, nil
}
