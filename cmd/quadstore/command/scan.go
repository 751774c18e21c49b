package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxicore/quadstore/internal/rdf"
)

func newScanCmd() *cobra.Command {
	var subjectRaw, predicateRaw, objectRaw, graphRaw string
	var anyGraph bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Print every quad matching a pattern (omit a flag to leave that position unbound).",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dbPath(cmd)
			if err != nil {
				return err
			}

			subject, err := optionalTerm(subjectRaw)
			if err != nil {
				return err
			}
			predicate, err := optionalTerm(predicateRaw)
			if err != nil {
				return err
			}
			object, err := optionalTerm(objectRaw)
			if err != nil {
				return err
			}
			var graph rdf.Term
			if !anyGraph {
				if graph, err = graphTermOrDefault(graphRaw); err != nil {
					return err
				}
			}

			store, err := openStore(path, false)
			if err != nil {
				return err
			}
			defer store.Close()

			it, err := store.QuadsForPattern(subject, predicate, object, graph)
			if err != nil {
				return err
			}
			defer it.Close()

			count := 0
			for it.Next() {
				q, err := it.Quad()
				if err != nil {
					return err
				}
				fmt.Println(q.String())
				count++
			}
			fmt.Printf("%d quad(s)\n", count)
			return nil
		},
	}
	cmd.Flags().StringVar(&subjectRaw, "subject", "", "bind the subject position")
	cmd.Flags().StringVar(&predicateRaw, "predicate", "", "bind the predicate position")
	cmd.Flags().StringVar(&objectRaw, "object", "", "bind the object position")
	cmd.Flags().StringVar(&graphRaw, "graph", "", "bind the graph position (default graph if omitted, unless --any-graph)")
	cmd.Flags().BoolVar(&anyGraph, "any-graph", false, "leave the graph position unbound instead of defaulting to the default graph")
	return cmd
}

func optionalTerm(raw string) (rdf.Term, error) {
	if raw == "" {
		return nil, nil
	}
	return parseTerm(raw)
}
