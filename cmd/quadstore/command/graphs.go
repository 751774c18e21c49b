package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGraphsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graphs",
		Short: "Inspect and manage the named-graph registry.",
	}
	cmd.AddCommand(newGraphsListCmd(), newGraphsAddCmd(), newGraphsRemoveCmd())
	return cmd
}

func newGraphsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every registered named graph.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dbPath(cmd)
			if err != nil {
				return err
			}
			store, err := openStore(path, false)
			if err != nil {
				return err
			}
			defer store.Close()

			graphs, err := store.NamedGraphs()
			if err != nil {
				return err
			}
			for _, g := range graphs {
				fmt.Println(g.String())
			}
			fmt.Printf("%d named graph(s)\n", len(graphs))
			return nil
		},
	}
}

func newGraphsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <graph-iri>",
		Short: "Register an empty named graph.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dbPath(cmd)
			if err != nil {
				return err
			}
			g, err := parseTerm(args[0])
			if err != nil {
				return err
			}
			store, err := openStore(path, false)
			if err != nil {
				return err
			}
			defer store.Close()

			isNew, err := store.InsertNamedGraph(g)
			if err != nil {
				return err
			}
			if isNew {
				fmt.Println("registered")
			} else {
				fmt.Println("already registered")
			}
			return nil
		},
	}
}

func newGraphsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <graph-iri>",
		Short: "Remove every quad in a named graph and drop it from the registry.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dbPath(cmd)
			if err != nil {
				return err
			}
			g, err := parseTerm(args[0])
			if err != nil {
				return err
			}
			store, err := openStore(path, false)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.RemoveNamedGraph(g)
			if err != nil {
				return err
			}
			if removed {
				fmt.Println("removed")
			} else {
				fmt.Println("not registered")
			}
			return nil
		},
	}
}
