package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxicore/quadstore"
)

func newOpenCmd() *cobra.Command {
	var withMetrics bool

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open (creating if absent) the store and run the version handshake.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dbPath(cmd)
			if err != nil {
				return err
			}

			s, err := openStore(path, withMetrics)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.Len()
			if err != nil {
				return err
			}
			fmt.Printf("opened %s: %d quads\n", path, n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "instrument the substrate with Prometheus counters")
	return cmd
}

// openStore centralizes the Open call every subcommand needs.
func openStore(path string, withMetrics bool) (*quadstore.Store, error) {
	var opts []quadstore.Option
	if withMetrics {
		opts = append(opts, quadstore.WithMetrics())
	}
	return quadstore.Open(path, opts...)
}
