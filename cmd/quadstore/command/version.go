package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxicore/quadstore"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the on-disk layout version this build reads and writes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(quadstore.LatestStorageVersion)
			return nil
		},
	}
}
