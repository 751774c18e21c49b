package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFlushCmd() *cobra.Command {
	var async bool

	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Durably persist all committed writes.",
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

			if async {
				err = store.FlushAsync()
			} else {
				err = store.Flush()
			}
			if err != nil {
				return err
			}
			fmt.Println("flushed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&async, "async", false, "use the store's FlushAsync entry point (with Badger it still blocks until the sync completes)")
	return cmd
}
