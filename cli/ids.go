package cli

import (
	"fmt"

	"github.com/oceanglide/gliderfetch/glider"
	"github.com/spf13/cobra"
)

var idsCmd = &cobra.Command{
	Use:   "ids",
	Short: "List every glider dataset id on the IOOS glider DAC",
	RunE:  runIDs,
}

func init() {
	rootCmd.AddCommand(idsCmd)
}

func runIDs(cmd *cobra.Command, args []string) error {
	lister := glider.NewDatasetList(serverFlag)
	ids, err := lister.IDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}
