package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/excelaipro/excelaipro/internal/models"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the servable models",
	Run:   runModels,
}

func runModels(_ *cobra.Command, _ []string) {
	for _, m := range models.MODELS {
		marker := " "
		if m.ID == models.DefaultID {
			marker = "*"
		}
		kind := ""
		if m.Reasoning {
			kind = "(reasoning)"
		}
		fmt.Printf("%s %-32s %-32s %s\n", marker, m.ID, m.Label(), kind)
	}
}
