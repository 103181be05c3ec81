package cmd

import (
	"fmt"

	"github.com/theirongolddev/crease/internal/cli"
	"github.com/theirongolddev/crease/internal/config"
	"github.com/theirongolddev/crease/internal/simapi"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available prediction models",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	var list simapi.ModelList
	err = cachedJSON("models", "", func() (simapi.ModelList, error) {
		ctx, cancel := lookupCtx()
		defer cancel()
		got, err := client.Models(ctx)
		if err != nil {
			return simapi.ModelList{}, err
		}
		return *got, nil
	}, &list)
	if err != nil {
		return fmt.Errorf("fetching model catalog: %w", err)
	}

	if len(list.Models) == 0 {
		fmt.Println("\n  The service reports no models.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PREDICTION MODELS"))
	fmt.Println()

	rows := make([][]string, 0, len(list.Models))
	for _, model := range list.Models {
		marker := ""
		if model == list.Default {
			marker = "(default)"
		}
		rows = append(rows, []string{model, marker})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Model", ""},
		Rows:    rows,
	}))

	fmt.Println()
	fmt.Println("  Pick one with --model or [server] model in the config file.")
	return nil
}
