package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newProvidersCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Show configured catalog providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			type providerView struct {
				Source        string `json:"source"`
				Enabled       bool   `json:"enabled"`
				BaseURL       string `json:"base_url"`
				MaxConcurrent int    `json:"max_concurrent"`
				MinDelayMS    int    `json:"min_delay_ms"`
				HasToken      bool   `json:"has_token"`
			}

			var views []providerView
			for _, tag := range cfg.Search.Priority {
				settings, ok := cfg.Provider(tag)
				if !ok {
					continue
				}
				views = append(views, providerView{
					Source:        tag,
					Enabled:       settings.Enabled,
					BaseURL:       settings.BaseURL,
					MaxConcurrent: settings.MaxConcurrent,
					MinDelayMS:    settings.MinDelayMS,
					HasToken:      settings.Token != "",
				})
			}
			if jsonOut {
				return writeJSON(cmd, views)
			}

			rows := make([][]string, 0, len(views))
			for _, view := range views {
				rows = append(rows, []string{
					view.Source,
					yesNo(view.Enabled),
					view.BaseURL,
					strconv.Itoa(view.MaxConcurrent),
					strconv.Itoa(view.MinDelayMS),
					yesNo(view.HasToken),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Source", "Enabled", "Base URL", "Max Conc", "Min Delay (ms)", "Token"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
