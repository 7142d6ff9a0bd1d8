package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Sourcing/internal/catalog"
	"github.com/MikeSquared-Agency/Sourcing/internal/logging"
	"github.com/MikeSquared-Agency/Sourcing/internal/scoring"
	"github.com/MikeSquared-Agency/Sourcing/internal/sourcing"
	"github.com/MikeSquared-Agency/Sourcing/internal/store"
)

var errInvalidRule = errors.New("rule is invalid")

func validateCmd() *cobra.Command {
	var rulePath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a rule file and list every problem with it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rf, err := loadRule(rulePath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			valid, messages := scoring.Validate(rf.Config, catalog.ValidateSpec)
			if valid {
				fmt.Fprintf(out, "%s: valid\n", rulePath)
				return nil
			}
			fmt.Fprintf(out, "%s: %d problem(s)\n", rulePath, len(messages))
			for _, m := range messages {
				fmt.Fprintf(out, "  - %s\n", m)
			}
			return errInvalidRule
		},
	}
	cmd.Flags().StringVarP(&rulePath, "file", "f", "", "rule YAML file")
	cmd.MarkFlagRequired("file")
	return cmd
}

func scoreCmd(logLevel *string) *cobra.Command {
	var (
		rulePath      string
		locationsPath string
		inventoryPath string
		line          sourcing.OrderLine
		output        string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Rank a rule's locations for an item using fixture data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(*logLevel)
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			rf, err := loadRule(rulePath)
			if err != nil {
				return err
			}
			locs, err := loadLocations(locationsPath)
			if err != nil {
				return err
			}
			inv, err := loadInventory(inventoryPath)
			if err != nil {
				return err
			}

			ev := sourcing.New(catalog.New(catalog.NewMemorySource(locs), 0, logger), inv, nil, nil, logger)
			res, err := ev.Evaluate(cmd.Context(), &store.Rule{Name: rf.Name, Config: rf.Config}, line)
			if err != nil {
				var verr *sourcing.ValidationError
				if errors.As(err, &verr) {
					for _, m := range verr.Messages {
						fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", m)
					}
					return errInvalidRule
				}
				return err
			}

			switch output {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			case "table":
				return writeTable(cmd, res)
			default:
				return fmt.Errorf("unknown output %q", output)
			}
		},
	}
	cmd.Flags().StringVarP(&rulePath, "file", "f", "", "rule YAML file")
	cmd.Flags().StringVar(&locationsPath, "locations", "", "locations YAML file")
	cmd.Flags().StringVar(&inventoryPath, "inventory", "", "inventory YAML file (omit for no stock anywhere)")
	cmd.Flags().StringVar(&line.ItemID, "item", "", "item id to score for")
	cmd.Flags().StringVar(&line.OrderDetailID, "order-detail", "", "order detail id")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("locations")
	cmd.MarkFlagRequired("item")
	return cmd
}

func writeTable(cmd *cobra.Command, res *sourcing.Result) error {
	out := cmd.OutOrStdout()
	if res.Entries == nil {
		fmt.Fprintln(out, "no locations matched the rule's location list")
		return nil
	}
	if res.Fallback {
		fmt.Fprintln(out, "no location has stock; all listed locations were scored")
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tLOCATION\tORDER\tAVAILABLE")
	for i, e := range res.Ranked {
		fmt.Fprintf(tw, "%d\t%d\t%g\t%g\n", i+1, e.LocationID, e.Order, e.Available)
	}
	return tw.Flush()
}
