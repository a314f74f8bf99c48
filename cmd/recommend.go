package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/floodops/dispatch/config"
	coredispatch "github.com/floodops/dispatch/core/dispatch"
	"github.com/floodops/dispatch/core/store"
	"github.com/floodops/dispatch/infra/logger"
)

var recommendQuery string

var recommendCmd = &cobra.Command{
	Use:   "recommend <incident-id>",
	Short: "Rank available units for an incident from the seed data",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecommend,
}

func init() {
	recommendCmd.Flags().StringVarP(&recommendQuery, "query", "q", "", "free-text unit filter")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Seed.Path == "" {
		return fmt.Errorf("seed.path must be set to use recommend")
	}
	st := store.NewMemoryStore()
	seed, err := store.LoadSeed(cfg.Seed.Path)
	if err != nil {
		return err
	}
	if err := seed.Apply(st); err != nil {
		return err
	}
	svc, err := coredispatch.NewService(st, nil, nil, nil, logger.New("recommend"), cfg.Dispatch)
	if err != nil {
		return err
	}
	cands, err := svc.Recommend(cmd.Context(), args[0], recommendQuery)
	if err != nil {
		return err
	}
	if len(cands) == 0 {
		fmt.Println("no available units match")
		return nil
	}
	for i, c := range cands {
		fmt.Printf("%d. %s (%s) score=%d distance=%.1fkm eta=%dmin %v\n",
			i+1, c.Unit.Name, c.Unit.ID, c.Score, c.DistanceKm, c.EstimatedResponseMinutes, c.Reasons)
	}
	return nil
}
