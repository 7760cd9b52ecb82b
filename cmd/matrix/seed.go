package main

import (
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Matrix/internal/config"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
)

func newSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Print the active seed as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			seed, err := loadSeed(cfg)
			if err != nil {
				return err
			}
			data, err := scoring.MarshalSeed(seed)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
