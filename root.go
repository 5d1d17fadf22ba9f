package main

import (
	"vcarpool/config"
	"vcarpool/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "vcarpool",
		Short:         "Carpool dashboard server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["skipConfigLoad"] == "true" {
				return nil
			}
			if configFlag != "" {
				viper.SetConfigFile(configFlag)
			}
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}
			config.AppConfig = cfg
			utils.InitializeLogger()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newWorkerCommand())
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}
