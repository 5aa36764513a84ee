/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	params := dommParams{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "check model files and print the model summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, params)
			if err != nil {
				return err
			}
			m, err := buildModel(cmd.Context(), sources(args, cfg), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "model %s: %d declarations, %d relationships\n",
				m.Name(), len(m.Decls()), len(m.Edges()))
			return nil
		},
	}
	initGlobalFlags(cmd, &params)
	return cmd
}
