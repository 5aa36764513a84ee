/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package main

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"

	"github.com/DanielFath/domm/pkg/export"
)

func newExportCmd() *cobra.Command {
	params := dommParams{}
	cmd := &cobra.Command{
		Use:   "export [paths...]",
		Short: "export the model as graphviz digraph",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, params)
			if err != nil {
				return err
			}
			m, err := buildModel(cmd.Context(), sources(args, cfg), cfg)
			if err != nil {
				return err
			}

			opts := make([]export.Option, 0)
			if cfg.Export.ShowSubsumed {
				opts = append(opts, export.ShowSubsumed())
			}
			if !cfg.Export.ShowFeatures {
				opts = append(opts, export.HideFeatures())
			}

			if cfg.Export.Output == "" {
				return export.WriteDOT(cmd.OutOrStdout(), m, opts...)
			}
			buf := bytes.Buffer{}
			if err := export.WriteDOT(&buf, m, opts...); err != nil {
				return err
			}
			if err := os.WriteFile(cfg.Export.Output, buf.Bytes(), defaultPermissions); err != nil {
				return err
			}
			logger.Info("model", m.Name(), "exported to", cfg.Export.Output)
			return nil
		},
	}
	initGlobalFlags(cmd, &params)
	cmd.Flags().StringVarP(&params.Output, flagOutput, "o", "", "output file, stdout if omitted")
	cmd.Flags().BoolVar(&params.ShowSubsumed, flagShowSubsumed, false, "render both ends of bidirectional relationships")
	cmd.Flags().BoolVar(&params.HideFeatures, flagHideFeatures, false, "render classifier names only")
	return cmd
}
