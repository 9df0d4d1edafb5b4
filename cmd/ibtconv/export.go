package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ibt/ibt"
	"github.com/go-ibt/ibt/export"
)

func exportCmd() *cobra.Command {
	var (
		out        string
		projection []string
		includeAll bool
		nullColumn bool
	)

	cmd := &cobra.Command{
		Use:   "export <file.ibt> [more.ibt...]",
		Short: "Export one or more .ibt files to a single Parquet file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := export.DefaultOptions()
			opts.IncludeAll = includeAll

			if nullColumn {
				opts.OnMissingVariable = export.OnMissingNullColumn
			}

			proj := export.Projection(projection)
			ctx := context.Background()

			var (
				rows int64
				err  error
			)

			if len(args) == 1 {
				var tel *ibt.Telemetry

				tel, err = ibt.Open(args[0])
				if err != nil {
					return err
				}
				defer tel.Close()

				rows, err = export.File(ctx, tel, out, proj, opts)
			} else {
				rows, err = export.Multi(ctx, args, out, proj, opts, func(current, total int, name string) {
					fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] %s\n", current, total, name)
				})
			}

			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", rows, out)

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output Parquet file path (required)")
	cmd.Flags().StringSliceVarP(&projection, "variable", "v", nil, "variable name to project (repeatable); default is the built-in ML roster")
	cmd.Flags().BoolVar(&includeAll, "all", false, "project every variable in the file's dictionary")
	cmd.Flags().BoolVar(&nullColumn, "null-column", false, "keep unresolved projected names as a null column instead of dropping them")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
