package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ibt/ibt"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.ibt>",
		Short: "Print a file's header, variable dictionary, and session info as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
}

type inspectReport struct {
	Header      any    `json:"header"`
	DiskHeader  any    `json:"disk_header"`
	SessionID   string `json:"session_id"`
	NumSamples  int    `json:"num_samples"`
	Variables   []string `json:"variables"`
	SessionInfo any    `json:"session_info"`
}

func runInspect(cmd *cobra.Command, path string) error {
	tel, err := ibt.Open(path)
	if err != nil {
		return err
	}
	defer tel.Close()

	vars := tel.Variables()
	names := make([]string, len(vars))

	for i, v := range vars {
		names[i] = v.Name
	}

	report := inspectReport{
		Header:      tel.Header(),
		DiskHeader:  tel.DiskHeader(),
		SessionID:   tel.SessionID(),
		NumSamples:  tel.Len(),
		Variables:   names,
		SessionInfo: tel.SessionInfo().Raw(),
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	return nil
}
