package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/keshon/simplebot/internal/message"
)

var previewCode bool

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show how text read from stdin would be split into messages",
	RunE: func(c *cobra.Command, _ []string) error {
		data, err := io.ReadAll(c.InOrStdin())
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		return preview(c.OutOrStdout(), string(data), previewCode)
	},
}

func init() {
	previewCmd.Flags().BoolVar(&previewCode, "code", false, "format every chunk as a code block")
	rootCmd.AddCommand(previewCmd)
}

func preview(w io.Writer, text string, code bool) error {
	limit := message.EffectiveLimit(code)
	chunks := message.Split(text, limit)
	for i, chunk := range chunks {
		formatted := message.Format(chunk, code)
		if _, err := fmt.Fprintf(w, "--- message %d/%d (%d characters) ---\n%s\n",
			i+1, len(chunks), message.Len(formatted), formatted); err != nil {
			return err
		}
	}
	return nil
}
