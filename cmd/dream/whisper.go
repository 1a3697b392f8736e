package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"dreamvoid/internal/oracle"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type whisperer interface {
	Whisper(ctx context.Context, text string) (oracle.Fragment, <-chan oracle.Vision)
}

func runWhisper(cmd *cobra.Command, args []string) error {
	orc, err := oracle.Dial(cmd.Context(), cfg.Oracle.APIKey, oracleOptions())
	if err != nil {
		return err
	}
	visionPath, _ := cmd.Flags().GetString("vision")
	return whisper(cmd.Context(), cmd.OutOrStdout(), orc, strings.Join(args, " "), visionPath)
}

// whisper consults w and prints the fragment. When visionPath is set it waits
// for the vision and writes it there.
func whisper(ctx context.Context, out io.Writer, w whisperer, text, visionPath string) error {
	frag, visions := w.Whisper(ctx, text)
	printFragment(out, frag)
	if visionPath == "" {
		return nil
	}
	v, ok := <-visions
	if !ok {
		return fmt.Errorf("no vision manifested for %q", frag.Text)
	}
	if err := os.WriteFile(visionPath, v.Data, 0644); err != nil {
		return fmt.Errorf("failed to write vision: %w", err)
	}
	logger.Info("vision written", zap.String("path", visionPath), zap.String("mime", v.MIME), zap.Int("bytes", len(v.Data)))
	fmt.Fprintln(out, dimStyle.Render("vision: "+visionPath))
	return nil
}

func printFragment(out io.Writer, frag oracle.Fragment) {
	tint := frag.Mood.Tint()
	mood := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", tint.R, tint.G, tint.B))).
		Render(string(frag.Mood))
	fmt.Fprintf(out, "%s %s\n", mood, frag.Echo)
}
