package main

import (
	"fmt"
	"io"
	"strings"

	"dreamvoid/internal/core"
	"dreamvoid/internal/dream"
	"dreamvoid/internal/render"
	"dreamvoid/internal/world"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B48EFF"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7A7A8C"))
	frameStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3C3C55")).
			Padding(0, 1)
)

func runPreview(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	ticks, _ := flags.GetInt("ticks")
	every, _ := flags.GetInt("every")
	width, _ := flags.GetInt("width")
	height, _ := flags.GetInt("height")

	d, err := dream.FromConfig(cfg, logger)
	if err != nil {
		return err
	}
	preview(cmd.OutOrStdout(), d, ticks, every, width, height)
	return nil
}

// preview steps d for ticks and writes a summary line every every ticks,
// followed by a text frame of the final state.
func preview(out io.Writer, d *dream.Dream, ticks, every, width, height int) {
	if every <= 0 {
		every = 1
	}
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%s flight, %d ticks", d.Flight().Name(), ticks)))
	portals := 0
	for i := 1; i <= ticks; i++ {
		changed := d.Step()
		portals += len(d.Crossed())
		if i%every != 0 && i != ticks {
			continue
		}
		fmt.Fprintln(out, summaryLine(i, d, changed))
	}
	total, rejected := d.Ticks()
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("portals crossed %d, ticks %d, rejected %d", portals, total, rejected)))
	if width > 0 && height > 0 {
		fmt.Fprintln(out, frame(d, width, height))
	}
}

func summaryLine(tick int, d *dream.Dream, changed bool) string {
	cam := d.Camera()
	entities := d.Entities()
	counts := map[world.Kind]int{}
	for _, e := range entities {
		counts[e.Kind()]++
	}
	var kinds []string
	for _, k := range world.Kinds() {
		if counts[k] > 0 {
			kinds = append(kinds, fmt.Sprintf("%s:%d", strings.ToLower(k.String()), counts[k]))
		}
	}
	biome := d.Biome()
	bg := render.Background(biome)
	badge := lipgloss.NewStyle().
		Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", bg.R, bg.G, bg.B))).
		Foreground(lipgloss.Color("#E6E6F0")).
		Render(fmt.Sprintf(" %-11s", biome))
	mark := " "
	if changed {
		mark = "*"
	}
	return fmt.Sprintf("%6d %s depth=%9.0f v=%7.1f entities=%3d%s %s", tick, badge, cam.Depth, cam.Velocity, len(entities), mark, dimStyle.Render(strings.Join(kinds, " ")))
}

func frame(d *dream.Dream, width, height int) string {
	grid := core.NewCellGrid(width, height)
	cam := d.Camera().Depth
	render.Frame(grid, cam, d.Entities(), render.BackgroundAt(cam, d.Window().Config().BandWidth))
	return frameStyle.Render(strings.Join(grid.Rows(), "\n"))
}
