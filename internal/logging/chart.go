package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"gridmdp/internal/env"
)

// WriteRewardChart renders total reward per episode as an HTML line chart
func WriteRewardChart(path, title string, episodes []env.EpisodeStats) error {
	if len(episodes) == 0 {
		return fmt.Errorf("no episodes to chart")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d episodes", len(episodes)),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	xs := make([]string, len(episodes))
	rewards := make([]opts.LineData, len(episodes))
	steps := make([]opts.LineData, len(episodes))
	for i, ep := range episodes {
		xs[i] = fmt.Sprintf("%d", ep.Episode)
		rewards[i] = opts.LineData{Value: ep.TotalReward}
		steps[i] = opts.LineData{Value: ep.Steps}
	}

	line.SetXAxis(xs).
		AddSeries("total reward", rewards).
		AddSeries("steps", steps)

	page := components.NewPage()
	page.AddCharts(line)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
