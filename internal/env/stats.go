package env

import "gonum.org/v1/gonum/stat"

// Outcome indicates how an episode ended
type Outcome int

const (
	OutcomeNone      Outcome = iota
	OutcomeHappy             // reached a +1 cell
	OutcomeBad               // reached a -1 cell
	OutcomeTruncated         // hit the step cap first
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeHappy:
		return "happy"
	case OutcomeBad:
		return "bad"
	case OutcomeTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// OutcomeOf classifies the cell an episode finished on
func (e *Environment) OutcomeOf(p Position) Outcome {
	attr, _ := e.grid.Attribute(p)
	switch attr {
	case Happy:
		return OutcomeHappy
	case Bad:
		return OutcomeBad
	}
	return OutcomeNone
}

// EpisodeStats captures the metrics of a single episode
type EpisodeStats struct {
	Episode     int      `json:"episode"`
	Seed        int64    `json:"seed"`
	Steps       int      `json:"steps"`
	TotalReward float64  `json:"total_reward"`
	Outcome     Outcome  `json:"outcome"`
	Final       Position `json:"final"`
}

// AggregatedStats holds statistics across multiple episodes
type AggregatedStats struct {
	RewardMean    float64
	RewardStd     float64
	StepsMean     float64
	OutcomeCounts map[Outcome]int
	NumEpisodes   int
}

// Aggregate computes statistics from multiple episode stats
func Aggregate(episodes []EpisodeStats) AggregatedStats {
	agg := AggregatedStats{OutcomeCounts: make(map[Outcome]int)}
	n := len(episodes)
	if n == 0 {
		return agg
	}
	agg.NumEpisodes = n

	rewards := make([]float64, n)
	steps := make([]float64, n)
	for i, ep := range episodes {
		rewards[i] = ep.TotalReward
		steps[i] = float64(ep.Steps)
		agg.OutcomeCounts[ep.Outcome]++
	}

	agg.RewardMean, agg.RewardStd = stat.PopMeanStdDev(rewards, nil)
	agg.StepsMean = stat.Mean(steps, nil)
	return agg
}

// SuccessRate is the fraction of episodes that ended on a happy cell
func (a AggregatedStats) SuccessRate() float64 {
	if a.NumEpisodes == 0 {
		return 0
	}
	return float64(a.OutcomeCounts[OutcomeHappy]) / float64(a.NumEpisodes)
}
