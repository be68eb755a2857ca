// Package funnel derives per-stage counts and content gaps from the content
// library. Nothing here is stored; every report is recomputed from the items
// passed in.
package funnel

import "github.com/jonathan/content-toolkit/internal/types"

// Quota is the target number of items per stage.
const Quota = 2

// StageGap is the count and shortfall of one stage.
type StageGap struct {
	Count int `json:"count"`
	Gap   int `json:"gap"`
}

// Report maps every stage to its gap figures.
type Report map[types.StageKey]StageGap

// TotalGap sums the gaps of every stage.
func (r Report) TotalGap() int {
	total := 0
	for _, g := range r {
		total += g.Gap
	}
	return total
}

// Analyze counts the items of each stage and computes max(0, Quota-count).
// Every one of the five stages is present in the result.
func Analyze(items []types.ContentItem) Report {
	counts := countByStage(items)
	report := make(Report, len(types.Stages))
	for _, key := range types.StageKeys() {
		report[key] = gapFor(counts[key])
	}
	return report
}

// StageView is the funnel card of one stage.
type StageView struct {
	types.Stage
	Items []types.ContentItem `json:"items"`
	Count int                 `json:"count"`
	Gap   int                 `json:"gap"`
}

// StageViews builds the funnel cards for every stage in display order.
func StageViews(items []types.ContentItem) []StageView {
	views := make([]StageView, 0, len(types.Stages))
	for _, stage := range types.Stages {
		staged := make([]types.ContentItem, 0)
		for _, item := range items {
			if item.Stage == stage.Key {
				staged = append(staged, item)
			}
		}
		g := gapFor(len(staged))
		views = append(views, StageView{
			Stage: stage,
			Items: staged,
			Count: g.Count,
			Gap:   g.Gap,
		})
	}
	return views
}

func countByStage(items []types.ContentItem) map[types.StageKey]int {
	counts := make(map[types.StageKey]int, len(types.Stages))
	for _, item := range items {
		if item.Stage.Valid() {
			counts[item.Stage]++
		}
	}
	return counts
}

func gapFor(count int) StageGap {
	return StageGap{Count: count, Gap: max(0, Quota-count)}
}
