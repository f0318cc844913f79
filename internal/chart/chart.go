// Package chart shapes a dataset into the series the comparison chart draws.
package chart

import (
	"strings"

	"votecompare/internal/pipeline"
	"votecompare/pkg/contracts/domain"
)

// DefaultMarkerScale multiplies a share percentage into a marker diameter
const DefaultMarkerScale = 2.0

// Options controls presentation
type Options struct {
	Title       string
	MarkerScale float64
}

// Build returns one series per selected candidate, in the dataset's
// candidate order. Unknown names are ignored and an empty selection yields
// a payload without series. Every series spans the full domain so that gaps
// line up on the shared x-axis.
func Build(ds *pipeline.Dataset, selected []string, opts Options) domain.ChartPayload {
	scale := opts.MarkerScale
	if scale <= 0 {
		scale = DefaultMarkerScale
	}

	payload := domain.ChartPayload{
		Title:      opts.Title,
		Categories: ds.Domain,
		Series:     []domain.ChartSeries{},
	}

	want := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		want[s] = struct{}{}
	}

	for _, c := range ds.Candidates {
		if _, ok := want[c.Name]; !ok {
			continue
		}
		records := ds.Filter([]string{c.Name})
		series := domain.ChartSeries{
			Candidate:  c.Name,
			Color:      c.Color,
			X:          make([]string, len(records)),
			Y:          make([]*float64, len(records)),
			Votes:      make([]*int64, len(records)),
			MarkerSize: make([]*float64, len(records)),
		}
		for i, r := range records {
			series.X[i] = r.Neighborhood
			series.Y[i] = r.VoteSharePercent
			series.Votes[i] = r.VotesAbsolute
			if r.VoteSharePercent != nil {
				size := *r.VoteSharePercent * scale
				series.MarkerSize[i] = &size
			}
		}
		payload.Series = append(payload.Series, series)
		payload.RowCount += len(records)
	}
	return payload
}

// ParseSelection interprets the candidates query parameter. When the
// parameter is absent every candidate is selected; when present, values are
// split on commas and blanks dropped, so an empty value selects nobody.
func ParseSelection(raw []string, present bool, all []string) []string {
	if !present {
		out := make([]string, len(all))
		copy(out, all)
		return out
	}

	selected := []string{}
	seen := make(map[string]struct{})
	for _, v := range raw {
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			selected = append(selected, name)
		}
	}
	return selected
}

// Unknown returns the selected names that are not in all
func Unknown(selected, all []string) []string {
	known := make(map[string]struct{}, len(all))
	for _, a := range all {
		known[a] = struct{}{}
	}
	var out []string
	for _, s := range selected {
		if _, ok := known[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
