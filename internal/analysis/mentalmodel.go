package analysis

import (
	"sort"

	"github.com/teamlens/teamlens/pkg/types"
)

// MentalModelChange records how one owner's shared mental model evolved
// between two consecutive cycles. Before and After carry the full texts so
// the dashboard can request a diff view on demand.
type MentalModelChange struct {
	OwnerID       string  `json:"ownerId"`
	FromCycle     int     `json:"fromCycle"`
	ToCycle       int     `json:"toCycle"`
	Before        string  `json:"before"`
	After         string  `json:"after"`
	BeforeLength  int     `json:"beforeLength"`
	AfterLength   int     `json:"afterLength"`
	LengthDelta   int     `json:"lengthDelta"`
	Similarity    float64 `json:"similarity"`
	IsIdentical   bool    `json:"isIdentical"`
	IsSignificant bool    `json:"isSignificant"`
}

// MentalModelReport aggregates mental-model evolution across owners.
type MentalModelReport struct {
	Changes          []MentalModelChange `json:"changes"`
	LengthByCycle    types.CycleStats    `json:"lengthByCycle"`
	SimilarityStats  types.StatSummary   `json:"similarityStats"`
	IdenticalCount   int                 `json:"identicalCount"`
	SignificantCount int                 `json:"significantCount"`
}

// MentalModelChanges walks each owner's cycle sequence and scores every
// consecutive pair of shared mental models: similarity, identity,
// significance (similarity below the rewrite threshold), and syllable
// length movement measured with the vowel-aware estimator.
func MentalModelChanges(partition map[string][]types.Team) MentalModelReport {
	report := MentalModelReport{}

	owners := make([]string, 0, len(partition))
	for id := range partition {
		owners = append(owners, id)
	}
	sort.Strings(owners)

	var lengths [NumCycles][]float64
	var allLengths []float64
	var sims []float64

	for _, id := range owners {
		group := partition[id]
		for c, team := range group {
			if c < NumCycles {
				l := float64(VowelSyllableLength(team.TeamInfo.SharedMentalModel))
				lengths[c] = append(lengths[c], l)
				allLengths = append(allLengths, l)
			}
		}
		for c := 1; c < len(group); c++ {
			before := group[c-1].TeamInfo.SharedMentalModel
			after := group[c].TeamInfo.SharedMentalModel
			sim := Similarity(before, after)
			beforeLen := VowelSyllableLength(before)
			afterLen := VowelSyllableLength(after)
			change := MentalModelChange{
				OwnerID:       id,
				FromCycle:     c,
				ToCycle:       c + 1,
				Before:        before,
				After:         after,
				BeforeLength:  beforeLen,
				AfterLength:   afterLen,
				LengthDelta:   afterLen - beforeLen,
				Similarity:    sim,
				IsIdentical:   sim == 1,
				IsSignificant: sim < SignificantChangeThreshold,
			}
			if change.IsIdentical {
				report.IdenticalCount++
			}
			if change.IsSignificant {
				report.SignificantCount++
			}
			report.Changes = append(report.Changes, change)
			sims = append(sims, sim)
		}
	}

	report.LengthByCycle = types.CycleStats{
		Cycle1: Summarize(lengths[0]),
		Cycle2: Summarize(lengths[1]),
		Cycle3: Summarize(lengths[2]),
		Total:  Summarize(allLengths),
	}
	report.SimilarityStats = Summarize(sims)
	return report
}
