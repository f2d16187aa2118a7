// Package report describes the outcome of a single embed or extract run,
// adapted from the teacher's pkg/models.AnalysisResult for a domain with
// one known algorithm rather than an open set of guessed ones.
package report

import "time"

// Report is what the CLI driver prints after an embed or extract run.
type Report struct {
	Filename       string
	CapacityBefore int
	CapacityAfter  int
	Entropy        float64
	LSBParityZeros int
	LSBParityOnes  int
	Findings       []string
	Duration       time.Duration
}

// AddFinding appends a human-readable note to the report, mirroring the
// teacher's AnalysisResult.AddFinding.
func (r *Report) AddFinding(msg string) {
	r.Findings = append(r.Findings, msg)
}

// RecordParity tallies data's bit values into the report's LSB-parity
// counters, the statistic the reference CLI prints before and after an
// embed to show the histogram-preserving property in action.
func (r *Report) RecordParity(data []byte) {
	for _, b := range data {
		for bit := 0; bit < 8; bit++ {
			if (b>>uint(bit))&1 == 0 {
				r.LSBParityZeros++
			} else {
				r.LSBParityOnes++
			}
		}
	}
}
