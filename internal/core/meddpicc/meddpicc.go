// Package meddpicc holds the eight dimension qualification score vector and
// the best-ever aggregation used for accounts
package meddpicc

import (
	"math"

	perr "introspect/internal/platform/errors"
)

// Dimension names in canonical order
const (
	Metrics          = "metrics"
	EconomicBuyer    = "economic_buyer"
	DecisionCriteria = "decision_criteria"
	DecisionProcess  = "decision_process"
	PaperProcess     = "paper_process"
	IdentifyPain     = "identify_pain"
	Champion         = "champion"
	Competition      = "competition"
)

// MaxScore is the top of the per dimension scale, the bottom is 0
const MaxScore = 5

var dimensions = []string{
	Metrics, EconomicBuyer, DecisionCriteria, DecisionProcess,
	PaperProcess, IdentifyPain, Champion, Competition,
}

// Dimensions returns the dimension names in canonical order
func Dimensions() []string { return append([]string(nil), dimensions...) }

// Dims is the raw eight dimension vector
type Dims struct {
	Metrics          int `json:"metrics" validate:"min=0,max=5"`
	EconomicBuyer    int `json:"economic_buyer" validate:"min=0,max=5"`
	DecisionCriteria int `json:"decision_criteria" validate:"min=0,max=5"`
	DecisionProcess  int `json:"decision_process" validate:"min=0,max=5"`
	PaperProcess     int `json:"paper_process" validate:"min=0,max=5"`
	IdentifyPain     int `json:"identify_pain" validate:"min=0,max=5"`
	Champion         int `json:"champion" validate:"min=0,max=5"`
	Competition      int `json:"competition" validate:"min=0,max=5"`
}

// Scores is a validated vector plus its derived overall
type Scores struct {
	Dims
	Overall float64 `json:"overall_score"`
}

// Notes carries one explanation per dimension
type Notes struct {
	Metrics          string `json:"metrics" validate:"required"`
	EconomicBuyer    string `json:"economic_buyer" validate:"required"`
	DecisionCriteria string `json:"decision_criteria" validate:"required"`
	DecisionProcess  string `json:"decision_process" validate:"required"`
	PaperProcess     string `json:"paper_process" validate:"required"`
	IdentifyPain     string `json:"identify_pain" validate:"required"`
	Champion         string `json:"champion" validate:"required"`
	Competition      string `json:"competition" validate:"required"`
}

// Values returns the dimensions in canonical order
func (d Dims) Values() [8]int {
	return [8]int{
		d.Metrics, d.EconomicBuyer, d.DecisionCriteria, d.DecisionProcess,
		d.PaperProcess, d.IdentifyPain, d.Champion, d.Competition,
	}
}

// Get returns one dimension by name
func (d Dims) Get(name string) (int, bool) {
	for i, n := range dimensions {
		if n == name {
			return d.Values()[i], true
		}
	}
	return 0, false
}

func fromValues(v [8]int) Dims {
	return Dims{
		Metrics: v[0], EconomicBuyer: v[1], DecisionCriteria: v[2], DecisionProcess: v[3],
		PaperProcess: v[4], IdentifyPain: v[5], Champion: v[6], Competition: v[7],
	}
}

// Validate checks every dimension is inside [0, MaxScore]
func (d Dims) Validate() error {
	for i, v := range d.Values() {
		if v < 0 || v > MaxScore {
			return perr.WithField(
				perr.Newf(perr.ErrorCodeValidation, "%s must be between 0 and %d, got %d", dimensions[i], MaxScore, v),
				dimensions[i],
			)
		}
	}
	return nil
}

// New validates d and derives Overall
func New(d Dims) (Scores, error) {
	if err := d.Validate(); err != nil {
		return Scores{}, err
	}
	return Scores{Dims: d, Overall: Overall(d)}, nil
}

// Overall is the mean of the eight dimensions rounded half to even at one decimal
func Overall(d Dims) float64 {
	sum := 0
	for _, v := range d.Values() {
		sum += v
	}
	return math.RoundToEven(float64(sum)/float64(len(dimensions))*10) / 10
}

// Recompute rebuilds Overall from the dimensions, discarding whatever was stored
func (s Scores) Recompute() Scores {
	s.Overall = Overall(s.Dims)
	return s
}

// Aggregate folds per call scores into the account vector: each dimension is
// the max across calls and Overall is the max per call Overall, not the mean
// of the maxed dimensions
func Aggregate(calls []Scores) Scores {
	if len(calls) == 0 {
		return Scores{}
	}
	var best [8]int
	bestOverall := 0.0
	for _, c := range calls {
		for i, v := range c.Values() {
			best[i] = max(best[i], v)
		}
		bestOverall = math.Max(bestOverall, Overall(c.Dims))
	}
	return Scores{Dims: fromValues(best), Overall: bestOverall}
}
