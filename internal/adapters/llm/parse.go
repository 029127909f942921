package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"introspect/internal/core/meddpicc"
	perr "introspect/internal/platform/errors"
	"introspect/internal/platform/net/http/bind"
)

var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// extractJSON returns the body of the first ```json fence, else the first
// plain ``` fence, else the trimmed text
func extractJSON(s string) string {
	for _, fence := range []string{"```json", "```"} {
		i := strings.Index(s, fence)
		if i < 0 {
			continue
		}
		rest := s[i+len(fence):]
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(s)
}

func cleanJSON(s string) string {
	return trailingComma.ReplaceAllString(extractJSON(s), "$1")
}

// Verdict is the discovery classification for one transcript
type Verdict struct {
	IsDiscovery bool   `json:"is_discovery_call"`
	Reasoning   string `json:"reasoning"`
}

type rawVerdict struct {
	IsDiscovery *bool  `json:"is_discovery_call" validate:"required"`
	Reasoning   string `json:"reasoning"`
}

func parseVerdict(content string) (Verdict, error) {
	var raw rawVerdict
	if err := json.Unmarshal([]byte(cleanJSON(content)), &raw); err != nil {
		return Verdict{}, perr.Wrap(err, perr.ErrorCodeScoring, "classification is not valid JSON")
	}
	if err := bind.Struct(raw); err != nil {
		return Verdict{}, err
	}
	v := Verdict{IsDiscovery: *raw.IsDiscovery, Reasoning: strings.TrimSpace(raw.Reasoning)}
	if v.Reasoning == "" {
		v.Reasoning = "No reasoning provided"
	}
	return v, nil
}

// Scorecard is the MEDDPICC evaluation of one discovery call
type Scorecard struct {
	Scores  meddpicc.Scores `json:"scores"`
	Summary string          `json:"summary"`
	Notes   meddpicc.Notes  `json:"notes"`
}

type rawDims struct {
	Metrics          *int `json:"metrics" validate:"required,min=0,max=5"`
	EconomicBuyer    *int `json:"economic_buyer" validate:"required,min=0,max=5"`
	DecisionCriteria *int `json:"decision_criteria" validate:"required,min=0,max=5"`
	DecisionProcess  *int `json:"decision_process" validate:"required,min=0,max=5"`
	PaperProcess     *int `json:"paper_process" validate:"required,min=0,max=5"`
	IdentifyPain     *int `json:"identify_pain" validate:"required,min=0,max=5"`
	Champion         *int `json:"champion" validate:"required,min=0,max=5"`
	Competition      *int `json:"competition" validate:"required,min=0,max=5"`
}

func (r rawDims) dims() meddpicc.Dims {
	return meddpicc.Dims{
		Metrics:          *r.Metrics,
		EconomicBuyer:    *r.EconomicBuyer,
		DecisionCriteria: *r.DecisionCriteria,
		DecisionProcess:  *r.DecisionProcess,
		PaperProcess:     *r.PaperProcess,
		IdentifyPain:     *r.IdentifyPain,
		Champion:         *r.Champion,
		Competition:      *r.Competition,
	}
}

type rawScorecard struct {
	Scores  *rawDims        `json:"scores" validate:"required"`
	Summary string          `json:"summary"`
	Notes   *meddpicc.Notes `json:"notes" validate:"required"`
}

func parseScorecard(content string) (Scorecard, error) {
	var raw rawScorecard
	if err := json.Unmarshal([]byte(cleanJSON(content)), &raw); err != nil {
		return Scorecard{}, perr.Wrap(err, perr.ErrorCodeScoring, "scorecard is not valid JSON")
	}
	if err := bind.Struct(raw); err != nil {
		return Scorecard{}, err
	}
	scores, err := meddpicc.New(raw.Scores.dims())
	if err != nil {
		return Scorecard{}, err
	}
	sc := Scorecard{Scores: scores, Summary: strings.TrimSpace(raw.Summary), Notes: *raw.Notes}
	if sc.Summary == "" {
		sc.Summary = "No summary provided"
	}
	return sc, nil
}
