// Package service runs the discovery pipeline: resolve reps, fetch their
// external calls, classify, score and record each call once
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"introspect/internal/adapters/ingest/gong"
	perr "introspect/internal/platform/errors"
	"introspect/internal/platform/logger"
	"introspect/internal/platform/metrics"
	pstrings "introspect/internal/platform/strings"
	accdom "introspect/internal/services/accounts/domain"
	"introspect/internal/services/events"
	"introspect/internal/services/pipeline/domain"
)

// DefaultLookbackDays applies when neither the request nor Config set a window
const DefaultLookbackDays = 7

// Config holds run defaults
type Config struct {
	LookbackDays int
}

// Service implements domain.RunnerPort
type Service struct {
	src     domain.CallSource
	eval    domain.Evaluator
	ledger  domain.Ledger
	rec     domain.Recorder
	roster  domain.Roster
	events  events.Sink
	metrics *metrics.Metrics
	cfg     Config

	now   func() time.Time
	newID func() string
}

var _ domain.RunnerPort = (*Service)(nil)

// New constructs the pipeline. roster, sink and m may be nil
func New(
	src domain.CallSource,
	eval domain.Evaluator,
	ledger domain.Ledger,
	rec domain.Recorder,
	roster domain.Roster,
	sink events.Sink,
	m *metrics.Metrics,
	cfg Config,
) *Service {
	if src == nil || eval == nil || ledger == nil || rec == nil {
		panic("pipeline.Service requires source, evaluator, ledger and recorder")
	}
	if sink == nil {
		sink = events.Nop{}
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = DefaultLookbackDays
	}
	return &Service{
		src: src, eval: eval, ledger: ledger, rec: rec, roster: roster,
		events: sink, metrics: m, cfg: cfg,
		now: time.Now, newID: uuid.NewString,
	}
}

// Run evaluates every new qualifying call of the selected reps. Reps run in
// email order and calls one at a time; a failing call is counted and the run
// moves on. Only run level problems (no reps, rejected credentials, the call
// listing itself failing) return an error
func (s *Service) Run(ctx context.Context, req domain.RunRequest) (sum domain.RunSummary, err error) {
	started := s.now()
	sum = domain.RunSummary{
		RunID:        s.newID(),
		StartedAt:    started,
		LookbackDays: req.LookbackDays,
		Reps:         []string{},
		Results:      []domain.CallResult{},
		PerRep:       []domain.RepSummary{},
	}
	if sum.LookbackDays <= 0 {
		sum.LookbackDays = s.cfg.LookbackDays
	}
	ctx = logger.WithRun(ctx, sum.RunID)
	log := logger.C(ctx)

	defer func() {
		sum.FinishedAt = s.now()
		s.metrics.RunFinished(sum.FinishedAt.Sub(started), err)
		if ferr := s.events.Flush(context.WithoutCancel(ctx)); ferr != nil {
			log.Warn().Err(ferr).Msg("evaluation events not delivered")
		}
		ev := log.Info()
		if err != nil {
			ev = log.Error().Err(err)
		}
		ev.Int("processed", sum.Processed).
			Int("skipped", sum.Skipped).
			Int("failed", sum.Failed).
			Int("discovery", sum.Discovery).
			Dur("took", sum.FinishedAt.Sub(started)).
			Msg("run finished")
	}()

	emails, err := s.targets(ctx, req.Emails)
	if err != nil {
		return sum, err
	}
	log.Info().Strs("reps", emails).Int("lookback_days", sum.LookbackDays).Msg("run started")

	ids, err := s.src.ResolveIdentities(ctx, emails)
	if err != nil {
		return sum, perr.WithOp(err, "resolve reps")
	}
	for _, e := range emails {
		if _, ok := ids[e]; ok {
			sum.Reps = append(sum.Reps, e)
		} else {
			sum.Unmatched = append(sum.Unmatched, e)
		}
	}
	if len(sum.Reps) == 0 {
		log.Warn().Msg("no rep matched a platform user")
		return sum, nil
	}

	calls, err := s.src.FetchCalls(ctx, ids, sum.LookbackDays)
	if err != nil {
		return sum, perr.WithOp(err, "fetch calls")
	}
	callIDs := make([]string, 0, len(calls))
	byRep := make(map[string][]gong.Call, len(sum.Reps))
	for _, rep := range sum.Reps {
		byRep[rep] = nil
	}
	var orphans []gong.Call
	for _, c := range calls {
		if _, ok := byRep[c.RepEmail]; !ok {
			orphans = append(orphans, c)
			continue
		}
		callIDs = append(callIDs, c.MetaData.ID)
		byRep[c.RepEmail] = append(byRep[c.RepEmail], c)
	}

	transcripts := map[string]string{}
	if len(callIDs) > 0 {
		transcripts, err = s.src.FetchTranscripts(ctx, callIDs)
		if err != nil {
			if gong.IsAuthRejected(err) {
				return sum, perr.WithOp(err, "fetch transcripts")
			}
			log.Warn().Err(err).Int("calls", len(callIDs)).Msg("transcripts unavailable, calls left for the next run")
			transcripts, err = map[string]string{}, nil
		}
	}

	for _, rep := range sum.Reps {
		rs := domain.RepSummary{Email: rep, Calls: len(byRep[rep])}
		log.Info().Str("rep", rep).Int("calls", rs.Calls).Msg("rep started")
		for _, c := range byRep[rep] {
			if cerr := ctx.Err(); cerr != nil {
				sum.PerRep = append(sum.PerRep, rs)
				return sum, cerr
			}
			res := s.evaluate(ctx, c, transcripts[c.MetaData.ID])
			sum.Add(&rs, res)
			s.metrics.CallOutcome(res.Outcome)
			if res.Outcome == domain.OutcomeProcessed && res.IsDiscovery {
				s.metrics.CallOutcome("discovery")
			}
			s.emit(ctx, sum.RunID, res)
		}
		sum.PerRep = append(sum.PerRep, rs)
		log.Info().
			Str("rep", rep).
			Int("processed", rs.Processed).
			Int("skipped", rs.Skipped).
			Int("failed", rs.Failed).
			Int("discovery", rs.Discovery).
			Msg("rep finished")
	}

	if len(orphans) > 0 {
		ids := make([]string, 0, len(orphans))
		var rs domain.RepSummary
		for _, c := range orphans {
			ids = append(ids, c.MetaData.ID)
			res := skipped(result(c), domain.SkipNoRep)
			sum.Add(&rs, res)
			s.metrics.CallOutcome(res.Outcome)
		}
		log.Warn().Strs("call_ids", ids).Int("calls", len(ids)).Msg("calls owned by no selected rep skipped")
	}
	return sum, nil
}

// targets folds, dedupes and sorts the requested emails, falling back to the roster
func (s *Service) targets(ctx context.Context, emails []string) ([]string, error) {
	out := pstrings.Dedupe(emails, pstrings.FoldEmail)
	if len(out) > 0 {
		return out, nil
	}
	if s.roster != nil {
		all, err := s.roster.Emails(ctx)
		if err != nil {
			return nil, err
		}
		out = pstrings.Dedupe(all, pstrings.FoldEmail)
	}
	if len(out) == 0 {
		return nil, perr.Configf("no sales reps to analyze: pass rep emails or load the roster")
	}
	return out, nil
}

func result(c gong.Call) domain.CallResult {
	return domain.CallResult{
		CallID:   c.MetaData.ID,
		RepEmail: c.RepEmail,
		Title:    c.MetaData.Title,
		Link:     gong.CallLink(c.MetaData.ID),
		CallDate: c.MetaData.Started,
	}
}

func (s *Service) evaluate(ctx context.Context, c gong.Call, transcript string) domain.CallResult {
	id := c.MetaData.ID
	res := result(c)
	log := logger.C(ctx).With().Str("rep", c.RepEmail).Str("call_id", id).Logger()

	if strings.TrimSpace(transcript) == "" {
		log.Info().Msg("call skipped: no transcript")
		return skipped(res, domain.SkipNoTranscript)
	}
	done, err := s.ledger.Exists(ctx, id)
	if err != nil {
		return failed(&log, res, err)
	}
	if done {
		log.Info().Msg("call skipped: already evaluated")
		return skipped(res, domain.SkipEvaluated)
	}

	v, err := s.eval.Classify(ctx, transcript)
	if err != nil {
		return failed(&log, res, err)
	}
	res.IsDiscovery, res.Reason = v.IsDiscovery, v.Reasoning
	ev := domain.Evaluation{CallID: id, IsDiscovery: v.IsDiscovery, Reason: v.Reasoning}

	if v.IsDiscovery {
		card, err := s.eval.Score(ctx, transcript)
		if err != nil {
			return failed(&log, res, err)
		}
		scores := card.Scores
		res.Scores = &scores

		parts := s.src.ExtractParticipants(c)
		if len(parts.External) > 0 {
			notes := card.Notes
			ev.Domain = accdom.NormalizeDomain(pstrings.EmailDomain(parts.External[0]))
			ev.Call = &accdom.Call{
				CallID:               id,
				CallDate:             c.MetaData.Started,
				SalesRep:             c.RepEmail,
				ExternalParticipants: parts.External,
				Scores:               scores,
				Summary:              card.Summary,
				Notes:                &notes,
			}
			res.Domain = ev.Domain
		} else {
			log.Warn().Msg("discovery call has no external email, ledger only")
		}
	}

	if err := s.rec.Record(ctx, ev); err != nil {
		return failed(&log, res, err)
	}
	res.Outcome = domain.OutcomeProcessed

	e := log.Info().Bool("discovery", res.IsDiscovery)
	if res.Scores != nil {
		e = e.Float64("overall", res.Scores.Overall).Str("domain", res.Domain)
	} else {
		e = e.Str("reason", res.Reason)
	}
	e.Msg("call evaluated")
	return res
}

func skipped(res domain.CallResult, reason string) domain.CallResult {
	res.Outcome, res.Reason = domain.OutcomeSkipped, reason
	return res
}

func failed(log *logger.Logger, res domain.CallResult, err error) domain.CallResult {
	log.Error().Err(err).Str("code", perr.CodeOf(err).String()).Msg("call failed")
	res.Outcome, res.Error = domain.OutcomeFailed, err.Error()
	return res
}

// emit sends processed and failed calls to the event sink; sink errors only log
func (s *Service) emit(ctx context.Context, runID string, r domain.CallResult) {
	outcome := events.OutcomeEvaluated
	switch r.Outcome {
	case domain.OutcomeSkipped:
		return
	case domain.OutcomeFailed:
		outcome = events.OutcomeFailed
	}
	err := s.events.Record(ctx, events.Event{
		RunID:       runID,
		CallID:      r.CallID,
		RepEmail:    r.RepEmail,
		Domain:      r.Domain,
		CallDate:    r.CallDate,
		Outcome:     outcome,
		IsDiscovery: r.IsDiscovery,
		Reason:      r.Reason,
		Scores:      r.Scores,
		Error:       r.Error,
		EvaluatedAt: s.now(),
	})
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("call_id", r.CallID).Msg("evaluation event dropped")
	}
}
