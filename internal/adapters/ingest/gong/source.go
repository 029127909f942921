package gong

import (
	"context"
	"strings"
	"time"

	"introspect/internal/platform/logger"
	pstrings "introspect/internal/platform/strings"
)

const callLinkBase = "https://app.gong.io/call?id="

// API is the endpoint surface Source needs
type API interface {
	ListUsers(ctx context.Context) ([]User, error)
	SearchCalls(ctx context.Context, from, to time.Time, userIDs []string) ([]Call, error)
	Transcripts(ctx context.Context, callIDs []string) ([]Transcript, error)
}

// SourceOptions configures a Source
type SourceOptions struct {
	InternalDomain  string
	TranscriptChunk int
}

// Source produces qualifying calls and their transcripts for a set of reps
type Source struct {
	api   API
	cls   Classifier
	chunk int
	log   logger.Logger
	now   func() time.Time
}

// NewSource wires a Source over api
func NewSource(api API, o SourceOptions) *Source {
	if api == nil {
		panic("gong.NewSource: nil API")
	}
	if o.TranscriptChunk <= 0 {
		o.TranscriptChunk = DefaultTranscriptChunk
	}
	return &Source{
		api:   api,
		cls:   NewClassifier(o.InternalDomain),
		chunk: o.TranscriptChunk,
		log:   *logger.Named("gong"),
		now:   time.Now,
	}
}

// Classifier returns the party rule in use
func (s *Source) Classifier() Classifier { return s.cls }

// ResolveIdentities maps folded emails to platform user ids. Emails without a
// matching user are left out of the result
func (s *Source) ResolveIdentities(ctx context.Context, emails []string) (map[string]string, error) {
	targets := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if e = pstrings.FoldEmail(e); e != "" {
			targets[e] = struct{}{}
		}
	}
	if len(targets) == 0 {
		return map[string]string{}, nil
	}

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(targets))
	for _, u := range users {
		email := pstrings.FoldEmail(u.Address())
		if _, ok := targets[email]; ok && u.ID != "" {
			out[email] = u.ID
		}
	}
	for e := range targets {
		if _, ok := out[e]; !ok {
			s.log.Debug().Str("email", e).Msg("no platform user for rep")
		}
	}
	return out, nil
}

// FetchCalls returns calls from the last lookbackDays owned by the resolved
// identities that have at least one external party, each tagged with its rep
func (s *Source) FetchCalls(ctx context.Context, identities map[string]string, lookbackDays int) ([]Call, error) {
	if len(identities) == 0 {
		return nil, nil
	}
	byID := make(map[string]string, len(identities))
	ids := make([]string, 0, len(identities))
	for email, id := range identities {
		byID[id] = email
		ids = append(ids, id)
	}

	to := s.now().UTC()
	from := to.AddDate(0, 0, -lookbackDays)
	calls, err := s.api.SearchCalls(ctx, from, to, ids)
	if err != nil {
		return nil, err
	}

	out := calls[:0]
	for _, c := range calls {
		if !s.cls.HasExternalParticipant(c) {
			continue
		}
		c.RepEmail = byID[c.MetaData.PrimaryUserID]
		out = append(out, c)
	}
	s.log.Info().
		Int("fetched", len(calls)).
		Int("with_external", len(out)).
		Int("lookback_days", lookbackDays).
		Msg("calls fetched")
	return out, nil
}

// FetchTranscripts returns call id to transcript text. Calls whose transcript
// has no segments map to ""
func (s *Source) FetchTranscripts(ctx context.Context, callIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(callIDs))
	for start := 0; start < len(callIDs); start += s.chunk {
		end := min(start+s.chunk, len(callIDs))
		batch, err := s.api.Transcripts(ctx, callIDs[start:end])
		if err != nil {
			return nil, err
		}
		for _, t := range batch {
			if t.CallID == "" {
				continue
			}
			out[t.CallID] = JoinTranscript(t)
		}
	}
	return out, nil
}

// ExtractParticipants classifies the parties of call
func (s *Source) ExtractParticipants(call Call) Participants { return s.cls.ExtractParticipants(call) }

// HasExternalParticipant reports whether call has an external party
func (s *Source) HasExternalParticipant(call Call) bool { return s.cls.HasExternalParticipant(call) }

// JoinTranscript renders one "[speaker]: text" line per non-empty sentence.
// A missing speaker id renders as Unknown, an empty one as "[]"
func JoinTranscript(t Transcript) string {
	var b strings.Builder
	for _, m := range t.Monologues() {
		speaker := "Unknown"
		if m.SpeakerID != nil {
			speaker = *m.SpeakerID
		}
		for _, s := range m.Sentences {
			if s.Text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString("[" + speaker + "]: " + s.Text)
		}
	}
	return b.String()
}

// CallLink is the browser link for a call id
func CallLink(callID string) string { return callLinkBase + callID }
