package gong

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type fakeAPI struct {
	users       []User
	calls       []Call
	transcripts map[string]Transcript

	userCalls   int
	searchCalls int
	from, to    time.Time
	userIDs     []string
	batches     [][]string
	err         error
}

func (f *fakeAPI) ListUsers(context.Context) ([]User, error) {
	f.userCalls++
	return f.users, f.err
}

func (f *fakeAPI) SearchCalls(_ context.Context, from, to time.Time, ids []string) ([]Call, error) {
	f.searchCalls++
	f.from, f.to, f.userIDs = from, to, ids
	return f.calls, f.err
}

func (f *fakeAPI) Transcripts(_ context.Context, ids []string) ([]Transcript, error) {
	f.batches = append(f.batches, append([]string(nil), ids...))
	var out []Transcript
	for _, id := range ids {
		if t, ok := f.transcripts[id]; ok {
			out = append(out, t)
		}
	}
	return out, f.err
}

func TestResolveIdentities(t *testing.T) {
	api := &fakeAPI{users: []User{
		{ID: "u1", EmailAddress: "Alice@Co.com "},
		{ID: "u2", Email: "bob@co.com"},
		{ID: "u3", EmailAddress: "carol@co.com"},
	}}
	s := NewSource(api, SourceOptions{InternalDomain: "co.com"})

	got, err := s.ResolveIdentities(context.Background(), []string{" alice@co.com", "BOB@co.com", "ghost@co.com", ""})
	if err != nil {
		t.Fatalf("ResolveIdentities: %v", err)
	}
	if len(got) != 2 || got["alice@co.com"] != "u1" || got["bob@co.com"] != "u2" {
		t.Fatalf("identities = %v", got)
	}

	got, err = s.ResolveIdentities(context.Background(), nil)
	if err != nil || len(got) != 0 || api.userCalls != 1 {
		t.Fatalf("empty input = %v, %v (user calls %d)", got, err, api.userCalls)
	}
}

func TestFetchCalls(t *testing.T) {
	api := &fakeAPI{calls: []Call{
		{MetaData: CallMeta{ID: "c1", PrimaryUserID: "u1"}, Parties: []Party{
			{Affiliation: "Internal", EmailAddress: "alice@co.com"},
			{Affiliation: "Unknown", EmailAddress: "bob@co.com"},
		}},
		{MetaData: CallMeta{ID: "c2", PrimaryUserID: "u1"}, Parties: []Party{
			{Affiliation: "Internal", EmailAddress: "alice@co.com"},
			{Affiliation: "External", EmailAddress: "ann@client.com"},
		}},
	}}
	s := NewSource(api, SourceOptions{InternalDomain: "co.com"})
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	got, err := s.FetchCalls(context.Background(), map[string]string{"alice@co.com": "u1"}, 7)
	if err != nil {
		t.Fatalf("FetchCalls: %v", err)
	}
	if len(got) != 1 || got[0].MetaData.ID != "c2" || got[0].RepEmail != "alice@co.com" {
		t.Fatalf("calls = %+v", got)
	}
	if !api.to.Equal(now) || !api.from.Equal(now.AddDate(0, 0, -7)) {
		t.Fatalf("window = %v .. %v", api.from, api.to)
	}
	if len(api.userIDs) != 1 || api.userIDs[0] != "u1" {
		t.Fatalf("user ids = %v", api.userIDs)
	}
}

func TestFetchCalls_NoIdentitiesSkipsRequest(t *testing.T) {
	api := &fakeAPI{}
	got, err := NewSource(api, SourceOptions{}).FetchCalls(context.Background(), nil, 7)
	if err != nil || len(got) != 0 || api.searchCalls != 0 {
		t.Fatalf("FetchCalls = %v, %v (search calls %d)", got, err, api.searchCalls)
	}
}

func speaker(id string) *string { return &id }

func TestFetchTranscripts(t *testing.T) {
	api := &fakeAPI{transcripts: map[string]Transcript{
		"c1": {CallID: "c1", Transcript: []Monologue{
			{SpeakerID: speaker("s1"), Sentences: []Sentence{{Text: "Hi there."}}},
			{SpeakerID: speaker("s2"), Sentences: []Sentence{{Text: "Hello."}, {Text: ""}, {Text: "What hurts?"}}},
		}},
		"c2": {CallID: "c2"},
		"c3": {CallID: "c3", Sentences: []Monologue{{Sentences: []Sentence{{Text: "legacy shape"}}}}},
	}}
	s := NewSource(api, SourceOptions{TranscriptChunk: 2})

	got, err := s.FetchTranscripts(context.Background(), []string{"c1", "c2", "c3"})
	if err != nil {
		t.Fatalf("FetchTranscripts: %v", err)
	}
	want := "[s1]: Hi there.\n[s2]: Hello.\n[s2]: What hurts?"
	if got["c1"] != want {
		t.Fatalf("c1 = %q, want %q", got["c1"], want)
	}
	if v, ok := got["c2"]; !ok || v != "" {
		t.Fatalf("empty transcript should map to \"\": %q %v", v, ok)
	}
	if got["c3"] != "[Unknown]: legacy shape" {
		t.Fatalf("c3 = %q", got["c3"])
	}
	if len(api.batches) != 2 || len(api.batches[0]) != 2 || len(api.batches[1]) != 1 {
		t.Fatalf("batches = %v", api.batches)
	}
}

func TestJoinTranscript_SpeakerIDs(t *testing.T) {
	var tr Transcript
	body := `{"callId":"c9","transcript":[
		{"speakerId":"s1","sentences":[{"text":"named"}]},
		{"speakerId":"","sentences":[{"text":"blank id"}]},
		{"sentences":[{"text":"no id"},{"text":""}]}
	]}`
	if err := json.Unmarshal([]byte(body), &tr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := "[s1]: named\n[]: blank id\n[Unknown]: no id"
	if got := JoinTranscript(tr); got != want {
		t.Fatalf("JoinTranscript = %q, want %q", got, want)
	}
}

func TestFetchTranscripts_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewSource(&fakeAPI{err: boom}, SourceOptions{}).FetchTranscripts(context.Background(), []string{"c1"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestCallLink(t *testing.T) {
	if got := CallLink("123"); got != "https://app.gong.io/call?id=123" {
		t.Fatalf("CallLink = %q", got)
	}
}
