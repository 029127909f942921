package gong

import (
	"encoding/json"
	"time"

	perr "introspect/internal/platform/errors"
)

// User is a partial platform user document
type User struct {
	ID           string `json:"id"`
	EmailAddress string `json:"emailAddress"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
}

// Address returns whichever email field the platform filled in
func (u User) Address() string {
	if u.EmailAddress != "" {
		return u.EmailAddress
	}
	return u.Email
}

// CallMeta is the metaData block of an extensive call
type CallMeta struct {
	ID            string    `json:"id"`
	PrimaryUserID string    `json:"primaryUserId"`
	Title         string    `json:"title"`
	Started       time.Time `json:"started"`
	Duration      int       `json:"duration"`
	URL           string    `json:"url"`
}

// Party is one participant of a call
type Party struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Affiliation  string `json:"affiliation"`
	EmailAddress string `json:"emailAddress"`
	SpeakerID    string `json:"speakerId"`
}

// Call is a partial extensive call document. RepEmail is filled locally
type Call struct {
	MetaData CallMeta `json:"metaData"`
	Parties  []Party  `json:"parties"`
	RepEmail string   `json:"-"`
}

// Sentence is one utterance inside a monologue
type Sentence struct {
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	Text  string `json:"text"`
}

// Monologue groups consecutive sentences of one speaker. SpeakerID is nil
// when the platform omitted it
type Monologue struct {
	SpeakerID *string    `json:"speakerId"`
	Topic     string     `json:"topic"`
	Sentences []Sentence `json:"sentences"`
}

// Transcript is the transcript document for one call. The platform has used
// both "transcript" and "sentences" for the monologue list
type Transcript struct {
	CallID     string      `json:"callId"`
	Transcript []Monologue `json:"transcript"`
	Sentences  []Monologue `json:"sentences"`
}

// Monologues returns the populated monologue list
func (t Transcript) Monologues() []Monologue {
	if len(t.Sentences) > 0 {
		return t.Sentences
	}
	return t.Transcript
}

type usersPage struct {
	Users []User `json:"users"`
}

type callsPage struct {
	Calls []Call `json:"calls"`
}

type transcriptsPage struct {
	CallTranscripts []Transcript `json:"callTranscripts"`
	Transcripts     []Transcript `json:"transcripts"`
}

// decode moves a merged response map into a typed value
func decode[T any](path string, m map[string]any) (T, error) {
	var out T
	b, err := json.Marshal(m)
	if err != nil {
		return out, perr.Wrapf(err, perr.ErrorCodeJSON, "gong %s: re-encode response", path)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, perr.Wrapf(err, perr.ErrorCodeUpstreamParse, "gong %s: unexpected response shape", path)
	}
	return out, nil
}
