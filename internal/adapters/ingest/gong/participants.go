package gong

import (
	"strings"

	pstrings "introspect/internal/platform/strings"
)

const (
	affiliationExternal = "External"
	affiliationUnknown  = "Unknown"
)

// Participants splits a call's identities into the two sides
type Participants struct {
	Internal []string `json:"internal"`
	External []string `json:"external"`
}

// Classifier applies the external party rule for one organisation
type Classifier struct {
	internalDomain string
}

// NewClassifier binds the organisation's own email domain
func NewClassifier(internalDomain string) Classifier {
	return Classifier{internalDomain: strings.ToLower(strings.TrimSpace(internalDomain))}
}

// IsExternal reports whether p is outside the organisation. An explicit
// External affiliation always wins; Unknown falls back to the email domain
func (c Classifier) IsExternal(p Party) bool {
	aff := strings.TrimSpace(p.Affiliation)
	if aff == affiliationExternal {
		return true
	}
	email := strings.ToLower(strings.TrimSpace(p.EmailAddress))
	if aff == affiliationUnknown && strings.Contains(email, "@") {
		return pstrings.EmailDomain(email) != c.internalDomain
	}
	return false
}

// HasExternalParticipant reports whether any party of call is external
func (c Classifier) HasExternalParticipant(call Call) bool {
	for _, p := range call.Parties {
		if c.IsExternal(p) {
			return true
		}
	}
	return false
}

// ExtractParticipants classifies every party that has an email
func (c Classifier) ExtractParticipants(call Call) Participants {
	var out Participants
	for _, p := range call.Parties {
		email := strings.TrimSpace(p.EmailAddress)
		if email == "" {
			continue
		}
		if c.IsExternal(p) {
			out.External = append(out.External, email)
		} else {
			out.Internal = append(out.Internal, email)
		}
	}
	return out
}
