package signups

import (
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"
)

// Interest is a topic a subscriber can opt into; each maps to a provider tag.
type Interest string

const (
	InterestPython Interest = "python"
	InterestSQL    Interest = "sql"
)

// Interests lists every known interest in display order.
var Interests = []Interest{InterestPython, InterestSQL}

// Valid reports whether the interest is one the site offers.
func (i Interest) Valid() bool {
	for _, known := range Interests {
		if i == known {
			return true
		}
	}
	return false
}

const maxFirstNameLen = 100

// Field error messages shown next to the form inputs.
const (
	MsgEmailRequired   = "email is required"
	MsgEmailInvalid    = "enter a valid email address"
	MsgFirstNameLength = "first name is too long"
	MsgConsentRequired = "please confirm you want to receive emails"
)

// Input is the data a visitor submits through the join form.
type Input struct {
	Email     string
	FirstName string
	Interests []Interest
	Consent   bool
	Source    string
}

// Normalize trims whitespace, lower-cases the email and drops unknown or repeated interests.
func (in *Input) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.Source = strings.TrimSpace(in.Source)

	seen := make(map[Interest]bool, len(in.Interests))
	out := make([]Interest, 0, len(in.Interests))
	for _, i := range in.Interests {
		i = Interest(strings.ToLower(strings.TrimSpace(string(i))))
		if !i.Valid() || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	in.Interests = out
}

// Validate returns a *ValidationError describing every failing field, or nil.
func (in *Input) Validate() error {
	verr := &ValidationError{Fields: map[string]string{}}

	switch {
	case in.Email == "":
		verr.Fields["email"] = MsgEmailRequired
	case !validEmail(in.Email):
		verr.Fields["email"] = MsgEmailInvalid
	}

	if utf8.RuneCountInString(in.FirstName) > maxFirstNameLen {
		verr.Fields["first_name"] = MsgFirstNameLength
	}

	if !in.Consent {
		verr.Fields["consent"] = MsgConsentRequired
	}

	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

func validEmail(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr || parsed.Name != "" {
		return false
	}
	at := strings.LastIndexByte(addr, '@')
	if at <= 0 {
		return false
	}
	domain := addr[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// ValidationError maps form field names to user-facing messages.
type ValidationError struct {
	Fields map[string]string
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}
	return "invalid signup: " + strings.Join(parts, "; ")
}
