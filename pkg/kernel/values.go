package kernel

import "strings"

type Email string

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return string(e) == "" }

// IsValid is a light sanity check, not a full RFC validation
func (e Email) IsValid() bool {
	s := string(e)
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.Contains(s[at+1:], "@")
}

type Phone string

func (p Phone) String() string { return string(p) }

type FirstName string

func (n FirstName) String() string { return string(n) }

type LastName string

func (n LastName) String() string { return string(n) }

type SearchTitle string

func (t SearchTitle) String() string { return string(t) }

type SearchArea string

func (a SearchArea) String() string { return string(a) }

type SearchLocation string

func (l SearchLocation) String() string { return string(l) }

type SearchDescription string

// FileID is the provider-assigned identifier of a stored document
type FileID string

func (f FileID) String() string { return string(f) }
func (f FileID) IsEmpty() bool  { return string(f) == "" }

// FileURL is a provider-facing access URL for a stored document
type FileURL string

func (u FileURL) String() string { return string(u) }
func (u FileURL) IsEmpty() bool  { return string(u) == "" }
