// Package domain contains domain models for the application.
package domain

import "time"

// Snippet is a named text fragment with a visibility flag.
type Snippet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry is the (name, text) pair returned by store and content search.
type Entry struct {
	Name string `json:"name" yaml:"name"`
	Text string `json:"text" yaml:"text"`
}

// Entry returns the snippet's (name, text) pair.
func (s Snippet) Entry() Entry {
	return Entry{Name: s.Name, Text: s.Text}
}
