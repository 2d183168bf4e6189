// Package model provides the data structures shared by the resolver, the
// installers, the package database and the CLI.
package model

import (
	"fmt"
	"strings"
)

// Repository identifies a GitHub repository that publishes a package.
type Repository struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"` // owner/name
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	License     string `json:"license,omitempty"`
}

// Matches reports whether query names this repository, comparing the short
// name and the full name case-insensitively.
func (r Repository) Matches(query string) bool {
	return strings.EqualFold(r.Name, query) || strings.EqualFold(r.FullName, query)
}

// Author returns the owner part of the full name.
func (r Repository) Author() string {
	owner, _, _ := strings.Cut(r.FullName, "/")
	return owner
}

func (r Repository) String() string {
	return fmt.Sprintf("Name: %s\nAuthor: %s\nDescription: %s\nRepository: %s\nPrimary Language: %s\nLicense: %s",
		r.Name, r.Author(), r.Description, r.URL, r.Language, r.License)
}
