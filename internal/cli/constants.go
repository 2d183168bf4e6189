package cli

import "github.com/glorpus-work/senget/pkg/model"

// Version is the senget release. Self update checks compare against it.
const Version = "0.1.0"

// SelfRepository is the repository senget itself is released from.
var SelfRepository = model.Repository{
	Name:        "Senget",
	FullName:    "SenZmaKi/Senget",
	URL:         "https://github.com/SenZmaKi/Senget",
	Description: "Package manager for Windows",
	Language:    "Go",
	License:     "GNU General Public License v3.0",
}

// Display limits for tabular output.
const (
	// MaxDescriptionLength is the maximum length of a description in search results.
	MaxDescriptionLength = 60
	// MaxErrorLength is the maximum length of an error in a failure table.
	MaxErrorLength = 80
)
