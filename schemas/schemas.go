// Package schemas embeds the JSON Schemas of every value the toolkit
// persists.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var files embed.FS

// Schema file names.
const (
	StepProgress   = "step_progress.schema.json"
	ContentLibrary = "content_library.schema.json"
	UserProfile    = "user_profile.schema.json"
	GeneratedCopy  = "generated_copy.schema.json"
)

// All lists every embedded schema.
var All = []string{StepProgress, ContentLibrary, UserProfile, GeneratedCopy}

// Load returns the schema document with the given file name.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s: %w", name, err)
	}
	return string(data), nil
}

// MustLoad is like Load but panics if the schema is missing.
func MustLoad(name string) string {
	s, err := Load(name)
	if err != nil {
		panic(err)
	}
	return s
}
