// This file adds a lightweight linter/validator for Job values. It performs
// static checks over a decoded Job and returns a list of issues (errors and
// warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Job.
//
// Path is a dotted path into the config (e.g. "dedup.policy"). Message is
// human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation of a Job.
//
// It does not mutate the job. Instead it returns a slice of Issue values.
// Callers may decide whether to treat warnings as fatal or not.
func Validate(j Job) []Issue {
	var issues []Issue

	if strings.TrimSpace(j.Input) == "" {
		issues = append(issues, Issue{SeverityError, "input", "input path or URL is required"})
	}
	if strings.TrimSpace(j.Output) == "" {
		issues = append(issues, Issue{SeverityError, "output", "output path is required"})
	}

	checkID := func(path, v string) {
		switch {
		case strings.TrimSpace(v) == "":
			issues = append(issues, Issue{SeverityError, path, "identifier is required"})
		case !allDigits(v):
			// Discord snowflakes are decimal digit strings; anything else is
			// probably a paste error, but the converter will still emit it.
			issues = append(issues, Issue{SeverityWarning, path, fmt.Sprintf("%q does not look like a snowflake id", v)})
		}
	}
	checkID("admin_id", j.AdminID)
	checkID("group_id", j.GroupID)

	switch strings.ToLower(strings.TrimSpace(j.Dialect)) {
	case "", "standard", "postgres", "postgresql":
	default:
		issues = append(issues, Issue{SeverityError, "dialect", fmt.Sprintf("unknown dialect %q", j.Dialect)})
	}

	for k, v := range j.HeaderMap {
		if strings.TrimSpace(v) == "" {
			issues = append(issues, Issue{SeverityError, "header_map." + k, "mapped name must not be empty"})
		}
	}

	switch strings.ToLower(strings.TrimSpace(j.Dedup.Policy)) {
	case "", "keep-first", "keep-last":
	default:
		issues = append(issues, Issue{SeverityError, "dedup.policy", fmt.Sprintf("unknown policy %q", j.Dedup.Policy)})
	}
	if j.Dedup.Policy != "" && !j.Dedup.Enabled {
		issues = append(issues, Issue{SeverityWarning, "dedup.policy", "policy is set but dedup is not enabled"})
	}

	return issues
}

// HasError reports whether any issue in the slice is of error severity.
func HasError(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
