// Package config defines the canonical, JSON-serializable configuration model
// for the converter. It is intentionally small, explicit, and dependency-free
// so that jobs can be loaded from disk (or built from flags) and passed
// through the program without additional glue code.
//
// Design goals:
//
//  1. Stability: Changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: Field names in Go mirror the JSON structure used in job files.
//  3. Minimalism: No third-party config libraries; decoding is performed by
//     the standard library.
//
// Example:
//
//	{
//	  "job":      "prod-seed",
//	  "input":    "data.tsv",
//	  "output":   "poblate-prod.sql",
//	  "admin_id": "356253258613915663",
//	  "group_id": "1392882468704489552",
//	  "dialect":  "standard",
//	  "header_map": { "Member Snowflake": "discord_id" },
//	  "dedup": { "enabled": true, "policy": "keep-first" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Default configuration values. The admin and group identifiers are the
// authority and verification source stamped onto every emitted row.
const (
	DefaultInput   = "data.tsv"
	DefaultOutput  = "poblate-prod.sql"
	DefaultAdminID = "356253258613915663"
	DefaultGroupID = "1392882468704489552"
)

// Job describes one conversion run. It is the top-level object decoded from
// a job file.
type Job struct {
	// Name identifies the job in logs and metrics.
	Name string `json:"job,omitempty"`

	// Input is a local TSV path or an http(s) URL.
	Input string `json:"input"`

	// Output is the path of the SQL file to write.
	Output string `json:"output"`

	// AdminID is stamped as updated_by and verified_by on every row.
	AdminID string `json:"admin_id"`

	// GroupID is stamped as verified_from on every row.
	GroupID string `json:"group_id"`

	// Dialect selects the literal escaper: "standard" (default) or "postgres".
	Dialect string `json:"dialect,omitempty"`

	// HeaderMap maps source header names (raw or normalized form) to
	// canonical column names, for inputs whose headers drifted from the
	// expected discord_id / vrchat_id / vrchat_name / added_at set.
	HeaderMap map[string]string `json:"header_map,omitempty"`

	// Dedup configures optional in-batch de-duplication. Disabled by
	// default: duplicate source rows are emitted as-is.
	Dedup Dedup `json:"dedup,omitempty"`
}

// Dedup holds the de-duplication options for a job.
type Dedup struct {
	Enabled bool `json:"enabled,omitempty"`

	// Policy selects the winner among duplicates: "keep-first" (default)
	// or "keep-last".
	Policy string `json:"policy,omitempty"`
}

// Default returns a Job populated with the built-in defaults.
func Default() Job {
	return Job{
		Input:   DefaultInput,
		Output:  DefaultOutput,
		AdminID: DefaultAdminID,
		GroupID: DefaultGroupID,
	}
}

// Load decodes a Job from the JSON file at path and fills unset fields from
// the defaults. Unknown fields are rejected so typos in job files surface
// immediately instead of silently configuring nothing.
func Load(path string) (Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return Job{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	var j Job
	if err := dec.Decode(&j); err != nil {
		return Job{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return j.withDefaults(), nil
}

// withDefaults fills empty fields from Default.
func (j Job) withDefaults() Job {
	d := Default()
	if j.Input == "" {
		j.Input = d.Input
	}
	if j.Output == "" {
		j.Output = d.Output
	}
	if j.AdminID == "" {
		j.AdminID = d.AdminID
	}
	if j.GroupID == "" {
		j.GroupID = d.GroupID
	}
	return j
}
