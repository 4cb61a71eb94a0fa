// Package schema describes the profiles table targeted by the converter and
// the mapping from verified identity-link records onto it.
package schema

import (
	"tsv2sql/internal/sqlgen"
	"tsv2sql/pkg/records"
)

// Table is the fully-qualified name of the target table.
const Table = "profiles"

// Input column names expected in the TSV header (after normalization).
const (
	ColDiscordID  = "discord_id"
	ColVRChatID   = "vrchat_id"
	ColVRChatName = "vrchat_name"
	ColAddedAt    = "added_at"
)

// RequiredColumns lists the input columns every row must provide non-empty.
var RequiredColumns = []string{ColDiscordID, ColVRChatID, ColVRChatName, ColAddedAt}

// Columns is the profiles column list in insert order.
var Columns = []string{
	"discord_id",
	"vrchat_id",
	"vrchat_name",
	"added_at",
	"updated_at",
	"created_by",
	"updated_by",
	"is_verified",
	"verification_id",
	"verified_at",
	"verified_from",
	"verified_by",
}

// Profile mirrors one row of the profiles table as emitted by the converter.
// Only the variable columns are carried; updated_at, is_verified and
// verification_id are fixed SQL tokens supplied at render time.
type Profile struct {
	DiscordID    string `db:"discord_id"`
	VRChatID     string `db:"vrchat_id"`
	VRChatName   string `db:"vrchat_name"`
	AddedAt      string `db:"added_at"`
	CreatedBy    string `db:"created_by"`
	UpdatedBy    string `db:"updated_by"`
	VerifiedAt   string `db:"verified_at"`
	VerifiedFrom string `db:"verified_from"`
	VerifiedBy   string `db:"verified_by"`
}

// FromRecord builds a Profile from one validated input record. The admin and
// group identifiers are stamped onto every row: the admin acts as updater and
// verifier, the group as the verification source. Creation is attributed to
// the linked Discord account itself, and verification time mirrors the time
// the link was added.
func FromRecord(rec records.Record, adminID, groupID string) Profile {
	discordID := rec.Get(ColDiscordID)
	addedAt := rec.Get(ColAddedAt)
	return Profile{
		DiscordID:    discordID,
		VRChatID:     rec.Get(ColVRChatID),
		VRChatName:   rec.Get(ColVRChatName),
		AddedAt:      addedAt,
		CreatedBy:    discordID,
		UpdatedBy:    adminID,
		VerifiedAt:   addedAt,
		VerifiedFrom: groupID,
		VerifiedBy:   adminID,
	}
}

// Values returns the row tuple in Columns order, ready for sqlgen rendering.
func (p Profile) Values() []sqlgen.Value {
	return []sqlgen.Value{
		sqlgen.String(p.DiscordID),
		sqlgen.String(p.VRChatID),
		sqlgen.String(p.VRChatName),
		sqlgen.String(p.AddedAt),
		sqlgen.Raw("CURRENT_TIMESTAMP"), // updated_at
		sqlgen.String(p.CreatedBy),
		sqlgen.String(p.UpdatedBy),
		sqlgen.Raw("TRUE"), // is_verified
		sqlgen.Raw("1"),    // verification_id
		sqlgen.String(p.VerifiedAt),
		sqlgen.String(p.VerifiedFrom),
		sqlgen.String(p.VerifiedBy),
	}
}
