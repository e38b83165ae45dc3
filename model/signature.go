package model

// Spell types recorded in the signatures table.
const (
	SpellHex    = "hex"
	SpellShield = "shield"
	SpellMend   = "mend"
)

// Signature represents one cast spell's active effect. The table is named
// 'signatures'; the primary key (guild_id, caster_id, day) is what enforces
// the one-action-per-day rule. Shield signatures always target the caster.
type Signature struct {
	GuildID   string `db:"guild_id"`
	CasterID  string `db:"caster_id"`
	TargetID  string `db:"target_id"`
	Type      string `db:"type"`
	Day       int64  `db:"day"` // game-day counter value at cast time
	CreatedAt int64  `db:"created_at"`
	ExpiresAt int64  `db:"expires_at"`
}

// Claim is a player-authored public statement about a train. It has no game
// effect. The table is named 'claims'.
type Claim struct {
	GuildID   string `db:"guild_id"`
	AuthorID  string `db:"author_id"`
	TargetID  string `db:"target_id"`
	Type      string `db:"type"` // hex or mend only
	CreatedAt int64  `db:"created_at"`
	ExpiresAt int64  `db:"expires_at"`
}
