package model

// TrainStatus describes the stack of same-type signatures on a target.
type TrainStatus struct {
	Count     int
	Freshness string // Fresh, Warm, Cooling or Expired, from the oldest signature's age
}

// Outcome is the structured result of a resolved cast, consumed by the
// presentation layer. Validation failures are returned as errors instead.
type Outcome struct {
	Spell        string
	CasterID     string
	TargetID     string
	DoomDelta    int // signed: positive for hex damage, negative for cleanse/heal
	NewDoom      int
	TargetAlive  bool
	Eliminated   bool // the target was eliminated by this cast
	ReflexShield bool // the target auto-shielded before the hex resolved
	VeilApplied  bool
	HexTrain     TrainStatus
	MendTrain    TrainStatus
	Concluded    bool
	WinnerID     string // empty on a draw
}

// PlayerStatus is the inspect view of a player.
type PlayerStatus struct {
	UserID        string
	Doom          int
	Alive         bool
	VeilHoursLeft float64 // 0 when no veil is active
	HexTrain      TrainStatus
	MendTrain     TrainStatus
}

// TickReport is what one guild's scheduler tick produced.
type TickReport struct {
	GuildID     string
	DayAdvanced bool
	Day         int64
	Period      string
	RemindDue   bool
	ChannelID   string
	Laggards    []Player // alive players who have not acted on the current day
}
