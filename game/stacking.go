package game

import (
	"fmt"
	"hash/fnv"
	"math"
	"ritual-war/model"
)

// drawAmount returns the deterministic per-caster effect magnitude in
// [min, max]. The draw is an FNV-1a hash of (guild, caster, target, day), so
// the same cast always contributes the same amount no matter how often the
// stack is recomputed, and distinct casters roll independently.
func drawAmount(guildID, casterID, targetID string, day int64, min, max int) int {
	if max <= min {
		return min
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%d", guildID, casterID, targetID, day)
	return min + int(h.Sum64()%uint64(max-min+1))
}

// stackTotal returns the aggregate effect of a set of same-day signatures on
// their target: the sum of every caster's draw. Adding a caster always grows
// the total by at least min, so magnitude is strictly monotonic in caster
// count.
func stackTotal(sigs []model.Signature, min, max int) int {
	total := 0
	for _, sig := range sigs {
		total += drawAmount(sig.GuildID, sig.CasterID, sig.TargetID, sig.Day, min, max)
	}
	return total
}

// mitigate applies the veil to raw hex damage: multiply by (1 - reduction)
// and round down.
func mitigate(raw int, reduction float64) int {
	return int(math.Floor(float64(raw) * (1 - reduction)))
}
