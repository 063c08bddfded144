package game

// Faction marks which side fired a projectile or flies a craft. The
// dispatcher uses it to filter pairs (a craft never shoots itself down).
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

// Hostile reports whether two factions damage each other.
func Hostile(a, b Faction) bool {
	return a != b
}
