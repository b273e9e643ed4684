package domain

// Assignment records the auctioneer's decision for one processed player.
// PlayerIndex is the player's position in the session queue and equals the
// assignment's own index in the ledger, one entry per processed player.
// Entries are immutable in place, a correction replaces team and price
// wholesale through Ledger.ReplaceAt and never touches the player identity.
type Assignment struct {
	PlayerIndex int
	Player      Player
	Team        TeamID
	Price       float64
}
