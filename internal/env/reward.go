package env

// Reward scores a position by its cell attribute. Happy and bad cells end
// the episode; every other cell costs the default reward.
func (e *Environment) Reward(state Position) (reward float64, done bool) {
	attr, _ := e.grid.Attribute(state)
	switch attr {
	case Happy:
		return 1, true
	case Bad:
		return -1, true
	}
	return e.defaultReward, false
}
