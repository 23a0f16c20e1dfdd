package sim

import "math"

// Upgrade is a purchasable level with compounding cost.
type Upgrade struct {
	Name     string
	BaseCost float64
	Growth   float64
	Level    int
}

// Cost returns the price of the next level: floor(BaseCost * Growth^Level).
// It is recomputed from the level on every call, never from a previously
// scaled price, so repeated purchases do not accumulate rounding drift.
func (u *Upgrade) Cost() float64 {
	return math.Floor(u.BaseCost * math.Pow(u.Growth, float64(u.Level)))
}

// Affordable reports whether wallet covers the next level.
func (u *Upgrade) Affordable(wallet float64) bool {
	return wallet >= u.Cost()
}

// Purchase buys one level if wallet covers the cost: the cost is deducted
// and the level incremented together. With insufficient funds nothing changes.
func (u *Upgrade) Purchase(wallet *float64) bool {
	cost := u.Cost()
	if *wallet < cost {
		return false
	}
	*wallet -= cost
	u.Level++
	return true
}
