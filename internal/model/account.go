package model

// Entry capacity per account tier.
const (
	GuestCapacity = 1
	NamedCapacity = 50
)

// Account is the single local account record. A temporary (guest) account
// holds at most one reminder; logging in with a name raises the limit.
type Account struct {
	ID     string `json:"id"`
	IsTemp bool   `json:"isTemp"`
	Name   string `json:"name"`
}

// Capacity returns the maximum concurrent reminder count for the account.
func (a Account) Capacity() int {
	if a.IsTemp {
		return GuestCapacity
	}
	return NamedCapacity
}

// DisplayName returns the account name, or a guest placeholder.
func (a Account) DisplayName() string {
	if a.IsTemp || a.Name == "" {
		return "Guest"
	}
	return a.Name
}
