package model

// Action step types executed after a purchase.
const (
	StepDelay   = "delay"
	StepService = "service"
)

// ActionStep is one step of a shop item's post-purchase sequence: either a
// delay or an external service call.
type ActionStep struct {
	Type    string         `json:"type"`
	Seconds int            `json:"seconds,omitempty"`
	Domain  string         `json:"domain,omitempty"`
	Service string         `json:"service,omitempty"`
	Target  string         `json:"target,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// ShopItem is a reward children can buy with points.
type ShopItem struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Price   int          `json:"price"`
	Icon    string       `json:"icon,omitempty"`
	Image   string       `json:"image,omitempty"`
	Active  bool         `json:"active"`
	Actions []ActionStep `json:"actions,omitempty"`
}

// Purchase is an immutable ledger entry. Title, price, icon, image and
// child name are denormalized so history survives item and child edits.
type Purchase struct {
	ID        string `json:"id"`
	ChildID   string `json:"child_id"`
	ItemID    string `json:"item_id"`
	Title     string `json:"title"`
	Price     int    `json:"price"`
	Icon      string `json:"icon,omitempty"`
	Image     string `json:"image,omitempty"`
	TS        string `json:"ts"` // RFC3339
	ChildName string `json:"child_name,omitempty"`
}
