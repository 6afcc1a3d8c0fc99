package domain

import "time"

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TxParkingFee  TransactionType = "parking-fee"
	TxRouteIncome TransactionType = "route-income"
	TxMaintenance TransactionType = "maintenance"
	TxPurchase    TransactionType = "purchase"
	TxUpgrade     TransactionType = "upgrade"
	TxService     TransactionType = "service"
)

// Transaction is an immutable audit record of a balance-affecting event.
// From and To are optional: a missing From means system-minted funds, a
// missing To means the amount left the economy (a sink). Records are
// append-only and are the sole ground truth for who paid whom, how much, why.
type Transaction struct {
	ID          string          `json:"id" bson:"_id,omitempty"`
	Type        TransactionType `json:"type" bson:"type"`
	FromUserID  string          `json:"from_user_id,omitempty" bson:"from_user_id,omitempty"`
	ToUserID    string          `json:"to_user_id,omitempty" bson:"to_user_id,omitempty"`
	Amount      float64         `json:"amount" bson:"amount"`
	AircraftID  string          `json:"aircraft_id,omitempty" bson:"aircraft_id,omitempty"`
	AirportID   string          `json:"airport_id,omitempty" bson:"airport_id,omitempty"`
	Description string          `json:"description" bson:"description"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at"`
}
