package ledger

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// GenesisMarker is the payload carried by the first block of every chain.
const GenesisMarker = "Genesis Block"

// Payload is what a block records: either a Transaction or the Genesis marker.
type Payload interface {
	canonicalJSON() ([]byte, error)
	clone() Payload
}

// Genesis is the sentinel payload of block 0.
type Genesis struct{}

func (Genesis) canonicalJSON() ([]byte, error) { return json.Marshal(GenesisMarker) }
func (Genesis) clone() Payload                 { return Genesis{} }

// Transaction is a single credit or debit. A nil field is absent.
type Transaction struct {
	TID    *string `json:"tid,omitempty"`
	Credit *string `json:"credit,omitempty"`
	Debit  *string `json:"debit,omitempty"`
}

// NewCredit returns a credit transaction.
func NewCredit(tid, amount string) Transaction {
	return Transaction{TID: &tid, Credit: &amount}
}

// NewDebit returns a debit transaction.
func NewDebit(tid, amount string) Transaction {
	return Transaction{TID: &tid, Debit: &amount}
}

// TransactionFromMap builds a transaction from its mapping form. Keys other than tid, credit and
// debit are ignored; a key that is present is kept even when its value is empty.
func TransactionFromMap(m map[string]string) Transaction {
	var tx Transaction
	if v, ok := m["tid"]; ok {
		tx.TID = &v
	}
	if v, ok := m["credit"]; ok {
		tx.Credit = &v
	}
	if v, ok := m["debit"]; ok {
		tx.Debit = &v
	}
	return tx
}

// ID returns the transaction id, or "" when absent.
func (t Transaction) ID() string {
	if t.TID == nil {
		return ""
	}
	return *t.TID
}

func (t Transaction) hasID() bool {
	return t.TID != nil && *t.TID != ""
}

func (t Transaction) canonicalJSON() ([]byte, error) { return json.Marshal(t) }

func (t Transaction) clone() Payload {
	return Transaction{TID: cloneString(t.TID), Credit: cloneString(t.Credit), Debit: cloneString(t.Debit)}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// amount parses a monetary field. ok is false when the field is absent or not a number.
func amount(field *string) (decimal.Decimal, bool) {
	if field == nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(*field)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
