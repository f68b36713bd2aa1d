package ledger

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/shopspring/decimal"
)

// GenesisHash is the previous hash recorded by blocks not yet linked into a chain.
const GenesisHash = "0"

// Block is one ledger entry. Its hash commits to the timestamp, the payload and the previous hash.
type Block struct {
	timestamp    string
	payload      Payload
	previousHash string
	hash         string
	rules        *Rules
}

// NewBlock returns an unlinked block holding a copy of tx.
func NewBlock(timestamp string, tx Transaction) *Block {
	return newBlock(timestamp, tx.clone(), DefaultRules())
}

func newBlock(timestamp string, payload Payload, rules *Rules) *Block {
	b := &Block{
		timestamp:    timestamp,
		payload:      payload,
		previousHash: GenesisHash,
		rules:        rules,
	}
	b.hash = b.CalculateHash()
	return b
}

func (b *Block) Timestamp() string    { return b.timestamp }
func (b *Block) PreviousHash() string { return b.previousHash }
func (b *Block) Hash() string         { return b.hash }

// IsGenesis reports whether the block carries the genesis marker.
func (b *Block) IsGenesis() bool {
	_, ok := b.payload.(Genesis)
	return ok
}

// Transaction returns a copy of the recorded transaction. ok is false for the genesis block.
func (b *Block) Transaction() (tx Transaction, ok bool) {
	t, ok := b.payload.(Transaction)
	if !ok {
		return Transaction{}, false
	}
	return t.clone().(Transaction), true
}

// TID returns the transaction id, or "" for the genesis block.
func (b *Block) TID() string {
	tx, _ := b.payload.(Transaction)
	return tx.ID()
}

// CalculateHash returns the hex SHA-256 of timestamp ++ canonical JSON payload ++ previous hash.
func (b *Block) CalculateHash() string {
	data, err := b.payload.canonicalJSON()
	if err != nil {
		// Payloads are strings and string pointers; marshalling cannot fail.
		panic(err)
	}

	h := sha256.New()
	h.Write([]byte(b.timestamp))
	h.Write(data)
	h.Write([]byte(b.previousHash))
	return hex.EncodeToString(h.Sum(nil))
}

// link records the predecessor's hash and rehashes.
func (b *Block) link(previousHash string) {
	b.previousHash = previousHash
	b.hash = b.CalculateHash()
}

// ValidTimestamp reports whether the block date lies between today and MaxAgeDays ago, inclusive.
// It fails only when the timestamp is not a date.
func (b *Block) ValidTimestamp() (bool, error) {
	ts := b.rules.Timestamps
	if _, err := ts.IsDateValid(b.timestamp); err != nil {
		return false, err
	}
	days, err := ts.DaysSince(b.timestamp)
	if err != nil {
		return false, err
	}
	return b.withinWindow(days), nil
}

// inWindow is ValidTimestamp without the anomaly report. A timestamp that is not a date is out.
func (b *Block) inWindow() bool {
	days, err := b.rules.Timestamps.daysSince(b.timestamp)
	return err == nil && b.withinWindow(float64(days))
}

func (b *Block) withinWindow(days float64) bool {
	return days >= 0 && days <= float64(b.rules.MaxAgeDays)
}

// ValidTransaction checks the payload in a fixed order: id, credit ceiling, negative credit,
// presence of a monetary field, credit format, debit format. A credit above the ceiling returns
// false without an error; every other problem is an error.
func (b *Block) ValidTransaction() (bool, error) {
	tx, _ := b.payload.(Transaction)
	if !tx.hasID() {
		return false, newError(KindMissingID, tx.ID())
	}

	if credit, ok := amount(tx.Credit); ok {
		if credit.GreaterThan(b.rules.CreditCeiling) {
			return false, nil
		}
		if credit.IsNegative() {
			return false, newError(KindMissingCreditOrDebit, *tx.Credit)
		}
	}

	if tx.Credit == nil && tx.Debit == nil {
		return false, newError(KindMissingCreditOrDebit, "")
	}

	if tx.Credit != nil && !IsValidCurrency(*tx.Credit) {
		return false, newError(KindUnexpectedCreditValue, *tx.Credit)
	}

	if tx.Debit != nil && !IsValidCurrency(*tx.Debit) {
		return false, newError(KindUnexpectedDebitValue, *tx.Debit)
	}

	return true, nil
}

// CreditValue returns the credit amount, or zero when absent.
func (b *Block) CreditValue() decimal.Decimal {
	tx, _ := b.payload.(Transaction)
	d, _ := amount(tx.Credit)
	return d
}

// DebitValue returns the debit amount, or zero when absent.
func (b *Block) DebitValue() decimal.Decimal {
	tx, _ := b.payload.(Transaction)
	d, _ := amount(tx.Debit)
	return d
}

func (b *Block) clone() *Block {
	c := *b
	c.payload = b.payload.clone()
	return &c
}
