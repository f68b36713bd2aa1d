package ledger

import (
	"errors"
	"fmt"
)

// Kind identifies a class of ledger failure. The string value is the stable code callers match on.
type Kind string

const (
	KindMissingCreditOrDebit  Kind = "T01"
	KindUnexpectedCreditValue Kind = "T02"
	KindUnexpectedDebitValue  Kind = "T03"
	KindMissingID             Kind = "T04"
	KindInvalidDate           Kind = "D01"
	KindChainIntegrityFailure Kind = "C01"
)

var descriptions = map[Kind]string{
	KindMissingCreditOrDebit:  "transaction missing specific credit or debit type",
	KindUnexpectedCreditValue: "transaction unexpected credit value format (n.nn)",
	KindUnexpectedDebitValue:  "transaction unexpected debit value format (n.nn)",
	KindMissingID:             "transaction missing transaction id",
	KindInvalidDate:           "invalid iso date, dates must be: yyyy-mm-dd",
	KindChainIntegrityFailure: "unexpected failure in chain",
}

var names = map[Kind]string{
	KindMissingCreditOrDebit:  "MissingCreditOrDebit",
	KindUnexpectedCreditValue: "UnexpectedCreditValue",
	KindUnexpectedDebitValue:  "UnexpectedDebitValue",
	KindMissingID:             "MissingId",
	KindInvalidDate:           "InvalidDate",
	KindChainIntegrityFailure: "ChainIntegrityFailure",
}

// Name returns the symbolic name of the kind, e.g. "InvalidDate".
func (k Kind) Name() string {
	if n, ok := names[k]; ok {
		return n
	}
	return string(k)
}

// Description returns the human readable description attached to the kind.
func (k Kind) Description() string {
	return descriptions[k]
}

// Error is a validation or integrity failure raised by the ledger.
type Error struct {
	Kind        Kind
	Description string
	// Value is the offending input, empty when there is none.
	Value string
}

func newError(kind Kind, value string) *Error {
	return &Error{Kind: kind, Description: kind.Description(), Value: value}
}

func (e *Error) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("ledger: %s (%s): %s", e.Kind.Name(), e.Kind, e.Description)
	}
	return fmt.Sprintf("ledger: %s (%s): %s, got: %s", e.Kind.Name(), e.Kind, e.Description, e.Value)
}

// Is reports whether target is an *Error of the same kind, so the sentinels below
// match any failure of their kind regardless of the offending value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrMissingCreditOrDebit  = newError(KindMissingCreditOrDebit, "")
	ErrUnexpectedCreditValue = newError(KindUnexpectedCreditValue, "")
	ErrUnexpectedDebitValue  = newError(KindUnexpectedDebitValue, "")
	ErrMissingID             = newError(KindMissingID, "")
	ErrInvalidDate           = newError(KindInvalidDate, "")
	ErrChainIntegrityFailure = newError(KindChainIntegrityFailure, "")

	// ErrTransactionRejected is returned by Chain.AddBlock when a transaction is well formed
	// but refused by policy, such as a credit above the ceiling.
	ErrTransactionRejected = errors.New("ledger: transaction rejected")
)

// KindOf returns the kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind, true
	}
	return "", false
}
