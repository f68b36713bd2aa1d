package models

// Event is one row of the ledger event journal.
type Event struct {
	Seq  uint64
	Type string
	Data []byte
}
