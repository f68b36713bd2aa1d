package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// GenesisTimestamp is the date recorded by the genesis block.
const GenesisTimestamp = "1970-01-01"

// Chain is an append-only sequence of blocks rooted at a genesis block. It is not safe for
// concurrent use; hosts sharing a chain must serialize access.
type Chain struct {
	blocks []*Block
	rules  *Rules
	sink   EventSink
	now    func() time.Time
}

type chainOptions struct {
	ceiling decimal.Decimal
	maxAge  int
	symbol  string
	now     func() time.Time
	sink    EventSink
}

// Option configures a Chain.
type Option func(*chainOptions)

// WithCreditCeiling sets the largest accepted credit.
func WithCreditCeiling(ceiling decimal.Decimal) Option {
	return func(o *chainOptions) { o.ceiling = ceiling }
}

// WithMaxAgeDays sets how many days old a block date may be.
func WithMaxAgeDays(days int) Option {
	return func(o *chainOptions) { o.maxAge = days }
}

// WithCurrencySymbol sets the symbol used when formatting the balance.
func WithCurrencySymbol(symbol string) Option {
	return func(o *chainOptions) { o.symbol = symbol }
}

// WithClock replaces the wall clock used for date windows and event times.
func WithClock(now func() time.Time) Option {
	return func(o *chainOptions) { o.now = now }
}

// WithSink sets the receiver of ledger events.
func WithSink(sink EventSink) Option {
	return func(o *chainOptions) { o.sink = sink }
}

// NewChain returns a chain holding only the genesis block.
func NewChain(opts ...Option) *Chain {
	o := chainOptions{
		ceiling: DefaultCreditCeiling,
		maxAge:  DefaultMaxAgeDays,
		symbol:  DefaultCurrencySymbol,
		now:     time.Now,
		sink:    NopSink{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Chain{
		rules: &Rules{
			CreditCeiling:  o.ceiling,
			MaxAgeDays:     o.maxAge,
			CurrencySymbol: o.symbol,
			Timestamps:     NewTimestampService(o.now, o.sink),
		},
		sink: o.sink,
		now:  o.now,
	}
	c.blocks = []*Block{newBlock(GenesisTimestamp, Genesis{}, c.rules)}
	return c
}

// Len returns the number of blocks, genesis included.
func (c *Chain) Len() int {
	return len(c.blocks)
}

// LastBlock returns a copy of the tail block.
func (c *Chain) LastBlock() (*Block, error) {
	if len(c.blocks) == 0 {
		return nil, newError(KindChainIntegrityFailure, "empty chain")
	}
	return c.blocks[len(c.blocks)-1].clone(), nil
}

// Block returns a copy of the block at index i.
func (c *Chain) Block(i int) (*Block, error) {
	if i < 0 || i >= len(c.blocks) {
		return nil, fmt.Errorf("ledger: block index %d out of range [0, %d)", i, len(c.blocks))
	}
	return c.blocks[i].clone(), nil
}

// Blocks returns copies of every block in order.
func (c *Chain) Blocks() []*Block {
	out := make([]*Block, len(c.blocks))
	for i, b := range c.blocks {
		out[i] = b.clone()
	}
	return out
}

// NewBlock is like the package-level NewBlock but measures the block's age with this chain's
// rules and clock.
func (c *Chain) NewBlock(timestamp string, tx Transaction) *Block {
	return newBlock(timestamp, tx.clone(), c.rules)
}

// AddBlock validates a copy of candidate, links it to the tail and appends it. The candidate itself
// is left untouched. On a validation failure the chain is unchanged. The timestamp is checked again
// after the append; if that check fails the block stays in the chain and InvalidDate is returned.
func (c *Chain) AddBlock(candidate *Block) error {
	block := candidate.clone()
	block.rules = c.rules

	ok, err := block.ValidTransaction()
	if err != nil {
		c.reject(block, err)
		return err
	}
	if !ok {
		err = fmt.Errorf("%w: credit %s exceeds ceiling %s", ErrTransactionRejected,
			block.CreditValue().StringFixed(2), c.rules.CreditCeiling.StringFixed(2))
		c.reject(block, err)
		return err
	}

	ok, err = block.ValidTimestamp()
	if err != nil {
		c.reject(block, err)
		return err
	}
	if !ok {
		err = newError(KindInvalidDate, block.timestamp)
		c.reject(block, err)
		return err
	}

	last, err := c.LastBlock()
	if err != nil {
		return err
	}
	block.link(last.hash)

	before := len(c.blocks)
	c.blocks = append(c.blocks, block)
	if len(c.blocks) != before+1 {
		return newError(KindChainIntegrityFailure, block.TID())
	}

	c.sink.Emit(Event{
		Type:       EventBlockCreated,
		OccurredAt: c.now(),
		Index:      before,
		Timestamp:  block.timestamp,
		TID:        block.TID(),
		Hash:       block.hash,
	})

	if ok, err := block.ValidTimestamp(); err != nil || !ok {
		err = newError(KindInvalidDate, block.timestamp)
		c.reject(block, err)
		return err
	}
	return nil
}

func (c *Chain) reject(b *Block, err error) {
	e := Event{
		Type:       EventBlockRejected,
		OccurredAt: c.now(),
		Timestamp:  b.timestamp,
		TID:        b.TID(),
		Message:    err.Error(),
	}
	var le *Error
	if errors.As(err, &le) {
		e.Kind = le.Kind
		e.Message = le.Description
		e.Value = le.Value
	}
	c.sink.Emit(e)
}

// IsValid reports whether every block after genesis matches its own hash and links to its predecessor.
func (c *Chain) IsValid() bool {
	_, ok := c.Verify()
	return ok
}

// Verify returns the index of the first block failing the tamper or link check. ok is true when
// there is none.
func (c *Chain) Verify() (index int, ok bool) {
	for i := 1; i < len(c.blocks); i++ {
		current, previous := c.blocks[i], c.blocks[i-1]
		if current.hash != current.CalculateHash() {
			return i, false
		}
		if current.previousHash != previous.hash {
			return i, false
		}
	}
	return 0, true
}

// BalanceAmount sums credits minus debits. Any block whose timestamp is out of window, or not a
// date at all, zeroes the totals accumulated so far. It emits no events, not even for blocks that
// the clock now places in the future.
func (c *Chain) BalanceAmount() decimal.Decimal {
	credit, debit := decimal.Zero, decimal.Zero
	for _, b := range c.blocks {
		if !b.inWindow() {
			credit, debit = decimal.Zero, decimal.Zero
			continue
		}
		credit = credit.Add(b.CreditValue())
		debit = debit.Add(b.DebitValue())
	}
	return credit.Sub(debit)
}

// Balance returns BalanceAmount in the chain currency.
func (c *Chain) Balance() Money {
	m := Money{Amount: c.BalanceAmount(), Symbol: c.rules.CurrencySymbol}
	c.sink.Emit(Event{
		Type:       EventBalanceComputed,
		OccurredAt: c.now(),
		Index:      len(c.blocks) - 1,
		Balance:    m.String(),
	})
	return m
}

// Amend replaces the transaction of block i in place without rehashing, which leaves the chain
// invalid until Rebuild is called. The genesis block cannot be amended.
func (c *Chain) Amend(i int, tx Transaction) error {
	if i < 1 || i >= len(c.blocks) {
		return fmt.Errorf("ledger: cannot amend block %d of %d", i, len(c.blocks))
	}
	b := c.blocks[i]
	b.payload = tx.clone()
	c.sink.Emit(Event{
		Type:       EventBlockAmended,
		OccurredAt: c.now(),
		Index:      i,
		Timestamp:  b.timestamp,
		TID:        b.TID(),
	})
	return nil
}

// Rebuild relinks and rehashes every block after genesis, left to right, from each
// predecessor's current hash.
func (c *Chain) Rebuild() {
	for i := 1; i < len(c.blocks); i++ {
		c.blocks[i].link(c.blocks[i-1].hash)
	}
	c.sink.Emit(Event{
		Type:       EventChainRebuilt,
		OccurredAt: c.now(),
		Index:      len(c.blocks) - 1,
		Hash:       c.blocks[len(c.blocks)-1].hash,
	})
}
