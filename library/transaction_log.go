package library

// TransactionLog is a last-in-first-out record of issue and return actions.
type TransactionLog struct {
	entries []Transaction
}

func NewTransactionLog() *TransactionLog {
	return &TransactionLog{}
}

// Push records a transaction on top of the log.
func (l *TransactionLog) Push(bookID int64, action Action) {
	l.entries = append(l.entries, Transaction{BookID: bookID, Action: action})
}

// Pop removes and returns the most recent transaction.
func (l *TransactionLog) Pop() (Transaction, error) {
	if len(l.entries) == 0 {
		return Transaction{}, ErrNothingToUndo
	}
	last := len(l.entries) - 1
	t := l.entries[last]
	l.entries = l.entries[:last]
	return t, nil
}

// PeekAll returns a copy of the log, most recent first.
func (l *TransactionLog) PeekAll() []Transaction {
	out := make([]Transaction, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

func (l *TransactionLog) IsEmpty() bool { return len(l.entries) == 0 }
func (l *TransactionLog) Len() int      { return len(l.entries) }
