package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

const (
	Food          Category = "Food"
	Gas           Category = "Gas"
	Transport     Category = "Transport"
	Groceries     Category = "Groceries"
	Entertainment Category = "Entertainment"
	Electronics   Category = "Electronics"
	Bills         Category = "Bills"
	Shopping      Category = "Shopping"
	IncomeCat     Category = "Income"
	Other         Category = "Other"
)

// Defaults applied by Finalize.
const (
	DefaultType     = Expense
	DefaultCategory = Other
)

type (
	// TxType tells whether money came in or went out.
	TxType string

	// Category is a label from a closed set.
	Category string

	// Draft is a provisional transaction, produced by the parser or typed in
	// by hand, before defaults are applied and an identity is assigned.
	Draft struct {
		Amount      float64   `json:"amount"`
		Type        TxType    `json:"type"`
		Category    Category  `json:"category"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
	}

	// Transaction is a finalized, persisted record.
	Transaction struct {
		ID          string    `json:"id"`
		UserID      string    `json:"userId"`
		Description string    `json:"description"`
		Amount      float64   `json:"amount"`
		Category    Category  `json:"category"`
		Type        TxType    `json:"type"`
		Date        time.Time `json:"date"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNotFound        = errors.New("transaction not found")
)

var categories = []Category{
	Food, Gas, Transport, Groceries, Entertainment,
	Electronics, Bills, Shopping, IncomeCat, Other,
}

// Categories returns the closed category set.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

func (c Category) IsValid() bool {
	for _, v := range categories {
		if c == v {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }

func (t TxType) IsValid() bool {
	return t == Income || t == Expense
}

func (t TxType) String() string { return string(t) }

// ParseTxType maps free text ("Income", " expense ") to a TxType.
func ParseTxType(s string) (TxType, error) {
	t := TxType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// ParseCategory maps a label to a Category, ignoring case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// Validate checks a manually entered draft. Empty type and category are
// accepted because Finalize fills them in.
func (d Draft) Validate() error {
	if math.IsNaN(d.Amount) || math.IsInf(d.Amount, 0) || d.Amount < 0 {
		return ErrInvalidAmount
	}
	if d.Type != "" && !d.Type.IsValid() {
		return ErrInvalidType
	}
	if d.Category != "" && !d.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}

// Finalize fills in defaults and assigns identity. It is called once per new
// or edited record.
func Finalize(d Draft, id, userID string, now time.Time) Transaction {
	tx := Transaction{
		ID:          id,
		UserID:      userID,
		Description: d.Description,
		Amount:      d.Amount,
		Category:    d.Category,
		Type:        d.Type,
		Date:        d.Date,
	}
	if !tx.Type.IsValid() {
		tx.Type = DefaultType
	}
	if !tx.Category.IsValid() {
		tx.Category = DefaultCategory
	}
	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		tx.Amount = 0
	}
	if tx.Date.IsZero() {
		tx.Date = now
	}
	return tx
}

// Draft returns the editable part of the record.
func (t Transaction) Draft() Draft {
	return Draft{
		Amount:      t.Amount,
		Type:        t.Type,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
	}
}
