// Package parser turns free text such as "Coffee at Starbucks $6.50 - Food"
// into a transaction draft using a fixed set of keyword heuristics.
package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
)

var amountRe = regexp.MustCompile(`(?:\$|₹)?\s*(\d+[\d,]*(?:\.\d+)?)`)

// Parser is stateless apart from its rules and clock and is safe for
// concurrent use.
type Parser struct {
	rules []Rule
	now   func() time.Time
}

type Option func(*Parser)

// WithClock overrides the clock used to stamp drafts.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

// WithRules replaces the category rules. Order is preserved.
func WithRules(rules []Rule) Option {
	return func(p *Parser) { p.rules = rules }
}

func New(opts ...Option) *Parser {
	p := &Parser{rules: defaultRules, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var std = New()

// Parse parses text with the default rules and the system clock.
func Parse(text string) core.Draft {
	return std.Parse(text)
}

// Parse never fails: fields it cannot determine get their defaults.
func (p *Parser) Parse(text string) core.Draft {
	return core.Draft{
		Amount:      ExtractAmount(text),
		Type:        ClassifyType(text),
		Category:    p.Classify(text),
		Description: text,
		Date:        p.now(),
	}
}

// ExtractAmount returns the first numeric token in text with grouping commas
// removed, or 0. Later numbers are ignored.
func ExtractAmount(text string) float64 {
	m := amountRe.FindStringSubmatch(text)
	if len(m) < 2 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ClassifyType returns income if any income keyword is present.
func ClassifyType(text string) core.TxType {
	lower := strings.ToLower(text)
	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			return core.Income
		}
	}
	return core.Expense
}

// Classify returns the category of the first matching rule, or Other.
func (p *Parser) Classify(text string) core.Category {
	lower := strings.ToLower(text)
	for _, r := range p.rules {
		if r.Matches(lower) {
			return r.Category
		}
	}
	return core.Other
}
