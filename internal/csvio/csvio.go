// Package csvio reads and writes the transaction CSV exchange format.
//
// The format is deliberately naive: fields are joined and split on commas
// and quotes are neither escaped nor honored, so descriptions or categories
// containing commas or double quotes do not survive a round trip.
package csvio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
)

// Header is the first line of every export.
const Header = "Description,Amount,Category,Type,Date"

// DateLayout is the timestamp layout used in the Date column. Dates keep
// the offset they were stored with.
const DateLayout = time.RFC3339Nano

const fieldCount = 5

// FormatRow renders one transaction line.
func FormatRow(tx core.Transaction) string {
	return fmt.Sprintf(`"%s",%s,"%s",%s,"%s"`,
		tx.Description,
		core.FormatAmount(tx.Amount),
		tx.Category,
		tx.Type,
		tx.Date.Format(DateLayout),
	)
}

// Export writes the header followed by one line per transaction, joined
// with "\n".
func Export(w io.Writer, list []core.Transaction) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, tx := range list {
		if _, err := bw.WriteString("\n" + FormatRow(tx)); err != nil {
			return fmt.Errorf("write row %s: %w", tx.ID, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Importer turns CSV text into finalized transactions.
type Importer struct {
	UserID string
	NewID  func() string
	Now    func() time.Time
}

// Import reads all of r. The first line is discarded as the header; lines
// with fewer than five comma-separated fields are dropped silently. Only a
// read failure is reported as an error.
func (im Importer) Import(r io.Reader) ([]core.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	now := time.Now
	if im.Now != nil {
		now = im.Now
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}

	out := make([]core.Transaction, 0, len(lines))
	for _, line := range lines {
		cols := strings.Split(strings.TrimSuffix(line, "\r"), ",")
		if len(cols) < fieldCount {
			continue
		}
		out = append(out, im.row(cols, now()))
	}
	return out, nil
}

func (im Importer) row(cols []string, now time.Time) core.Transaction {
	amount, err := strconv.ParseFloat(strings.TrimSpace(cols[1]), 64)
	if err != nil || amount < 0 {
		amount = 0
	}
	date, err := time.Parse(DateLayout, unquote(cols[4]))
	if err != nil {
		date = now
	}
	d := core.Draft{
		Description: unquote(cols[0]),
		Amount:      amount,
		Category:    core.Category(unquote(cols[2])),
		Type:        core.TxType(strings.TrimSpace(cols[3])),
		Date:        date,
	}
	var id string
	if im.NewID != nil {
		id = im.NewID()
	}
	return core.Finalize(d, id, im.UserID, now)
}

func unquote(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}
