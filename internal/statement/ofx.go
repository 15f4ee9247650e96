package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// OFX transaction list and block tags. Bank and credit-card
// statements use different list tags; both are honored.
const (
	ofxBankList = "BANKTRANLIST"
	ofxCardList = "CCTRANLIST"
	ofxTxnTag   = "STMTTRN"
)

// ofxRecord holds the fields scanned from one STMTTRN block, still as
// source text.
type ofxRecord struct {
	trnType  string
	dtPosted string
	amount   string
	fitID    string
	name     string
	memo     string
}

// ParseOFX parses an OFX document in either syntax. Content starting
// with an XML declaration is XML-style OFX with proper closing tags;
// everything else is legacy SGML-style OFX, where leaf tags have no
// closing pair and carry one field per line. A file with zero
// transaction blocks fails whole; a block that will not normalize is
// skipped.
func (p *Parser) ParseOFX(content string) Outcome {
	if strings.TrimSpace(content) == "" {
		return failure("statement is empty")
	}
	content = strings.Join(splitLines(content), "\n")

	label := "OFX (SGML)"
	if strings.HasPrefix(strings.TrimSpace(content), "<?xml") {
		label = "OFX (XML)"
	}

	blocks := extractOFXBlocks(content)
	if len(blocks) == 0 {
		return failure("no transactions found")
	}

	var txns []model.Transaction
	skipped := 0
	for _, block := range blocks {
		rec := scanOFXRecord(block)
		txn, err := rec.normalize()
		if err != nil {
			skipped++
			continue
		}
		txns = append(txns, txn)
	}
	return Outcome{
		Success:        true,
		Transactions:   txns,
		Skipped:        skipped,
		DetectedFormat: label,
	}
}

// extractOFXBlocks walks the document forward once, tracking whether
// the scan is inside a transaction list and inside a transaction
// block. No backtracking, so malformed or huge files stay linear.
func extractOFXBlocks(content string) []string {
	upper := strings.ToUpper(content)
	var blocks []string

	pos := 0
	for pos < len(upper) {
		listStart, listTag := nextListOpen(upper, pos)
		if listStart < 0 {
			break
		}
		sectionStart := listStart + len(listTag) + 2
		sectionEnd := len(upper)
		next := sectionEnd
		if i := strings.Index(upper[sectionStart:], "</"+listTag+">"); i >= 0 {
			sectionEnd = sectionStart + i
			next = sectionEnd + len(listTag) + 3
		}

		sp := sectionStart
		for sp < sectionEnd {
			ts := strings.Index(upper[sp:sectionEnd], "<"+ofxTxnTag+">")
			if ts < 0 {
				break
			}
			blockStart := sp + ts + len(ofxTxnTag) + 2
			te := strings.Index(upper[blockStart:sectionEnd], "</"+ofxTxnTag+">")
			if te < 0 {
				// Unterminated block: take the rest of the list.
				blocks = append(blocks, content[blockStart:sectionEnd])
				break
			}
			blocks = append(blocks, content[blockStart:blockStart+te])
			sp = blockStart + te + len(ofxTxnTag) + 3
		}
		pos = next
	}
	return blocks
}

// nextListOpen returns the position and tag name of the next
// transaction list opening tag at or after pos, or -1.
func nextListOpen(upper string, pos int) (int, string) {
	start, tag := -1, ""
	for _, t := range []string{ofxBankList, ofxCardList} {
		if i := strings.Index(upper[pos:], "<"+t+">"); i >= 0 {
			if start < 0 || pos+i < start {
				start = pos + i
				tag = t
			}
		}
	}
	return start, tag
}

// scanOFXRecord pulls the known fields out of one transaction block.
// A field value runs from its opening tag to the next tag or line
// break, which covers both the SGML one-field-per-line form and the
// XML open/close form.
func scanOFXRecord(block string) ofxRecord {
	upper := strings.ToUpper(block)
	field := func(tag string) string {
		i := strings.Index(upper, "<"+tag+">")
		if i < 0 {
			return ""
		}
		v := block[i+len(tag)+2:]
		if j := strings.IndexAny(v, "<\n"); j >= 0 {
			v = v[:j]
		}
		return strings.TrimSpace(v)
	}
	return ofxRecord{
		trnType:  field("TRNTYPE"),
		dtPosted: field("DTPOSTED"),
		amount:   field("TRNAMT"),
		fitID:    field("FITID"),
		name:     field("NAME"),
		memo:     field("MEMO"),
	}
}

// normalize turns a scanned record into a transaction. Posted date,
// amount and payee name are all required; the memo is appended to the
// description when it adds anything.
func (r ofxRecord) normalize() (model.Transaction, error) {
	if r.name == "" {
		return model.Transaction{}, fmt.Errorf("missing payee name")
	}

	date, err := parseOFXDate(r.dtPosted)
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := ParseAmount(r.amount)
	if err != nil {
		return model.Transaction{}, err
	}

	desc := r.name
	if r.memo != "" && r.memo != r.name {
		desc = r.name + " - " + r.memo
	}

	return model.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Category:    r.trnType,
	}, nil
}

// parseOFXDate parses the fixed-width YYYYMMDD[HHMMSS...] posted-date
// format. Only the calendar date matters; trailing time and timezone
// qualifiers are ignored.
func parseOFXDate(s string) (time.Time, error) {
	if len(s) < 8 {
		return time.Time{}, fmt.Errorf("short OFX date %q", s)
	}
	year, okY := parseInt(s[0:4])
	month, okM := parseInt(s[4:6])
	day, okD := parseInt(s[6:8])
	if !okY || !okM || !okD || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("unparseable OFX date %q", s)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("unparseable OFX date %q", s)
	}
	return t, nil
}
