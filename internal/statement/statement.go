// Package statement turns bank and brokerage export files (delimited
// text in institution-specific dialects, or OFX in its SGML and XML
// syntaxes) into normalized transactions. Detection is deterministic:
// fixed bank formats first, then fuzzy header mapping, then an exact
// header fallback. A bad row is skipped, never fatal; only inputs the
// pipeline cannot interpret at all fail the whole parse.
package statement

import (
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Outcome is the sole artifact handed to downstream consumers.
// Success=false implies no transactions and a populated Error;
// row-level failures only show up in Skipped.
type Outcome struct {
	Success        bool
	Transactions   []model.Transaction
	Skipped        int
	Error          string
	DetectedFormat string
}

func failure(msg string) Outcome {
	return Outcome{Error: msg}
}

// Kind identifies the input family of a statement file.
type Kind string

const (
	// KindCSV covers all delimited-text dialects.
	KindCSV Kind = "csv"
	// KindOFX covers both SGML- and XML-style OFX.
	KindOFX Kind = "ofx"
)

// DetectKind sniffs whether content is an OFX document or delimited
// text. OFX files open with an OFXHEADER preamble, an <OFX> root, or
// an XML declaration followed by OFX tags.
func DetectKind(content string) Kind {
	probe := content
	if len(probe) > 512 {
		probe = probe[:512]
	}
	probe = strings.ToUpper(probe)
	if strings.Contains(probe, "OFXHEADER") || strings.Contains(probe, "<OFX") {
		return KindOFX
	}
	return KindCSV
}

// Parser runs the statement import pipeline. Each parse call is a
// pure function of its input, so one Parser may serve any number of
// concurrent invocations.
type Parser struct {
	registry *Registry
	mapper   *Mapper
}

// NewParser returns a parser with the built-in bank format registry
// and synonym tables.
func NewParser() *Parser {
	return &Parser{registry: NewRegistry(), mapper: NewMapper(nil)}
}

// NewCustomParser returns a parser over a caller-assembled registry
// and mapper, e.g. extended from a config file.
func NewCustomParser(registry *Registry, mapper *Mapper) *Parser {
	return &Parser{registry: registry, mapper: mapper}
}

// Formats returns the registered bank format names in precedence
// order, for "detected format" display.
func (p *Parser) Formats() []string {
	return p.registry.Names()
}

// SuggestMapping proposes a ColumnMapping for raw header text, for
// external UIs to confirm before calling ParseCSVWithMapping.
func (p *Parser) SuggestMapping(headers []string) (ColumnMapping, bool) {
	return p.mapper.Suggest(headers)
}

// Parse dispatches content to the OFX or CSV pipeline by sniffing.
func (p *Parser) Parse(content string) Outcome {
	if DetectKind(content) == KindOFX {
		return p.ParseOFX(content)
	}
	return p.ParseCSV(content)
}
