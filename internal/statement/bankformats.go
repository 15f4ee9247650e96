package statement

// RawRow holds one data row projected into canonical fields, still as
// source text. Normalization (dates, amounts) happens afterwards so
// that a bad value skips the row instead of failing the file.
type RawRow struct {
	Date        string
	Description string
	Amount      string
	Debit       string
	Credit      string
	Category    string
	Balance     string
	Split       bool
	Negate      bool // flip the sign of Amount after parsing
}

// FormatSpec describes one institution's fixed export layout.
// Headered formats are detected by Signature: every listed name must
// appear (case-insensitive, quote-stripped) somewhere in the first
// line's values. Extra columns are ignored since institutions add
// them over time. Headerless formats are detected structurally by
// Detect against the tokenized first line.
type FormatSpec struct {
	Name      string
	HasHeader bool
	Signature []string
	Detect    func(first []string) bool
	Project   func(row []string) (RawRow, bool)
}

// Matches reports whether the tokenized first line of a file belongs
// to this format.
func (s FormatSpec) Matches(first []string) bool {
	if !s.HasHeader {
		return s.Detect != nil && s.Detect(first)
	}
	for _, want := range s.Signature {
		found := false
		for _, h := range first {
			if normalizeHeader(h) == normalizeHeader(want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Registry is an ordered list of format specs. Order is load-bearing:
// detection walks the list and the first match wins, which is what
// keeps structurally similar formats unambiguous.
type Registry struct {
	specs []FormatSpec
}

// NewRegistry returns a registry with all built-in formats, in
// precedence order.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(chaseFormat())
	r.Register(capitalOneFormat())
	r.Register(discoverFormat())
	r.Register(wellsFargoFormat())
	return r
}

// Register appends a spec after all existing ones.
func (r *Registry) Register(s FormatSpec) {
	r.specs = append(r.specs, s)
}

// Detect returns the first spec matching the tokenized first line.
func (r *Registry) Detect(first []string) (FormatSpec, bool) {
	for _, s := range r.specs {
		if s.Matches(first) {
			return s, true
		}
	}
	return FormatSpec{}, false
}

// Names returns the registered format names in precedence order, for
// diagnostic and UI display.
func (r *Registry) Names() []string {
	names := make([]string, len(r.specs))
	for i, s := range r.specs {
		names[i] = s.Name
	}
	return names
}

// Chase checking exports:
// Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
func chaseFormat() FormatSpec {
	return FormatSpec{
		Name:      "Chase",
		HasHeader: true,
		Signature: []string{"posting date", "description", "amount", "type"},
		Project: func(row []string) (RawRow, bool) {
			if len(row) < 6 {
				return RawRow{}, false
			}
			return RawRow{
				Date:        row[1],
				Description: row[2],
				Amount:      row[3],
				Balance:     row[5],
			}, true
		},
	}
}

// Capital One card exports:
// Transaction Date,Posted Date,Card No.,Description,Category,Debit,Credit
func capitalOneFormat() FormatSpec {
	return FormatSpec{
		Name:      "Capital One",
		HasHeader: true,
		Signature: []string{"card no.", "debit", "credit"},
		Project: func(row []string) (RawRow, bool) {
			if len(row) < 7 {
				return RawRow{}, false
			}
			return RawRow{
				Date:        row[0],
				Description: row[3],
				Category:    row[4],
				Debit:       row[5],
				Credit:      row[6],
				Split:       true,
			}, true
		},
	}
}

// Discover card exports:
// Trans. Date,Post Date,Description,Amount,Category
// Discover reports charges as positive values, so the sign is flipped
// to the outflow-negative convention.
func discoverFormat() FormatSpec {
	return FormatSpec{
		Name:      "Discover",
		HasHeader: true,
		Signature: []string{"trans. date", "amount", "category"},
		Project: func(row []string) (RawRow, bool) {
			if len(row) < 5 {
				return RawRow{}, false
			}
			return RawRow{
				Date:        row[0],
				Description: row[2],
				Amount:      row[3],
				Category:    row[4],
				Negate:      true,
			}, true
		},
	}
}

// Wells Fargo exports carry no header: date, amount, a literal "*"
// marker, check number, description.
func wellsFargoFormat() FormatSpec {
	return FormatSpec{
		Name:      "Wells Fargo",
		HasHeader: false,
		Detect: func(first []string) bool {
			return len(first) == 5 &&
				looksLikeDate(first[0]) &&
				looksLikeAmount(first[1]) &&
				first[2] == "*"
		},
		Project: func(row []string) (RawRow, bool) {
			if len(row) < 5 {
				return RawRow{}, false
			}
			return RawRow{
				Date:        row[0],
				Amount:      row[1],
				Description: row[4],
			}, true
		},
	}
}
