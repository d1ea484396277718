// Package record turns schema-less JSON records into display-ready fields.
//
// CyVox complaint and user records carry no fixed schema: two complaints may
// have different field sets, values range from scalars to audio URLs to
// arrays of nested match objects. Render classifies each field by shape into
// a closed set of variants (scalar, media, table) that templates can switch
// on directly. Classification is a pure function of the record bytes.
package record

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind is the closed set of field classifications.
type Kind int

const (
	// KindScalar is the default: a labeled text value.
	KindScalar Kind = iota
	// KindMedia is a playable audio URL.
	KindMedia
	// KindTable is an array of objects rendered as rows under a union of
	// their columns.
	KindTable
)

// Field is one classified record field. Label and Key are always set; the
// remaining fields depend on Kind: Text for scalars, URL for media, and
// Columns/ColumnLabels/Rows for tables. Rows are aligned with Columns by
// index.
type Field struct {
	Key   string
	Kind  Kind
	Label string

	Text string // KindScalar
	URL  string // KindMedia

	Columns      []string   // KindTable: column keys in first-appearance order
	ColumnLabels []string   // KindTable: humanized headers, aligned with Columns
	Rows         [][]string // KindTable: cell text, aligned with Columns
}

// IsMedia reports whether the field renders as a media player.
func (f Field) IsMedia() bool { return f.Kind == KindMedia }

// IsTable reports whether the field renders as a table.
func (f Field) IsTable() bool { return f.Kind == KindTable }

var (
	camelRE = regexp.MustCompile(`([A-Z])`)
	audioRE = regexp.MustCompile(`\b[aA]udio\b`)
)

// Render classifies every field of a JSON object in document key order.
// It is total: each field yields exactly one Field, and unknown shapes fall
// through to the scalar branch. Invalid or non-object input yields nil.
func Render(rec []byte) []Field {
	parsed := gjson.ParseBytes(rec)
	if !parsed.IsObject() {
		return nil
	}

	var fields []Field
	parsed.ForEach(func(key, value gjson.Result) bool {
		fields = append(fields, classify(key.String(), value))
		return true
	})
	return fields
}

// classify applies the precedence order: media, then table, then scalar.
func classify(key string, value gjson.Result) Field {
	if f, ok := mediaField(key, value); ok {
		return f
	}
	if f, ok := tableField(key, value); ok {
		return f
	}
	return scalarField(key, value)
}

// mediaField matches keys containing "audio" (any case) whose value is a
// non-empty http(s) URL. An ftp:// or bare value stays scalar.
func mediaField(key string, value gjson.Result) (Field, bool) {
	if !strings.Contains(strings.ToLower(key), "audio") {
		return Field{}, false
	}
	if value.Type != gjson.String {
		return Field{}, false
	}
	url := value.String()
	if strings.TrimSpace(url) == "" {
		return Field{}, false
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return Field{}, false
	}
	return Field{
		Key:   key,
		Kind:  KindMedia,
		Label: humanize(key),
		URL:   url,
	}, true
}

// tableField matches non-empty arrays whose first element is a non-null
// object. The column set is the union of keys across all elements in order
// of first appearance — later elements may introduce fields the first one
// lacks.
func tableField(key string, value gjson.Result) (Field, bool) {
	if !value.IsArray() {
		return Field{}, false
	}
	elems := value.Array()
	if len(elems) == 0 || !elems[0].IsObject() {
		return Field{}, false
	}

	var columns []string
	seen := make(map[string]bool)
	for _, elem := range elems {
		elem.ForEach(func(col, _ gjson.Result) bool {
			name := col.String()
			if !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
			return true
		})
	}

	labels := make([]string, len(columns))
	for i, col := range columns {
		labels[i] = columnLabel(col)
	}

	rows := make([][]string, 0, len(elems))
	for _, elem := range elems {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = cellText(elem.Get(col))
		}
		rows = append(rows, row)
	}

	return Field{
		Key:          key,
		Kind:         KindTable,
		Label:        capitalize(humanize(key)),
		Columns:      columns,
		ColumnLabels: labels,
		Rows:         rows,
	}, true
}

// scalarField renders everything else as literal text: booleans and null by
// name, numbers as written, nested structures as their raw JSON.
func scalarField(key string, value gjson.Result) Field {
	return Field{
		Key:   key,
		Kind:  KindScalar,
		Label: strings.ReplaceAll(key, "_", " "),
		Text:  scalarText(value),
	}
}

func scalarText(value gjson.Result) string {
	switch value.Type {
	case gjson.Null:
		return "null"
	case gjson.False:
		return "false"
	case gjson.True:
		return "true"
	case gjson.String:
		return value.String()
	case gjson.Number:
		return value.Raw
	default:
		// Arrays of scalars, empty arrays, and plain objects fall through
		// to their structural text form.
		return value.Raw
	}
}

// cellText renders one table cell. Object-id references ({"$oid": …})
// resolve to the id itself, numbers get exactly four decimal places, and
// missing or null values show as a dash.
func cellText(value gjson.Result) string {
	if !value.Exists() || value.Type == gjson.Null {
		return "-"
	}
	if value.IsObject() {
		if oid := value.Get("$oid"); oid.Exists() {
			return oid.String()
		}
		return value.Raw
	}
	if value.Type == gjson.Number {
		return strconv.FormatFloat(value.Float(), 'f', 4, 64)
	}
	return scalarText(value)
}

// humanize inserts spaces before internal capitals, replaces underscores
// with spaces, normalizes the standalone word "audio" to "Audio", and trims.
func humanize(key string) string {
	label := camelRE.ReplaceAllString(key, " $1")
	label = strings.ReplaceAll(label, "_", " ")
	label = audioRE.ReplaceAllString(label, "Audio")
	return strings.TrimSpace(label)
}

// columnLabel humanizes a column key without the audio word normalization.
func columnLabel(key string) string {
	label := camelRE.ReplaceAllString(key, " $1")
	label = strings.ReplaceAll(label, "_", " ")
	return strings.TrimSpace(label)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
