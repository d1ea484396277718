package cyvox

import (
	"time"

	"github.com/tidwall/gjson"
)

// Record is one schema-less document from the CyVox backend, kept as the raw
// JSON bytes it arrived in. The backend adds and renames fields without
// notice, so nothing here binds to a fixed struct; typed accessors pull out
// the handful of fields the console aggregates on, and everything else is
// rendered generically.
type Record []byte

// UnmarshalJSON captures the raw bytes of the document, exactly as
// json.RawMessage does, so schema-less objects survive decoding intact.
func (rec *Record) UnmarshalJSON(data []byte) error {
	*rec = append((*rec)[:0], data...)
	return nil
}

// AllComplaintsResponse is the envelope returned by /api/complaint/get-all.
type AllComplaintsResponse struct {
	Complaints []Record `json:"All complaints"`
}

// UserComplaintsResponse is the envelope returned by /api/complaint/user/{id}.
type UserComplaintsResponse struct {
	Complaints []Record `json:"complaints"`
}

// AllUsersResponse is the envelope returned by /api/user/all.
type AllUsersResponse struct {
	Users []Record `json:"All users"`
}

// get resolves a dotted gjson path against the raw document.
func (rec Record) get(path string) gjson.Result {
	return gjson.GetBytes(rec, path)
}

// ID returns the record's identifier: a string "_id", or the "$oid" of an
// extended-JSON ObjectID, or "" when neither is present.
func (rec Record) ID() string {
	id := rec.get("_id")
	if id.Type == gjson.String {
		return id.String()
	}
	if oid := id.Get("$oid"); oid.Exists() {
		return oid.String()
	}
	return ""
}

// String returns the named field as a string, or "" when absent or null.
func (rec Record) String(field string) string {
	v := rec.get(field)
	if !v.Exists() || v.Type == gjson.Null {
		return ""
	}
	return v.String()
}

// MoneyScammed returns the reported loss for a complaint. Absent and
// non-numeric values count as zero so aggregate totals never fail on a
// partial record.
func (rec Record) MoneyScammed() float64 {
	v := rec.get("moneyScammed")
	if v.Type != gjson.Number {
		return 0
	}
	return v.Float()
}

// PreviousComplaints returns the length of the record's previousComplaints
// array, or zero when the field is absent or not an array.
func (rec Record) PreviousComplaints() int {
	v := rec.get("previousComplaints")
	if !v.IsArray() {
		return 0
	}
	return len(v.Array())
}

// CreatedAt returns the record's recency timestamp: createdAt when parseable,
// otherwise updatedAt, otherwise the zero time. Records with no parseable
// timestamp sort last under a newest-first ordering.
func (rec Record) CreatedAt() time.Time {
	if t, ok := parseTime(rec.get("createdAt")); ok {
		return t
	}
	if t, ok := parseTime(rec.get("updatedAt")); ok {
		return t
	}
	return time.Time{}
}

// parseTime accepts the timestamp shapes the backend emits: an RFC 3339
// string or an extended-JSON {"$date": ...} wrapper around one.
func parseTime(v gjson.Result) (time.Time, bool) {
	if d := v.Get("$date"); d.Exists() {
		v = d
	}
	if v.Type != gjson.String {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v.String()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
