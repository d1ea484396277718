package record_test

import (
	"reflect"
	"testing"

	"github.com/cyvox/console/internal/app/system/record"
)

func render(t *testing.T, doc string) []record.Field {
	t.Helper()
	return record.Render([]byte(doc))
}

func fieldByKey(t *testing.T, fields []record.Field, key string) record.Field {
	t.Helper()
	for _, f := range fields {
		if f.Key == key {
			return f
		}
	}
	t.Fatalf("no field with key %q in %+v", key, fields)
	return record.Field{}
}

func TestRender_DocumentOrderPreserved(t *testing.T) {
	fields := render(t, `{"b":1,"a":2,"c":3}`)
	var keys []string
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	if !reflect.DeepEqual(keys, []string{"b", "a", "c"}) {
		t.Errorf("key order: got %v", keys)
	}
}

func TestRender_NonObjectInput(t *testing.T) {
	for _, doc := range []string{`[1,2,3]`, `"text"`, `42`, `not json`} {
		if got := record.Render([]byte(doc)); got != nil {
			t.Errorf("Render(%q): got %+v, want nil", doc, got)
		}
	}
}

func TestMediaClassification(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		key   string
		media bool
	}{
		{"audio http url", `{"audioFile":"http://cdn.example/a.mp3"}`, "audioFile", true},
		{"audio https url", `{"scamAudio":"https://cdn.example/a.wav"}`, "scamAudio", true},
		{"case insensitive key", `{"AudioRecording":"https://x/a.mp3"}`, "AudioRecording", true},
		{"audio substring anywhere", `{"callaudiourl":"http://x/a"}`, "callaudiourl", true},
		{"empty string stays scalar", `{"audioFile":""}`, "audioFile", false},
		{"whitespace stays scalar", `{"audioFile":"   "}`, "audioFile", false},
		{"non-http scheme stays scalar", `{"audioFile":"ftp://x/a.mp3"}`, "audioFile", false},
		{"bare value stays scalar", `{"audioFile":"recording.mp3"}`, "audioFile", false},
		{"non-string stays scalar", `{"audioFile":42}`, "audioFile", false},
		{"url without audio key stays scalar", `{"website":"https://x.example"}`, "website", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fieldByKey(t, render(t, tt.doc), tt.key)
			if got := f.Kind == record.KindMedia; got != tt.media {
				t.Errorf("media: got %v, want %v (field %+v)", got, tt.media, f)
			}
		})
	}
}

func TestMediaField_URLAndLabel(t *testing.T) {
	f := fieldByKey(t, render(t, `{"scamAudioUrl":"https://cdn.example/rec.mp3"}`), "scamAudioUrl")
	if f.URL != "https://cdn.example/rec.mp3" {
		t.Errorf("URL: got %q", f.URL)
	}
	// "scamAudioUrl" → "scam Audio Url" with audio normalized.
	if f.Label != "scam Audio Url" {
		t.Errorf("Label: got %q", f.Label)
	}
}

func TestTableClassification(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		key   string
		table bool
	}{
		{"array of objects", `{"matchedResults":[{"matched_id":"a"}]}`, "matchedResults", true},
		{"empty array stays scalar", `{"matchedResults":[]}`, "matchedResults", false},
		{"array of scalars stays scalar", `{"tags":["a","b"]}`, "tags", false},
		{"first element null stays scalar", `{"rows":[null,{"a":1}]}`, "rows", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fieldByKey(t, render(t, tt.doc), tt.key)
			if got := f.Kind == record.KindTable; got != tt.table {
				t.Errorf("table: got %v, want %v (field %+v)", got, tt.table, f)
			}
		})
	}
}

func TestTable_ColumnUnionFirstAppearanceOrder(t *testing.T) {
	doc := `{"results":[
		{"matched_id":"a","matched_score":1},
		{"matched_id":"b","extra":"x"},
		{"other":"y"}
	]}`
	f := fieldByKey(t, render(t, doc), "results")

	wantCols := []string{"matched_id", "matched_score", "extra", "other"}
	if !reflect.DeepEqual(f.Columns, wantCols) {
		t.Errorf("Columns: got %v, want %v", f.Columns, wantCols)
	}
	if len(f.Rows) != 3 {
		t.Fatalf("Rows: got %d, want 3", len(f.Rows))
	}
}

func TestTable_CellRendering(t *testing.T) {
	doc := `{"results":[
		{"id":{"$oid":"64f0aa"},"score":0.87123,"label":"spoof","missing_later":true},
		{"id":"plain","score":3,"note":null}
	]}`
	f := fieldByKey(t, render(t, doc), "results")

	// Columns: id, score, label, missing_later, note
	row0 := f.Rows[0]
	row1 := f.Rows[1]

	if row0[0] != "64f0aa" {
		t.Errorf("$oid cell: got %q", row0[0])
	}
	if row0[1] != "0.8712" {
		t.Errorf("number cell should have 4 decimals: got %q", row0[1])
	}
	if row1[1] != "3.0000" {
		t.Errorf("integer cell should have 4 decimals: got %q", row1[1])
	}
	if row1[2] != "-" {
		t.Errorf("absent cell: got %q, want -", row1[2])
	}
	if row1[3] != "-" {
		t.Errorf("absent cell: got %q, want -", row1[3])
	}
	if row1[4] != "-" {
		t.Errorf("null cell: got %q, want -", row1[4])
	}
	if row0[2] != "spoof" {
		t.Errorf("string cell: got %q", row0[2])
	}
}

func TestTable_LabelCapitalized(t *testing.T) {
	f := fieldByKey(t, render(t, `{"matchedResults":[{"a":1}]}`), "matchedResults")
	if f.Label != "Matched Results" {
		t.Errorf("Label: got %q", f.Label)
	}
}

func TestScalarText(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		key  string
		want string
	}{
		{"null", `{"v":null}`, "v", "null"},
		{"true", `{"v":true}`, "v", "true"},
		{"false", `{"v":false}`, "v", "false"},
		{"string verbatim", `{"v":"hello"}`, "v", "hello"},
		{"number as written", `{"v":1250.50}`, "v", "1250.50"},
		{"integer as written", `{"v":42}`, "v", "42"},
		{"object raw", `{"v":{"a":1}}`, "v", `{"a":1}`},
		{"scalar array raw", `{"v":[1,2]}`, "v", `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fieldByKey(t, render(t, tt.doc), tt.key)
			if f.Kind != record.KindScalar {
				t.Fatalf("kind: got %v, want scalar", f.Kind)
			}
			if f.Text != tt.want {
				t.Errorf("Text: got %q, want %q", f.Text, tt.want)
			}
		})
	}
}

func TestScalarLabel_UnderscoresToSpaces(t *testing.T) {
	f := fieldByKey(t, render(t, `{"phone_number":"555"}`), "phone_number")
	if f.Label != "phone number" {
		t.Errorf("Label: got %q", f.Label)
	}
}

func TestRender_Totality(t *testing.T) {
	// Every field of a mixed record yields exactly one classified field.
	doc := `{"_id":{"$oid":"abc"},"subject":"s","moneyScammed":100,
		"audioUrl":"https://x/a.mp3","matchedResults":[{"m":1}],
		"tags":[],"flag":false}`
	fields := render(t, doc)
	if len(fields) != 7 {
		t.Fatalf("got %d fields, want 7", len(fields))
	}
}
