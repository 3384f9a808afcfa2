package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/yndnr/triemap/pkg/ordmap"
)

func TestTableFormatter_Format_Table(t *testing.T) {
	table := &Table{
		Headers: []string{"NAME", "VALUE"},
		Rows: [][]string{
			{"key1", "value1"},
			{"key2", "value2"},
		},
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "NAME  VALUE\nkey1  value1\nkey2  value2\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestTableFormatter_Format_NoHeaders(t *testing.T) {
	table := Table{
		Headers: []string{"NAME"},
		Rows:    [][]string{{"data"}},
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{NoHeaders: true}).Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.String() != "data\n" {
		t.Errorf("Format() = %q, want %q", buf.String(), "data\n")
	}
}

func TestTableFormatter_Format_Pairs(t *testing.T) {
	pairs := []ordmap.Pair{
		{Key: "", Value: "EMPTY"},
		{Key: "bison", Value: "BISON"},
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, pairs); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "KEY    VALUE\n\"\"     EMPTY\nbison  BISON\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

type wideRow struct {
	Key  string `json:"key"`
	Path string `json:"path" table:"wide"`
	Skip string `table:"-"`
}

func TestTableFormatter_Format_Wide(t *testing.T) {
	rows := []wideRow{{Key: "ab", Path: "A-B", Skip: "x"}}

	tests := []struct {
		wide bool
		want string
	}{
		{false, "KEY\nab\n"},
		{true, "KEY  PATH\nab   A-B\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := (&TableFormatter{Wide: tt.wide}).Format(&buf, rows); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if buf.String() != tt.want {
			t.Errorf("Format(wide=%v) = %q, want %q", tt.wide, buf.String(), tt.want)
		}
	}
}

func TestTableFormatter_Format_Scalars(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, []string{"cat", "dog"}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if want := "VALUE\ncat\ndog\n"; buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestTableFormatter_Format_Map(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]int{"zebra": 2, "ant": 1}
	if err := (&TableFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if want := "KEY    VALUE\nant    1\nzebra  2\n"; buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestTableFormatter_Format_Struct(t *testing.T) {
	var buf bytes.Buffer
	data := struct {
		Size    int  `json:"size"`
		Healthy bool `json:"healthy"`
	}{3, true}

	if err := (&TableFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if want := "FIELD    VALUE\nsize     3\nhealthy  true\n"; buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestTableFormatter_Format_Fallback(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, 42); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.String() != "42\n" {
		t.Errorf("Format() = %q, want 42", buf.String())
	}
}

func TestFormatValue(t *testing.T) {
	var nilPtr *int
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"empty string", "", `""`},
		{"string", "x", "x"},
		{"int", 7, "7"},
		{"uint", uint8(9), "9"},
		{"float", 1.5, "1.5"},
		{"whole float", 3.0, "3"},
		{"bool", false, "false"},
		{"nil pointer", nilPtr, "-"},
		{"empty slice", []int{}, "-"},
		{"slice", []int{1, 2}, "[2 items]"},
		{"stringer", ordmap.Pair{Key: "k", Value: "v"}, "<k, v>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(reflect.ValueOf(tt.in)); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	for in, want := range map[string]string{
		"Key":         "key",
		"HistorySize": "history_size",
		"A":           "a",
	} {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTable_SortRows(t *testing.T) {
	table := &Table{Rows: [][]string{{"b"}, {}, {"a"}}}
	table.SortRows()

	var got []string
	for _, r := range table.Rows {
		got = append(got, strings.Join(r, ","))
	}
	if want := []string{"", "a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SortRows() = %v, want %v", got, want)
	}
}
