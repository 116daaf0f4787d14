package settlement

import (
	"encoding/json"
	"testing"
)

func TestJSONObjectWriter(t *testing.T) {
	var jw jsonObjectWriter
	jw.Append("b", 2)
	jw.Append("a", "one")
	jw.Append("c", []int{1, 2})

	data, err := json.Marshal(&jw)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// keys keep insertion order, not alphabetical order
	want := `{"b":2,"a":"one","c":[1,2]}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestJSONObjectWriterOptional(t *testing.T) {
	var jw jsonObjectWriter
	jw.Append("always", 1)
	jw.Optional("empty", "")
	jw.Optional("zero", 0)
	jw.Optional("present", "x")

	data, err := json.Marshal(&jw)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"always":1,"present":"x"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestJSONObjectWriterEmpty(t *testing.T) {
	var jw jsonObjectWriter
	data, err := json.Marshal(&jw)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("got %s, want {}", data)
	}
}
