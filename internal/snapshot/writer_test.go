package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const placeDetails = `{"html_attributions":[],"result":{"address_components":[{"long_name":"277","types":["street_number"]}],"geometry":{"location":{"lat":40.7142205,"lng":-73.9612903}},"name":"277 Bedford Ave","place_id":"ChIJd8BlQ2BZwokRAFUEcm_qrcA","rating":4.5},"status":"OK"}`

// TestWriteJSON_RoundTrip tests that the written file parses back to the same document
func TestWriteJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "place_details.txt")

	if err := WriteJSON(path, json.RawMessage(placeDetails)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cannot read back: %v", err)
	}

	var want, got any
	if err := json.Unmarshal([]byte(placeDetails), &want); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(written, &got); err != nil {
		t.Fatalf("written file is not JSON: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("round trip mismatch:\nwant %v\ngot  %v", want, got)
	}
}

// TestWriteJSON_Indentation tests the four space indent
func TestWriteJSON_Indentation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := WriteJSON(path, json.RawMessage(`{"status":"OK","result":{"name":"x"}}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	written, _ := os.ReadFile(path)
	expected := "{\n    \"status\": \"OK\",\n    \"result\": {\n        \"name\": \"x\"\n    }\n}\n"
	if string(written) != expected {
		t.Errorf("unexpected layout:\n%s", written)
	}
}

// TestWriteJSON_Overwrites tests that each run replaces the previous file
func TestWriteJSON_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := WriteJSON(path, json.RawMessage(`{"run":1,"padding":"a much longer first document"}`)); err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(path, json.RawMessage(`{"run":2}`)); err != nil {
		t.Fatal(err)
	}

	written, _ := os.ReadFile(path)
	if strings.Contains(string(written), "padding") || !strings.Contains(string(written), `"run": 2`) {
		t.Errorf("expected only the second document, got %s", written)
	}
}

// TestWriteJSON_InvalidDocument tests that nothing is written on failure
func TestWriteJSON_InvalidDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	if err := WriteJSON(path, json.RawMessage(`{"broken":`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty directory, found %d entries", len(entries))
	}
}

// TestWriteJSON_MissingDirectory tests a path that cannot be written
func TestWriteJSON_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does", "not", "exist.json")

	if err := WriteJSON(path, json.RawMessage(`{}`)); err == nil {
		t.Error("expected error for missing directory")
	}
}
