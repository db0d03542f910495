package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDataset(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadFileWithHeader(t *testing.T) {
	path := writeDataset(t, "species.csv",
		[]byte("Sr No,Scientific name,Common name\n1,Ficus benghalensis,Banyan\n2,Azadirachta indica,Neem\n"))

	rows, err := ReadFile(path, FormatSpec{Delimiter: ",", HasHeader: true}, nil)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0]["Scientific name"] != "Ficus benghalensis" {
		t.Errorf("Scientific name = %q", rows[0]["Scientific name"])
	}
	if rows[1]["Common name"] != "Neem" {
		t.Errorf("Common name = %q", rows[1]["Common name"])
	}
}

func TestReadFileSemicolonDelimiter(t *testing.T) {
	path := writeDataset(t, "species.csv", []byte("a;b\n1;2\n"))

	rows, err := ReadFile(path, FormatSpec{Delimiter: ";", HasHeader: true}, nil)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(rows) != 1 || rows[0]["a"] != "1" || rows[0]["b"] != "2" {
		t.Errorf("rows = %v", rows)
	}
}

func TestReadFileDefaultHeader(t *testing.T) {
	path := writeDataset(t, "bare.csv", []byte("Ficus benghalensis,Banyan\n"))

	rows, err := ReadFile(path, FormatSpec{Delimiter: ","}, []string{"Scientific name", "Common name"})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0]["Scientific name"] != "Ficus benghalensis" {
		t.Errorf("Scientific name = %q", rows[0]["Scientific name"])
	}
}

func TestReadFileShortRow(t *testing.T) {
	path := writeDataset(t, "short.csv", []byte("a,b,c\n1,2\n"))

	rows, err := ReadFile(path, FormatSpec{Delimiter: ",", HasHeader: true}, nil)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if rows[0]["c"] != "" {
		t.Errorf("missing cell = %q, want empty", rows[0]["c"])
	}
}

func TestReadFileLatin1(t *testing.T) {
	// "Crête" with ê as the single ISO 8859-1 byte 0xEA.
	content := []byte{'n', 'a', 'm', 'e', '\n', 'C', 'r', 0xEA, 't', 'e', '\n'}
	path := writeDataset(t, "latin1.csv", content)

	rows, err := ReadFile(path, FormatSpec{Delimiter: ",", Encoding: "iso-8859-1", HasHeader: true}, nil)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if rows[0]["name"] != "Crête" {
		t.Errorf("name = %q, want transcoded UTF-8", rows[0]["name"])
	}
}

func TestReadFileMissing(t *testing.T) {
	rows, err := ReadFile(filepath.Join(t.TempDir(), "absent.csv"), FormatSpec{}, nil)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if rows != nil {
		t.Errorf("rows = %v, want nil for a missing file", rows)
	}
}

func TestReadFileEmpty(t *testing.T) {
	path := writeDataset(t, "empty.csv", nil)

	rows, err := ReadFile(path, FormatSpec{HasHeader: true}, nil)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}

func TestReadFileUnsupportedEncoding(t *testing.T) {
	path := writeDataset(t, "x.csv", []byte("a\n1\n"))

	if _, err := ReadFile(path, FormatSpec{Encoding: "martian-5"}, nil); err == nil {
		t.Error("want error for unknown encoding")
	}
}
