package flora

import (
	"os"
	"path/filepath"
	"testing"
)

func testIcons() IconSet {
	return IconSet{
		Species: AssetIndex{
			"ficus benghalensis": "/static/Icons/Species/Ficus benghalensis.png",
			"neem":               "/static/Icons/Species/neem.png",
		},
		Leaf: AssetIndex{
			"simple leaf":        "/static/Icons/Leaf/simple leaf.png",
			"single compound":    "/static/Icons/Leaf/single compound.png",
			"pinnately compound": "/static/Icons/Leaf/pinnately compound.png",
			"palmate":            "/static/Icons/Leaf/palmate.png",
		},
		Fruit: AssetIndex{
			"pod":   "/static/Icons/Fruit/pod.png",
			"drupe": "/static/Icons/Fruit/drupe.png",
		},
	}
}

func TestResolveSpeciesIcon(t *testing.T) {
	icons := testIcons()

	tests := []struct {
		scientific, common string
		want               string
		wantOK             bool
	}{
		{"Ficus benghalensis", "Banyan", "/static/Icons/Species/Ficus benghalensis.png", true},
		// Direct lookups miss; the paren-stripped scientific name hits.
		{"Ficus benghalensis (L.)", "Banyan", "/static/Icons/Species/Ficus benghalensis.png", true},
		{"Azadirachta indica", "Neem", "/static/Icons/Species/neem.png", true},
		{"Azadirachta indica", "Neem (margosa)", "/static/Icons/Species/neem.png", true},
		{"Unknown species", "Unknown", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		got, ok := icons.ResolveSpeciesIcon(tt.scientific, tt.common)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ResolveSpeciesIcon(%q, %q) = (%q, %v), want (%q, %v)",
				tt.scientific, tt.common, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestResolveSpeciesIconScientificWins(t *testing.T) {
	icons := IconSet{Species: AssetIndex{
		"ficus benghalensis": "sci.png",
		"banyan":             "common.png",
	}}
	got, ok := icons.ResolveSpeciesIcon("Ficus benghalensis", "Banyan")
	if !ok || got != "sci.png" {
		t.Errorf("got (%q, %v), want the scientific-name hit first", got, ok)
	}
}

func TestResolveLeafIcon(t *testing.T) {
	icons := testIcons()

	tests := []struct {
		category, subtype string
		want              string
		wantOK            bool
	}{
		{LeafSimple, "", "/static/Icons/Leaf/simple leaf.png", true},
		{LeafPinnately, "single", "/static/Icons/Leaf/single compound.png", true},
		// No "double compound" asset; the chain falls through to nothing.
		{LeafPinnately, "double", "", false},
		{LeafPinnately, "", "/static/Icons/Leaf/pinnately compound.png", true},
		// "palmately compound" is absent; "palmate" is the second phrase.
		{LeafPalmately, "", "/static/Icons/Leaf/palmate.png", true},
		{"", "", "", false},
		{"frond", "", "", false},
	}
	for _, tt := range tests {
		got, ok := icons.ResolveLeafIcon(tt.category, tt.subtype)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ResolveLeafIcon(%q, %q) = (%q, %v), want (%q, %v)",
				tt.category, tt.subtype, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestResolveFruitIcon(t *testing.T) {
	icons := testIcons()

	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"Pod", "/static/Icons/Fruit/pod.png", true},
		{"drupe", "/static/Icons/Fruit/drupe.png", true},
		{"Berry", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := icons.ResolveFruitIcon(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ResolveFruitIcon(%q) = (%q, %v), want (%q, %v)",
				tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestResolvePhotos(t *testing.T) {
	root := t.TempDir()
	photoRoot := filepath.Join(root, "static", "photos")
	dir := filepath.Join(photoRoot, "ficus-benghalensis")
	os.MkdirAll(dir, 0o755)
	os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "a.png"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)

	photos := ResolvePhotos(photoRoot, root, "ficus-benghalensis")
	want := []string{
		"/static/photos/ficus-benghalensis/a.png",
		"/static/photos/ficus-benghalensis/b.jpg",
	}
	if len(photos) != len(want) {
		t.Fatalf("photos = %v, want %v", photos, want)
	}
	for i := range want {
		if photos[i] != want[i] {
			t.Errorf("photos[%d] = %q, want %q", i, photos[i], want[i])
		}
	}
}

func TestResolvePhotosMissingDir(t *testing.T) {
	if got := ResolvePhotos(t.TempDir(), ".", "no-such-slug"); got != nil {
		t.Errorf("photos = %v, want nil for missing directory", got)
	}
}
