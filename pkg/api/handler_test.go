package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/florakit/herbarium/pkg/flora"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	root := t.TempDir()

	iconsRoot := filepath.Join(root, "static", "Icons")
	os.MkdirAll(filepath.Join(iconsRoot, "Species"), 0o755)
	os.MkdirAll(filepath.Join(iconsRoot, "Leaf"), 0o755)
	os.MkdirAll(filepath.Join(iconsRoot, "Fruit"), 0o755)
	os.WriteFile(filepath.Join(iconsRoot, "Leaf", "simple leaf.png"), []byte("png"), 0o644)

	rows := []map[string]string{
		{
			flora.ColScientificName: "Ficus benghalensis",
			flora.ColCommonName:     "Banyan",
			flora.ColLeafType:       "Simple leaf",
			flora.ColFruitType:      "Fig",
		},
		{
			flora.ColScientificName: "Azadirachta indica",
			flora.ColCommonName:     "Neem",
			flora.ColLeafType:       "Pinnately compound (single)",
			flora.ColFruitType:      "Drupe",
		},
	}
	cat := flora.NewCatalog(flora.Config{
		Root:      root,
		PhotoRoot: filepath.Join(root, "static", "photos"),
		IconsRoot: iconsRoot,
		Source:    func() ([]map[string]string, error) { return rows, nil },
	})
	if err := cat.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	srv := httptest.NewServer(NewRouter(cat, filepath.Join(root, "static")))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, wantCode int, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantCode {
		t.Fatalf("GET %s: status %d, want %d", url, resp.StatusCode, wantCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func TestListSpecies(t *testing.T) {
	srv := setupServer(t)

	var body struct {
		Items []struct {
			ID             string `json:"id"`
			ScientificName string `json:"scientific_name"`
		} `json:"items"`
		Filters struct {
			FruitTypes []string `json:"fruit_types"`
		} `json:"filters"`
	}
	getJSON(t, srv.URL+"/v1/species", http.StatusOK, &body)

	if len(body.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(body.Items))
	}
	if body.Items[0].ID != "ficus-benghalensis" {
		t.Errorf("first id = %q", body.Items[0].ID)
	}
	if len(body.Filters.FruitTypes) != 2 || body.Filters.FruitTypes[0] != "Drupe" {
		t.Errorf("fruit_types = %v", body.Filters.FruitTypes)
	}
}

func TestGetSpecies(t *testing.T) {
	srv := setupServer(t)

	var rec struct {
		ID           string `json:"id"`
		CommonName   string `json:"common_name"`
		LeafCategory string `json:"leaf_category"`
		LeafSubtype  string `json:"leaf_subtype"`
		Icons        struct {
			Leaf string `json:"leaf"`
		} `json:"icons"`
	}
	getJSON(t, srv.URL+"/v1/species/azadirachta-indica", http.StatusOK, &rec)

	if rec.CommonName != "Neem" {
		t.Errorf("common_name = %q", rec.CommonName)
	}
	if rec.LeafCategory != "Pinnately compound" || rec.LeafSubtype != "single" {
		t.Errorf("classification = (%q, %q)", rec.LeafCategory, rec.LeafSubtype)
	}
}

func TestGetSpeciesNotFound(t *testing.T) {
	srv := setupServer(t)

	var body struct {
		Error string `json:"error"`
	}
	getJSON(t, srv.URL+"/v1/species/no-such-slug", http.StatusNotFound, &body)
	if body.Error != "not found" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestListFilters(t *testing.T) {
	srv := setupServer(t)

	var body struct {
		Filters struct {
			LeafToplevel  []string          `json:"leaf_toplevel"`
			LeafChipIcons map[string]string `json:"leaf_chip_icons"`
		} `json:"filters"`
	}
	getJSON(t, srv.URL+"/v1/filters", http.StatusOK, &body)

	if len(body.Filters.LeafToplevel) != 3 {
		t.Errorf("leaf_toplevel = %v", body.Filters.LeafToplevel)
	}
	if body.Filters.LeafChipIcons["Simple"] == "" {
		t.Error("no chip icon for Simple")
	}
}

func TestClassifyLeaf(t *testing.T) {
	srv := setupServer(t)

	var body struct {
		Input    string `json:"input"`
		Category string `json:"category"`
		Subtype  string `json:"subtype"`
	}
	getJSON(t, srv.URL+"/v1/classify/leaf/Pinnately compound (double)", http.StatusOK, &body)

	if body.Category != "Pinnately compound" || body.Subtype != "double" {
		t.Errorf("classification = (%q, %q)", body.Category, body.Subtype)
	}
}

func TestHealth(t *testing.T) {
	srv := setupServer(t)

	var body struct {
		Status  string `json:"status"`
		Species int    `json:"species"`
		Icons   int    `json:"icons"`
	}
	getJSON(t, srv.URL+"/v1/health", http.StatusOK, &body)

	if body.Status != "ok" || body.Species != 2 || body.Icons != 1 {
		t.Errorf("health = %+v", body)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := setupServer(t)

	resp := getJSON(t, srv.URL+"/v1/health", http.StatusOK, nil)
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestStaticAssets(t *testing.T) {
	srv := setupServer(t)

	resp, err := http.Get(srv.URL + "/static/Icons/Leaf/simple leaf.png")
	if err != nil {
		t.Fatalf("GET static: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("static status = %d, want 200", resp.StatusCode)
	}
}
