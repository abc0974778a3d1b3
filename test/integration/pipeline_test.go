package integration

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"swipecatalog/internal/config"
	"swipecatalog/internal/export"
	"swipecatalog/internal/logger"
	"swipecatalog/internal/models"
	"swipecatalog/internal/normalizer"
	"swipecatalog/internal/pipeline"
	"swipecatalog/pkg/metadata"
)

const fixtureRows = 19

// copyFixtures copies the sample retailer feeds into a fresh input directory.
func copyFixtures(t *testing.T) string {
	t.Helper()

	src := filepath.Join("..", "fixtures", "feeds")
	dst := t.TempDir()

	entries, err := os.ReadDir(src)
	if err != nil {
		t.Fatalf("Failed to read fixtures: %v", err)
	}

	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(src, e.Name()))
		if err != nil {
			t.Fatalf("Failed to read fixture %s: %v", e.Name(), err)
		}

		if err := os.WriteFile(filepath.Join(dst, e.Name()), data, 0644); err != nil {
			t.Fatalf("Failed to copy fixture %s: %v", e.Name(), err)
		}
	}

	return dst
}

func newConfig(inputDir, outputDir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Catalog.InputDir = inputDir
	cfg.Catalog.Output.Dir = outputDir

	return cfg
}

func build(t *testing.T, cfg *config.Config) *pipeline.Result {
	t.Helper()

	p, err := pipeline.New(cfg, logger.NewLoggerWithWriter("error", io.Discard), nil)
	if err != nil {
		t.Fatalf("pipeline.New failed: %v", err)
	}

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	return res
}

func writeAll(t *testing.T, cfg *config.Config, products []models.Product) (string, string) {
	t.Helper()

	csvPath := cfg.OutputPath(cfg.Catalog.Output.CSVFile)
	if err := export.WriteCSV(csvPath, products); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	jsonPath := cfg.OutputPath(cfg.Catalog.Output.JSONFile)
	if err := export.WriteJSON(jsonPath, products, cfg.Catalog.Output.PrettyPrint); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	return csvPath, jsonPath
}

func TestPipeline_AllSources(t *testing.T) {
	cfg := newConfig(copyFixtures(t), t.TempDir())
	res := build(t, cfg)

	if len(res.Products) != fixtureRows {
		t.Fatalf("Expected %d records, got %d", fixtureRows, len(res.Products))
	}

	if failed := res.Failed(); len(failed) != 0 {
		t.Errorf("Unexpected failed sources: %v", failed)
	}

	if res.ValidationErr != nil {
		t.Errorf("Unexpected validation error: %v", res.ValidationErr)
	}

	byID := make(map[string]models.Product, len(res.Products))
	for _, p := range res.Products {
		byID[p.ID] = p
	}

	if res.Products[0].ID != "alo_0" {
		t.Errorf("Expected first record alo_0, got %s", res.Products[0].ID)
	}

	if _, ok := byID["gs_B3A2-001"]; !ok {
		t.Error("Expected native gymshark id gs_B3A2-001")
	}

	if p, ok := byID["gs_row2"]; !ok {
		t.Error("Expected row ordinal id gs_row2 for the gymshark row without product_id")
	} else if p.Price != nil || p.PriceRange != models.PriceUnknown {
		t.Errorf("gs_row2 price = %v/%s, want null/unknown", p.Price, p.PriceRange)
	}

	if p := byID["alo_2"]; p.Price == nil || *p.Price != 1098 || p.PriceRange != models.PriceLuxury {
		t.Errorf("alo_2 price = %v/%s, want 1098/luxury", p.Price, p.PriceRange)
	}

	if p := byID["alo_2"]; p.ImageURL != normalizer.PlaceholderImageURL {
		t.Errorf("alo_2 image = %q, want placeholder", p.ImageURL)
	}

	if p := byID["nakd_1"]; p.Name != "Unknown Product" || p.ProductURL != "#" {
		t.Errorf("nakd_1 defaults not applied: %+v", p)
	}

	if p := byID["pp_0"]; p.Category != models.CategoryDresses || p.Color != "red" {
		t.Errorf("pp_0 = %s/%s, want dresses/red", p.Category, p.Color)
	}

	for _, p := range res.Products {
		if !p.Category.IsValid() || !p.Style.IsValid() || !p.Fit.IsValid() || !p.PriceRange.IsValid() {
			t.Errorf("Record %s has out-of-range enum: %+v", p.ID, p)
		}
	}
}

func TestPipeline_DefaultSourceOrder(t *testing.T) {
	cfg := newConfig(copyFixtures(t), t.TempDir())
	products := build(t, cfg).Products

	lastAlo := -1

	for i, p := range products {
		if strings.HasPrefix(p.ID, "alo_") {
			lastAlo = i
		}
	}

	if lastAlo < 0 || lastAlo+1 >= len(products) || products[lastAlo+1].ID != "pp_0" {
		t.Fatalf("Expected pp_0 right after the last alo record, got ids %v", idsOf(products))
	}

	prefixes := []string{"alo_", "pp_", "gs_", "ed_", "nakd_", "cup_", "as_", "vu_"}
	rank := 0

	for _, p := range products {
		for rank < len(prefixes) && !strings.HasPrefix(p.ID, prefixes[rank]) {
			rank++
		}

		if rank == len(prefixes) {
			t.Fatalf("Record %s out of source order, ids %v", p.ID, idsOf(products))
		}
	}

	if last := products[len(products)-1].ID; !strings.HasPrefix(last, "vu_") {
		t.Errorf("Expected vuori records last, got %s", last)
	}
}

func idsOf(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}

	return out
}

func TestPipeline_Idempotent(t *testing.T) {
	input := copyFixtures(t)

	var outputs [2][2][]byte

	for i := range outputs {
		cfg := newConfig(input, t.TempDir())
		cfg.Advanced.ParallelSources = i == 1

		csvPath, jsonPath := writeAll(t, cfg, build(t, cfg).Products)

		for j, path := range []string{csvPath, jsonPath} {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read output: %v", err)
			}

			outputs[i][j] = data
		}
	}

	if !bytes.Equal(outputs[0][0], outputs[1][0]) {
		t.Error("CSV output differs between runs")
	}

	if !bytes.Equal(outputs[0][1], outputs[1][1]) {
		t.Error("JSON output differs between runs")
	}
}

func TestPipeline_SourceIsolation(t *testing.T) {
	input := copyFixtures(t)
	full := build(t, newConfig(input, t.TempDir())).Products

	if err := os.Remove(filepath.Join(input, "edikted_products.csv")); err != nil {
		t.Fatalf("Failed to remove feed: %v", err)
	}

	res := build(t, newConfig(input, t.TempDir()))

	var want []models.Product

	for _, p := range full {
		if !strings.HasPrefix(p.ID, "ed_") {
			want = append(want, p)
		}
	}

	if len(want) == len(full) {
		t.Fatal("Fixture has no edikted rows")
	}

	if !reflect.DeepEqual(res.Products, want) {
		t.Errorf("Expected only edikted records to be missing, got %d records (want %d)", len(res.Products), len(want))
	}

	if failed := res.Failed(); !reflect.DeepEqual(failed, []string{"edikted"}) {
		t.Errorf("Failed() = %v, want [edikted]", failed)
	}
}

func TestPipeline_CSVAndJSONAgree(t *testing.T) {
	cfg := newConfig(copyFixtures(t), t.TempDir())
	cfg.Catalog.Output.PrettyPrint = true

	csvPath, jsonPath := writeAll(t, cfg, build(t, cfg).Products)

	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Failed to open csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse csv: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read json: %v", err)
	}

	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		t.Fatalf("Failed to parse json: %v", err)
	}

	if !reflect.DeepEqual(rows[0], models.Columns) {
		t.Fatalf("CSV header = %v", rows[0])
	}

	if len(rows)-1 != len(objects) {
		t.Fatalf("CSV has %d rows, JSON has %d objects", len(rows)-1, len(objects))
	}

	for i, obj := range objects {
		for j, col := range models.Columns {
			var got string

			switch v := obj[col].(type) {
			case string:
				got = v
			case float64:
				got = export.FormatPrice(&v)
			default:
				t.Fatalf("Unexpected JSON type %T for %s", v, col)
			}

			if got != rows[i+1][j] {
				t.Errorf("Row %d column %s: csv=%q json=%q", i, col, rows[i+1][j], got)
			}
		}
	}
}

func TestPipeline_ManifestVerifies(t *testing.T) {
	cfg := newConfig(copyFixtures(t), t.TempDir())
	cfg.Catalog.Output.SQLiteFile = "catalog.db"

	res := build(t, cfg)
	csvPath, jsonPath := writeAll(t, cfg, res.Products)

	dbPath := cfg.OutputPath(cfg.Catalog.Output.SQLiteFile)
	if err := export.WriteSQLite(context.Background(), dbPath, res.Products); err != nil {
		t.Fatalf("WriteSQLite failed: %v", err)
	}

	m := metadata.New(len(res.Products), res.CountBySource())
	for _, p := range []string{csvPath, jsonPath, dbPath} {
		if err := m.AddFile(p); err != nil {
			t.Fatalf("AddFile failed: %v", err)
		}
	}

	manifestPath := cfg.OutputPath("manifest.json")
	if err := m.Write(manifestPath); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := metadata.Read(manifestPath)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if loaded.Records != fixtureRows || loaded.Sources["alo_yoga"] != 4 {
		t.Errorf("Manifest counts = %d %v", loaded.Records, loaded.Sources)
	}

	if err := loaded.Verify(cfg.Catalog.Output.Dir); err != nil {
		t.Errorf("Verify failed: %v", err)
	}
}
