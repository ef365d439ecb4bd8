package vectorindex

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeL2(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
	}{
		{"unit axis", []float32{1, 0, 0}},
		{"arbitrary", []float32{3, 4, 0}},
		{"negative", []float32{-2, 5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NormalizeL2(tt.in)
			var sum float64
			for _, x := range out {
				sum += float64(x) * float64(x)
			}
			if math.Abs(sum-1.0) > 1e-5 {
				t.Errorf("norm^2 = %f, want 1.0", sum)
			}
		})
	}

	t.Run("zero vector unchanged", func(t *testing.T) {
		out := NormalizeL2([]float32{0, 0, 0})
		for _, x := range out {
			if x != 0 {
				t.Errorf("zero vector changed: %v", out)
			}
		}
	})
}

func TestSearchOrderingAndBounds(t *testing.T) {
	ix := New(3)
	docs := map[string][]float32{
		"east":      {1, 0, 0},
		"north":     {0, 1, 0},
		"northeast": NormalizeL2([]float32{1, 1, 0}),
		"west":      {-1, 0, 0},
	}
	for text, vec := range docs {
		if err := ix.Add(Document{Text: text, Metadata: map[string]interface{}{"name": text}}, vec); err != nil {
			t.Fatalf("Add(%s): %v", text, err)
		}
	}

	hits, err := ix.Search([]float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("got %d hits, want 3", len(hits))
	}
	if hits[0].Text != "east" {
		t.Errorf("best hit = %q, want east", hits[0].Text)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Errorf("hits not sorted descending at %d: %f > %f", i, hits[i].Score, hits[i-1].Score)
		}
	}
	for _, h := range hits {
		if h.Score < -1.0001 || h.Score > 1.0001 {
			t.Errorf("score %f outside [-1, 1]", h.Score)
		}
	}

	// topK larger than corpus
	hits, err = ix.Search([]float32{0, 1, 0}, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 4 {
		t.Errorf("got %d hits, want 4", len(hits))
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	ix := New(3)
	_, err := ix.Search([]float32{1, 0, 0}, 1)
	if !errors.Is(err, ErrEmptyIndex) {
		t.Errorf("err = %v, want ErrEmptyIndex", err)
	}
}

func TestAddDimensionMismatch(t *testing.T) {
	ix := New(3)
	err := ix.Add(Document{Text: "x"}, []float32{1, 0})
	if !errors.Is(err, ErrVectorLengthMismatch) {
		t.Errorf("err = %v, want ErrVectorLengthMismatch", err)
	}
	if ix.Len() != 0 {
		t.Errorf("Len = %d after failed Add, want 0", ix.Len())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "projects")

	ix := New(4)
	vecs := [][]float32{
		NormalizeL2([]float32{1, 2, 3, 4}),
		NormalizeL2([]float32{4, 3, 2, 1}),
		NormalizeL2([]float32{-1, 0, 1, 0}),
	}
	for i, v := range vecs {
		doc := Document{
			Text:     "doc" + string(rune('A'+i)),
			Metadata: map[string]interface{}{"pos": float64(i)},
		}
		if err := ix.Add(doc, v); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	if err := Save(dir, ix); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Len() != ix.Len() || loaded.Dim() != ix.Dim() {
		t.Fatalf("loaded %d/%d, want %d/%d", loaded.Len(), loaded.Dim(), ix.Len(), ix.Dim())
	}

	// Same nearest-neighbor ordering for a fixed query.
	query := NormalizeL2([]float32{2, 2, 2, 2})
	orig, err := ix.Search(query, 3)
	if err != nil {
		t.Fatalf("Search original: %v", err)
	}
	got, err := loaded.Search(query, 3)
	if err != nil {
		t.Fatalf("Search loaded: %v", err)
	}
	for i := range orig {
		if orig[i].Position != got[i].Position {
			t.Errorf("ordering diverged at %d: %d vs %d", i, orig[i].Position, got[i].Position)
		}
		if math.Abs(float64(orig[i].Score-got[i].Score)) > 1e-6 {
			t.Errorf("score diverged at %d: %f vs %f", i, orig[i].Score, got[i].Score)
		}
	}
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveOverwriteKeepsIndexLoadable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "corpus")

	first := New(2)
	if err := first.Add(Document{Text: "old"}, NormalizeL2([]float32{1, 0})); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := Save(dir, first); err != nil {
		t.Fatalf("Save first: %v", err)
	}

	second := New(2)
	for _, text := range []string{"new a", "new b"} {
		if err := second.Add(Document{Text: text}, NormalizeL2([]float32{0, 1})); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if err := Save(dir, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 2 {
		t.Errorf("Len = %d, want 2", loaded.Len())
	}
	if loaded.Doc(0).Text != "new a" {
		t.Errorf("Doc(0).Text = %q, want %q", loaded.Doc(0).Text, "new a")
	}

	// no staging or backup directories left behind
	for _, leftover := range []string{dir + ".tmp", dir + ".old"} {
		if _, err := os.Stat(leftover); !os.IsNotExist(err) {
			t.Errorf("leftover dir %s still exists", leftover)
		}
	}
}
