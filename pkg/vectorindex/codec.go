package vectorindex

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	manifestFile = "manifest.json"
	docsFile     = "docs.jsonl"
	vectorFile   = "vectors.f32"

	indexVersion = 1
)

// Manifest describes a persisted index and how to interpret its files.
type Manifest struct {
	IndexVersion int    `json:"index_version"`
	CreatedAt    string `json:"created_at"`
	Dim          int    `json:"dim"`
	Count        int    `json:"count"`
	Normalize    bool   `json:"normalize"`
	DocsFile     string `json:"docs_file"`
	VectorFile   string `json:"vector_file"`
}

// Save writes the index to dir atomically: artifacts land in a staging
// directory which is renamed over dir, with the previous index set
// aside until the swap completes. A reader never sees a half-written
// index, and a crash mid-swap leaves at worst a dir+".old" to recover.
func Save(dir string, ix *Index) error {
	if err := ix.validate(); err != nil {
		return err
	}

	staging := dir + ".tmp"
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("cannot clear staging dir %s: %w", staging, err)
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return fmt.Errorf("cannot create staging dir %s: %w", staging, err)
	}

	m := Manifest{
		IndexVersion: indexVersion,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		Dim:          ix.dim,
		Count:        ix.Len(),
		Normalize:    true,
		DocsFile:     docsFile,
		VectorFile:   vectorFile,
	}
	mb, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(staging, manifestFile), mb, 0o644); err != nil {
		return fmt.Errorf("cannot write manifest: %w", err)
	}

	if err := writeDocs(filepath.Join(staging, docsFile), ix.docs); err != nil {
		return err
	}
	if err := writeVectors(filepath.Join(staging, vectorFile), ix.vectors); err != nil {
		return err
	}

	// Move the previous index aside rather than deleting it, so a crash
	// mid-swap never leaves the corpus with no index on disk.
	backup := dir + ".old"
	if err := os.RemoveAll(backup); err != nil {
		return fmt.Errorf("cannot clear backup dir %s: %w", backup, err)
	}
	if _, err := os.Stat(dir); err == nil {
		if err := os.Rename(dir, backup); err != nil {
			return fmt.Errorf("cannot set aside old index dir %s: %w", dir, err)
		}
	}
	if err := os.Rename(staging, dir); err != nil {
		_ = os.Rename(backup, dir) // restore the previous index
		return fmt.Errorf("cannot swap index dir %s: %w", dir, err)
	}
	_ = os.RemoveAll(backup)
	return nil
}

// Load reads an index from dir. Returns ErrNotFound when no manifest
// exists there.
func Load(dir string) (*Index, error) {
	manifestPath := filepath.Join(dir, manifestFile)
	b, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cannot read manifest %s: %w", manifestPath, err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest JSON %s: %w", manifestPath, err)
	}
	if m.Dim <= 0 {
		return nil, fmt.Errorf("invalid dim in manifest: %d", m.Dim)
	}
	if m.DocsFile == "" {
		m.DocsFile = docsFile
	}
	if m.VectorFile == "" {
		m.VectorFile = vectorFile
	}

	docs, err := loadDocs(filepath.Join(dir, m.DocsFile))
	if err != nil {
		return nil, err
	}
	vectors, err := loadVectors(filepath.Join(dir, m.VectorFile), len(docs), m.Dim)
	if err != nil {
		return nil, err
	}

	ix := &Index{dim: m.Dim, docs: docs, vectors: vectors}
	if err := ix.validate(); err != nil {
		return nil, err
	}
	return ix, nil
}

func writeDocs(path string, docs []Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create docs file: %w", err)
	}
	bw := bufio.NewWriter(f)
	for _, d := range docs {
		line, err := json.Marshal(d)
		if err != nil {
			_ = f.Close()
			return err
		}
		if _, err := bw.Write(line); err != nil {
			_ = f.Close()
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func loadDocs(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open docs file %s: %w", path, err)
	}
	defer f.Close()

	var out []Document
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var d Document
		if err := json.Unmarshal(line, &d); err != nil {
			return nil, fmt.Errorf("invalid docs JSONL %s: %w", path, err)
		}
		out = append(out, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read docs file %s: %w", path, err)
	}
	return out, nil
}

func writeVectors(path string, vectors []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create vector file: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, vectors); err != nil {
		_ = f.Close()
		return fmt.Errorf("cannot write vectors: %w", err)
	}
	return f.Close()
}

func loadVectors(path string, count, dim int) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open vector file %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	want := int64(count) * int64(dim) * 4
	if st.Size() != want {
		return nil, fmt.Errorf("vector file %s size mismatch: got %d want %d", path, st.Size(), want)
	}

	vectors := make([]float32, count*dim)
	if err := binary.Read(f, binary.LittleEndian, vectors); err != nil && err != io.EOF {
		return nil, fmt.Errorf("cannot read vectors %s: %w", path, err)
	}
	return vectors, nil
}
