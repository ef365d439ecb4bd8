package corpus

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"job-proposal-be/pkg/vectorindex"
)

// FieldMapping binds a logical field to the source column names it may
// appear under, tried in order. Spreadsheet exports are inconsistent
// about headers, so every known synonym is listed explicitly instead of
// guessing at ingest time.
type FieldMapping struct {
	Logical    string
	Candidates []string
	Required   bool
}

var projectSchema = []FieldMapping{
	{Logical: "project_name", Candidates: []string{"PROJECT NAME", "Project Name", "Project", "Name"}, Required: true},
	{Logical: "project_type", Candidates: []string{"PROJECT TYPE", "Project Type", "Type", ""}},
	{Logical: "industry", Candidates: []string{"INDUSTRY", "Industry"}},
	{Logical: "tech_stack", Candidates: []string{"Tech Stack", "TECH STACK", "Stack"}},
	{Logical: "description", Candidates: []string{"DESCRIPTION", "Description", "Details"}},
}

var reviewSchema = []FieldMapping{
	{Logical: "product", Candidates: []string{"Product Name", "PRODUCT NAME", "Product"}, Required: true},
	{Logical: "rating", Candidates: []string{"Rating", "RATING", "Stars"}},
	{Logical: "country", Candidates: []string{"Country", "COUNTRY", "Location"}},
	{Logical: "review", Candidates: []string{"Review / Comment", "Review", "Comment", "Feedback"}},
}

// ProjectSource is one CSV export holding projects of a single category.
type ProjectSource struct {
	Path     string
	Category string
}

// DefaultProjectSources maps the conventional export file names in
// sourceDir to their project categories.
func DefaultProjectSources(sourceDir string) []ProjectSource {
	return []ProjectSource{
		{Path: filepath.Join(sourceDir, "projects_php.csv"), Category: "PHP Project"},
		{Path: filepath.Join(sourceDir, "projects_flutter.csv"), Category: "Flutter Project"},
		{Path: filepath.Join(sourceDir, "projects_python.csv"), Category: "Python Project"},
	}
}

// DefaultReviewSource is the conventional review export path.
func DefaultReviewSource(sourceDir string) string {
	return filepath.Join(sourceDir, "reviews.csv")
}

// BuildProjectIndex reads project CSVs, embeds every row, and returns a
// fresh index plus the row count. Rows where all significant fields are
// blank are skipped.
func BuildProjectIndex(ctx context.Context, embedder *Embedder, sources []ProjectSource) (*vectorindex.Index, int, error) {
	var texts []string
	var metadata []map[string]interface{}

	for _, src := range sources {
		rows, cols, err := readCSV(src.Path, projectSchema)
		if err != nil {
			return nil, 0, fmt.Errorf("project source %s: %w", src.Path, err)
		}

		for _, row := range rows {
			name := field(row, cols, "project_name")
			projType := field(row, cols, "project_type")
			industry := field(row, cols, "industry")
			stack := field(row, cols, "tech_stack")
			desc := field(row, cols, "description")

			if name == "" && projType == "" && industry == "" && stack == "" && desc == "" {
				continue
			}

			texts = append(texts, projectRowText(name, projType, src.Category, industry, stack, desc))
			metadata = append(metadata, map[string]interface{}{
				"project_name": name,
				"category":     src.Category,
				"industry":     industry,
			})
		}
	}

	ix, err := buildIndex(ctx, embedder, texts, metadata)
	if err != nil {
		return nil, 0, err
	}
	return ix, len(texts), nil
}

// BuildReviewIndex reads the review CSV and returns a fresh index plus
// the row count.
func BuildReviewIndex(ctx context.Context, embedder *Embedder, path string) (*vectorindex.Index, int, error) {
	rows, cols, err := readCSV(path, reviewSchema)
	if err != nil {
		return nil, 0, fmt.Errorf("review source %s: %w", path, err)
	}

	var texts []string
	var metadata []map[string]interface{}

	for _, row := range rows {
		product := field(row, cols, "product")
		rating := field(row, cols, "rating")
		country := field(row, cols, "country")
		review := field(row, cols, "review")

		if product == "" && rating == "" && country == "" && review == "" {
			continue
		}

		texts = append(texts, reviewRowText(product, rating, country, review))
		metadata = append(metadata, map[string]interface{}{
			"product": product,
			"rating":  rating,
			"country": country,
		})
	}

	ix, err := buildIndex(ctx, embedder, texts, metadata)
	if err != nil {
		return nil, 0, err
	}
	return ix, len(texts), nil
}

func buildIndex(ctx context.Context, embedder *Embedder, texts []string, metadata []map[string]interface{}) (*vectorindex.Index, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no ingestable rows found")
	}

	vecs, err := embedder.Documents(ctx, texts)
	if err != nil {
		return nil, err
	}

	ix := vectorindex.New(len(vecs[0]))
	for i := range texts {
		err := ix.Add(vectorindex.Document{Text: texts[i], Metadata: metadata[i]}, vecs[i])
		if err != nil {
			return nil, err
		}
	}
	return ix, nil
}

// readCSV loads all data rows and resolves the schema against the
// header once, surfacing a clear error for missing required fields.
func readCSV(path string, schema []FieldMapping) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged exports happen

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("malformed CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}

	cols, err := resolveColumns(records[0], schema)
	if err != nil {
		return nil, nil, err
	}
	return records[1:], cols, nil
}

// resolveColumns maps each logical field to a column position, trying
// candidates in their documented order.
func resolveColumns(header []string, schema []FieldMapping) (map[string]int, error) {
	normalized := make(map[string]int, len(header))
	for i, h := range header {
		normalized[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make(map[string]int, len(schema))
	var missing []string
	for _, fm := range schema {
		found := false
		for _, cand := range fm.Candidates {
			if idx, ok := normalized[strings.ToLower(strings.TrimSpace(cand))]; ok {
				cols[fm.Logical] = idx
				found = true
				break
			}
		}
		if !found {
			if fm.Required {
				missing = append(missing, fm.Logical)
			}
			cols[fm.Logical] = -1
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func field(row []string, cols map[string]int, logical string) string {
	idx, ok := cols[logical]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func projectRowText(name, projType, category, industry, stack, desc string) string {
	return fmt.Sprintf(
		"Project: %s\nProject Type: %s\nCategory: %s\nIndustry: %s\nTech Stack: %s\nDescription: %s",
		name, projType, category, industry, stack, desc,
	)
}

func reviewRowText(product, rating, country, review string) string {
	return fmt.Sprintf(
		"Review for: %s\nRating: %s stars\nClient Location: %s\nFeedback: %s",
		product, rating, country, review,
	)
}
