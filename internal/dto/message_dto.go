package dto

const (
	CorpusProjects = "projects"
	CorpusReviews  = "reviews"
	CorpusResumes  = "resumes"
)

// PersistCorpusMessage asks the consumer to flush one corpus index to disk.
type PersistCorpusMessage struct {
	Corpus string `json:"corpus"`
}
