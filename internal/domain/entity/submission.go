package entity

const DefaultQuestion = "What is our pricing model?"

var DefaultDocuments = []string{
	"https://storage.googleapis.com/cleric-assignment-call-logs/call_log_20240314_104111.txt",
	"https://storage.googleapis.com/cleric-assignment-call-logs/call_log_20240315_104111.txt",
	"https://storage.googleapis.com/cleric-assignment-call-logs/call_log_20240316_104111.txt",
}

// Submission is the payload posted to the submit endpoint.
type Submission struct {
	Question    string   `json:"question"`
	Documents   []string `json:"documents"`
	AutoApprove bool     `json:"autoApprove"`
}

// DefaultSubmission returns the fixed question and call logs every candidate
// service is validated against.
func DefaultSubmission() Submission {
	docs := make([]string, len(DefaultDocuments))
	copy(docs, DefaultDocuments)

	return Submission{
		Question:    DefaultQuestion,
		Documents:   docs,
		AutoApprove: true,
	}
}

// SubmitResponse is whatever the submit endpoint answers with. Only its shape
// (a JSON object) is checked.
type SubmitResponse map[string]any

type FactsStatus string

const (
	FactsStatusDone       FactsStatus = "done"
	FactsStatusProcessing FactsStatus = "processing"
	FactsStatusIdle       FactsStatus = "idle"
)

func (s FactsStatus) IsDone() bool {
	return s == FactsStatusDone
}

type QuestionAndFacts struct {
	Question string      `json:"question"`
	Facts    []string    `json:"facts"`
	Status   FactsStatus `json:"status"`
}
