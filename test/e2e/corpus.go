// Package e2e runs the retrieval pipeline over a generated corpus and checks
// that signature queries surface the right documents.
package e2e

import "fmt"

// CorpusDocument is a document entry in the e2e corpus.
type CorpusDocument struct {
	ID       string
	FileName string
	Content  string
}

// QueryCase defines a query and the document IDs of which at least one must
// appear in the retrieved chunk pool.
type QueryCase struct {
	Query          string
	ExpectedDocIDs []string
	Description    string
}

// Corpus holds documents and query cases.
type Corpus struct {
	Documents []CorpusDocument
	Cases     []QueryCase
}

const corpusSize = 60

// BuildCorpus returns a corpus of 60 documents. Each topic carries a unique
// signature phrase so queries can assert the correct document is returned.
func BuildCorpus() *Corpus {
	return &Corpus{
		Documents: buildDocuments(corpusSize),
		Cases:     buildQueryCases(),
	}
}

var topics = []struct {
	fileName string
	content  string
}{
	{"python-guide.md", "Python is a high-level programming language. The Python programming language is used for web development and data science."},
	{"kubernetes-docs.md", "Kubernetes is an open-source platform. Kubernetes container orchestration automates deployment and scaling of workloads."},
	{"react-tutorial.md", "React is a JavaScript library. React hooks and components enable building interactive user interfaces."},
	{"go-language.md", "Go is a statically typed language. Go golang concurrency is achieved with goroutines and channels."},
	{"postgresql-manual.md", "PostgreSQL is an advanced relational database. The PostgreSQL relational database supports JSON and full-text search."},
	{"docker-handbook.md", "Docker enables building and shipping applications. Docker container images are portable across environments."},
	{"machine-learning.md", "Machine learning is a subset of AI. Machine learning algorithms learn patterns from data."},
	{"neural-networks.md", "Neural networks are inspired by the brain. Neural network deep learning powers modern AI systems."},
	{"vacation-policy.md", "The vacation policy allowance grants 25 paid vacation days per year. Unused vacation days carry over to the next quarter."},
	{"expense-reporting.md", "The expense reporting workflow requires receipts within 30 days. Expense approvals go through the finance team."},
	{"incident-response.md", "The incident response runbook lists escalation steps. Sev1 incidents page the on-call engineer immediately."},
	{"safety-recall.md", "Vehicles affected by the airbag inflator recall:\n1. Model A built 2014\n2. Model B built 2015\n3. Model C built 2016\n4. Model D built 2017\n5. Model E built 2018\n6. Model F built 2019"},
}

func buildDocuments(n int) []CorpusDocument {
	docs := make([]CorpusDocument, 0, n)
	for i := 0; i < n; i++ {
		topic := topics[i%len(topics)]
		content := topic.content
		if i >= len(topics) {
			// Later copies are diluted with filler so the canonical first
			// document of each topic stays the strongest match.
			content = fmt.Sprintf("Notes, revision %d. Commentary without key terms. See the primary document for details.", i)
		}
		docs = append(docs, CorpusDocument{
			ID:       fmt.Sprintf("doc-%03d", i),
			FileName: fmt.Sprintf("%03d-%s", i, topic.fileName),
			Content:  content,
		})
	}
	return docs
}

func buildQueryCases() []QueryCase {
	return []QueryCase{
		{
			Query:          "Python programming language",
			ExpectedDocIDs: []string{"doc-000"},
			Description:    "signature phrase match",
		},
		{
			Query:          "Kubernetes container orchestration",
			ExpectedDocIDs: []string{"doc-001"},
			Description:    "signature phrase match",
		},
		{
			Query:          "goroutines and channels",
			ExpectedDocIDs: []string{"doc-003"},
			Description:    "body phrase match",
		},
		{
			Query:          "how many paid vacation days do employees get?",
			ExpectedDocIDs: []string{"doc-008"},
			Description:    "natural-language question",
		},
		{
			Query:          "expense receipts deadline finance",
			ExpectedDocIDs: []string{"doc-009"},
			Description:    "partial word overlap",
		},
		{
			Query:          "which models are affected by the airbag inflator recall?",
			ExpectedDocIDs: []string{"doc-011"},
			Description:    "comprehensive list query",
		},
	}
}
