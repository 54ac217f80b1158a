package qa

import (
	"math"
	"sort"
	"strings"

	"college-qa/internal/models"
)

const (
	// MatchThreshold is the similarity an entry must exceed to be returned.
	MatchThreshold = 0.1
	// HighConfidenceThreshold separates verbatim answers from hedged ones.
	HighConfidenceThreshold = 0.3
)

// MatchResult is the outcome of ranking a query against the FAQ set. Entry is
// nil when nothing cleared MatchThreshold; Score is still the best raw
// similarity in that case.
type MatchResult struct {
	Entry *models.FAQEntry
	Score float64
}

// Matched reports whether an entry cleared MatchThreshold.
func (m MatchResult) Matched() bool {
	return m.Entry != nil
}

// termVector holds raw term counts of one document, with its terms sorted so
// that floating point sums are accumulated in a fixed order.
type termVector struct {
	terms  []string
	counts map[string]int
}

func analyze(text string) termVector {
	v := termVector{counts: make(map[string]int)}
	for _, tok := range tokens(text) {
		if _, stop := vectorizerStopwords[tok]; stop {
			continue
		}
		if v.counts[tok] == 0 {
			v.terms = append(v.terms, tok)
		}
		v.counts[tok]++
	}
	sort.Strings(v.terms)
	return v
}

func (v termVector) empty() bool {
	return len(v.terms) == 0
}

func documentText(faq models.FAQEntry) string {
	return faq.Question + " " + strings.Join(faq.Keywords, " ")
}

// FindBestMatch ranks faqs by tf-idf cosine similarity to query. The corpus
// is rebuilt on every call, so weights depend on the query itself. Ties go
// to the earliest entry.
func FindBestMatch(query string, faqs []models.FAQEntry) MatchResult {
	if len(faqs) == 0 {
		return MatchResult{}
	}

	docs := make([]termVector, len(faqs))
	for i, faq := range faqs {
		docs[i] = analyze(documentText(faq))
	}
	q := analyze(query)

	df := make(map[string]int)
	for _, d := range docs {
		for _, t := range d.terms {
			df[t]++
		}
	}
	for _, t := range q.terms {
		df[t]++
	}

	best, score, err := rank(q, docs, func(t string) int { return df[t] }, len(docs)+1)
	if err != nil {
		return MatchResult{}
	}
	return resultFor(faqs, best, score)
}

func resultFor(faqs []models.FAQEntry, best int, score float64) MatchResult {
	if score > MatchThreshold {
		entry := faqs[best]
		return MatchResult{Entry: &entry, Score: score}
	}
	return MatchResult{Score: score}
}

// rank returns the index and cosine similarity of the document closest to q.
// n is the corpus size including the query.
func rank(q termVector, docs []termVector, df func(string) int, n int) (int, float64, error) {
	if len(docs) == 0 {
		return 0, 0, ErrEmptyCorpus
	}

	vocabulary := !q.empty()
	for _, d := range docs {
		if !d.empty() {
			vocabulary = true
			break
		}
	}
	if !vocabulary {
		return 0, 0, ErrEmptyVocabulary
	}

	idf := func(t string) float64 {
		return math.Log(float64(1+n)/float64(1+df(t))) + 1
	}

	qWeights, qNorm := weigh(q, idf)
	if qNorm == 0 {
		return 0, 0, nil
	}

	best, bestScore := 0, 0.0
	for i, d := range docs {
		dWeights, dNorm := weigh(d, idf)
		if dNorm == 0 {
			continue
		}
		var sim float64
		for _, t := range q.terms {
			if w, ok := dWeights[t]; ok {
				sim += (qWeights[t] / qNorm) * (w / dNorm)
			}
		}
		if math.IsNaN(sim) || math.IsInf(sim, 0) {
			return 0, 0, ErrNonFiniteScore
		}
		sim = math.Min(sim, 1)
		if sim > bestScore {
			best, bestScore = i, sim
		}
	}
	return best, bestScore, nil
}

func weigh(v termVector, idf func(string) float64) (map[string]float64, float64) {
	weights := make(map[string]float64, len(v.terms))
	var sumSquares float64
	for _, t := range v.terms {
		w := float64(v.counts[t]) * idf(t)
		weights[t] = w
		sumSquares += w * w
	}
	return weights, math.Sqrt(sumSquares)
}
