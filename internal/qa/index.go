package qa

import "college-qa/internal/models"

// Index caches the analyzed FAQ documents and their document frequencies.
// Match returns exactly what FindBestMatch returns for the same FAQ set; the
// query's own contribution to the corpus is still added per call.
type Index struct {
	faqs []models.FAQEntry
	docs []termVector
	df   map[string]int
}

// NewIndex analyzes faqs once. The slice must not be mutated afterwards.
func NewIndex(faqs []models.FAQEntry) *Index {
	idx := &Index{
		faqs: faqs,
		docs: make([]termVector, len(faqs)),
		df:   make(map[string]int),
	}
	for i, faq := range faqs {
		idx.docs[i] = analyze(documentText(faq))
		for _, t := range idx.docs[i].terms {
			idx.df[t]++
		}
	}
	return idx
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int {
	return len(idx.faqs)
}

// Match ranks the indexed entries against query.
func (idx *Index) Match(query string) MatchResult {
	if len(idx.faqs) == 0 {
		return MatchResult{}
	}

	q := analyze(query)
	df := func(t string) int {
		if _, ok := q.counts[t]; ok {
			return idx.df[t] + 1
		}
		return idx.df[t]
	}

	best, score, err := rank(q, idx.docs, df, len(idx.docs)+1)
	if err != nil {
		return MatchResult{}
	}
	return resultFor(idx.faqs, best, score)
}
