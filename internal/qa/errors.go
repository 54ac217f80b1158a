package qa

import "errors"

// Matcher failures. None of them leaves this package: FindBestMatch and
// Index.Match downgrade them to a zero-score no-match.
var (
	// ErrEmptyCorpus indicates there were no FAQ entries to rank.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrEmptyVocabulary indicates every document normalized to nothing.
	ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain only stop words")

	// ErrNonFiniteScore indicates the similarity computation produced NaN or Inf.
	ErrNonFiniteScore = errors.New("non-finite similarity score")
)
