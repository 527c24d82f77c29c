package scoring

import (
	"math"
	"strings"
	"unicode"
)

// minTokenLen drops single-character tokens from the vocabulary.
const minTokenLen = 2

// tokenize lower-cases text and splits it into alphanumeric runs of at
// least minTokenLen characters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// tfidfVectors builds one L2-normalized TF-IDF vector per document over a
// joint vocabulary. IDF uses smoothing: ln((1+N)/(1+df)) + 1.
func tfidfVectors(docs []string) []map[int]float64 {
	vocab := make(map[string]int)
	counts := make([]map[int]int, len(docs))
	for i, doc := range docs {
		counts[i] = make(map[int]int)
		for _, tok := range tokenize(doc) {
			id, ok := vocab[tok]
			if !ok {
				id = len(vocab)
				vocab[tok] = id
			}
			counts[i][id]++
		}
	}

	// Document frequency per term.
	df := make([]int, len(vocab))
	for _, c := range counts {
		for id := range c {
			df[id]++
		}
	}

	n := float64(len(docs))
	vectors := make([]map[int]float64, len(docs))
	for i, c := range counts {
		vec := make(map[int]float64, len(c))
		var norm float64
		for id, tf := range c {
			idf := math.Log((1+n)/(1+float64(df[id]))) + 1
			w := float64(tf) * idf
			vec[id] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for id := range vec {
				vec[id] /= norm
			}
		}
		vectors[i] = vec
	}
	return vectors
}

// cosine computes the cosine similarity of two L2-normalized sparse
// vectors, which reduces to their dot product.
func cosine(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for id, w := range a {
		dot += w * b[id]
	}
	return dot
}
