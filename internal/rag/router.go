package rag

import "regexp"

// greetPattern matches short greeting/thanks queries: exact full-string match
// over a fixed token set, case-insensitive, with optional surrounding
// whitespace. Partial containment does not count — "안녕하세요 토마토는요?"
// must still go through retrieval.
var greetPattern = regexp.MustCompile(`(?i)^\s*(안녕|ㅎㅇ|하이|hi|hello|test|테스트|thanks|고마워|감사)\s*$`)

// isGreeting reports whether the query should short-circuit to the greet
// prompt without touching the vector store.
func isGreeting(query string) bool {
	return greetPattern.MatchString(query)
}
