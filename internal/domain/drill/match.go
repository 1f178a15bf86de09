package drill

import "github.com/phrazzld/lingo-api/internal/domain"

// MatchesTranslation reports whether guess is exactly the word's
// translation. Case and whitespace are significant.
func MatchesTranslation(w *domain.Word, guess string) bool {
	if w == nil {
		return false
	}
	return w.Translation == guess
}
