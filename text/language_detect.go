package text

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// vietnameseOnlyLetters never occur in English text; a review containing one
// is Vietnamese without asking the statistical model.
const vietnameseOnlyLetters = "ăâđêôơưạảấầẩẫậắằẳẵặẹẻẽếềểễệỉịọỏốồổỗộớờởỡợụủứừửữựỳỵỷỹ"

// minimumRelativeDistance makes short or mixed reviews come back unknown
// instead of guessed.
const minimumRelativeDistance = 0.1

// LanguageDetector tells Vietnamese reviews from English ones.
type LanguageDetector struct {
	detector lingua.LanguageDetector
}

// NewLanguageDetector builds a detector limited to Vietnamese and English.
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Vietnamese, lingua.English).
			WithMinimumRelativeDistance(minimumRelativeDistance).
			Build(),
	}
}

// Detect returns lingua.Vietnamese, lingua.English or lingua.Unknown.
func (d *LanguageDetector) Detect(text string) lingua.Language {
	if strings.TrimSpace(text) == "" {
		return lingua.Unknown
	}
	if strings.ContainsAny(strings.ToLower(text), vietnameseOnlyLetters) {
		return lingua.Vietnamese
	}
	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return lingua.Unknown
	}
	return language
}

// IsEnglish reports whether text is detected as English.
func (d *LanguageDetector) IsEnglish(text string) bool {
	return d.Detect(text) == lingua.English
}

// DetectName returns "vietnamese", "english" or "unknown".
func (d *LanguageDetector) DetectName(text string) string {
	language := d.Detect(text)
	if language == lingua.Unknown {
		return "unknown"
	}
	return strings.ToLower(language.String())
}
