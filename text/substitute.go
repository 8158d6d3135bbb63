package text

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var periodRunPattern = regexp2.MustCompile(`\.+`, regexp2.None)

var vietnameseWordPattern = regexp2.MustCompile(
	`(?i)\b[a-záàảãạăắằẳẵặâấầẩẫậéèẻẽẹêếềểễệóòỏõọôốồổỗộơớờởỡợíìỉĩịúùủũụưứừửữựýỳỷỹỵđ]+\b`,
	regexp2.None,
)

// Stringify coerces a review value into text.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Substitute replaces emoji and teencode with canonical words, strips digits
// and punctuation, removes wrong words and re-joins the sentences with ". ".
func (p *Pipeline) Substitute(text string) string {
	document := cases.Lower(language.Vietnamese).String(text)
	document = strings.ReplaceAll(document, "’", "")
	document = replaceAll(periodRunPattern, document, ".")

	translate := p.TranslateEnglish && p.Detector != nil && p.Detector.IsEnglish(document)

	var builder strings.Builder
	for _, sentence := range p.Sentences.Split(document) {
		sentence = p.replaceEmoji(sentence)
		sentence = replaceWords(sentence, p.Lexicon.Teencode)
		if translate {
			sentence = replaceWords(sentence, p.Lexicon.EnglishVietnamese)
		}
		sentence = strings.Join(findAll(vietnameseWordPattern, sentence), " ")
		sentence = p.dropWrongWords(sentence)
		builder.WriteString(sentence)
		builder.WriteString(". ")
	}
	return collapseSpaces(builder.String())
}

// replaceEmoji looks up each rune on its own, so only single-rune emoji keys
// can ever match.
func (p *Pipeline) replaceEmoji(sentence string) string {
	var builder strings.Builder
	for _, r := range sentence {
		ch := string(r)
		if gloss, ok := p.Lexicon.Emoji[ch]; ok {
			builder.WriteString(gloss)
			builder.WriteString(" ")
			continue
		}
		builder.WriteString(ch)
	}
	return builder.String()
}

func replaceWords(sentence string, dict map[string]string) string {
	words := strings.Fields(sentence)
	for i, word := range words {
		if replacement, ok := dict[word]; ok {
			words[i] = replacement
		}
	}
	return strings.Join(words, " ")
}

// dropWrongWords blanks wrong words in place; the empty slots are squeezed
// out by the final whitespace collapse.
func (p *Pipeline) dropWrongWords(sentence string) string {
	words := strings.Fields(sentence)
	for i, word := range words {
		if _, ok := p.Lexicon.WrongWords[word]; ok {
			words[i] = ""
		}
	}
	return strings.Join(words, " ")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func findAll(re *regexp2.Regexp, s string) []string {
	out := make([]string, 0, 16)
	m, err := re.FindStringMatch(s)
	for err == nil && m != nil {
		out = append(out, m.String())
		m, err = re.FindNextMatch(m)
	}
	return out
}

func replaceAll(re *regexp2.Regexp, s, replacement string) string {
	out, err := re.Replace(s, replacement, -1, -1)
	if err != nil {
		return s
	}
	return out
}
