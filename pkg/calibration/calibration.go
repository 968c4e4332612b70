package calibration

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ib-77/trebuchet/pkg/rules"
)

const (
	DigitsRule = "digits"
	WordsRule  = "words"
)

var numberWords = [...]string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

// token is a digit found in a record and the byte offset where it starts.
type token struct {
	offset int
	digit  uint64
}

// Digits returns the rule that reads decimal digits only.
func Digits() rules.Rule {
	return rules.FromOptional(DigitsRule, ExtractDigits)
}

// Words returns the rule that reads decimal digits and the words one..nine.
func Words() rules.Rule {
	return rules.FromOptional(WordsRule, ExtractWords)
}

// ExtractDigits returns 10*first + last over the decimal digits of record.
func ExtractDigits(record string) (uint64, bool) {
	return combine(digitTokens(record))
}

// ExtractWords is ExtractDigits with the words one..nine counted as digits.
func ExtractWords(record string) (uint64, bool) {
	tokens := append(wordTokens(record), digitTokens(record)...)
	slices.SortStableFunc(tokens, func(a, b token) int {
		return cmp.Compare(a.offset, b.offset)
	})
	return combine(tokens)
}

func digitTokens(record string) []token {
	var tokens []token
	for i := 0; i < len(record); i++ {
		if c := record[i]; c >= '0' && c <= '9' {
			tokens = append(tokens, token{offset: i, digit: uint64(c - '0')})
		}
	}
	return tokens
}

// wordTokens scans once per word and restarts one byte past every match,
// so overlapping occurrences are all reported.
func wordTokens(record string) []token {
	var tokens []token
	for i, word := range numberWords {
		for from := 0; from < len(record); {
			at := strings.Index(record[from:], word)
			if at < 0 {
				break
			}
			tokens = append(tokens, token{offset: from + at, digit: uint64(i + 1)})
			from += at + 1
		}
	}
	return tokens
}

func combine(tokens []token) (uint64, bool) {
	if len(tokens) == 0 {
		return 0, false
	}
	return 10*tokens[0].digit + tokens[len(tokens)-1].digit, true
}
