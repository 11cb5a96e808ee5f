package ninja

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var digitsRe = regexp.MustCompile(`\d+`)

// attributeWords normaliza el texto de temperamento: minúsculas, sin
// puntuación, partido por espacios. Texto vacío => lista vacía.
func attributeWords(text string) []string {
	if text == "" {
		return []string{}
	}

	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}

	words := strings.Fields(b.String())
	if words == nil {
		return []string{}
	}
	return words
}

// minLifespan toma el menor entero que aparezca en el texto libre de
// lifespan ("10 - 13 years" => 10). Sin números => nil.
func minLifespan(text string) *int {
	nums := digitsRe.FindAllString(text, -1)
	if len(nums) == 0 {
		return nil
	}

	min := 0
	for i, s := range nums {
		n, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		if i == 0 || n < min {
			min = n
		}
	}
	return &min
}
