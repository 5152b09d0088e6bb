package ir

import (
	"strconv"
	"strings"
)

// NumberShape is an HWP number format (번호 모양).
type NumberShape uint8

const (
	NumberArabic NumberShape = iota
	NumberCircledArabic
	NumberRomanUpper
	NumberRomanLower
	NumberLatinUpper
	NumberLatinLower
	NumberCircledLatinUpper
	NumberCircledLatinLower
	NumberHangulSyllable
	NumberCircledHangulSyllable
	NumberHangulJamo
	NumberCircledHangulJamo
	NumberHangulPhonetic
	NumberIdeograph
	NumberCircledIdeograph
	NumberDecagonCircle
	NumberDecagonCircleHanja
	NumberSymbol NumberShape = 0x80 // 4가지 문자가 반복
	NumberUser   NumberShape = 0x81 // 사용자 지정 문자
)

var numberShapeNames = map[NumberShape]string{
	NumberArabic:                "arabic",
	NumberCircledArabic:         "circled_arabic",
	NumberRomanUpper:            "roman_upper",
	NumberRomanLower:            "roman_lower",
	NumberLatinUpper:            "latin_upper",
	NumberLatinLower:            "latin_lower",
	NumberCircledLatinUpper:     "circled_latin_upper",
	NumberCircledLatinLower:     "circled_latin_lower",
	NumberHangulSyllable:        "hangul_syllable",
	NumberCircledHangulSyllable: "circled_hangul_syllable",
	NumberHangulJamo:            "hangul_jamo",
	NumberCircledHangulJamo:     "circled_hangul_jamo",
	NumberHangulPhonetic:        "hangul_phonetic",
	NumberIdeograph:             "ideograph",
	NumberCircledIdeograph:      "circled_ideograph",
	NumberDecagonCircle:         "decagon_circle",
	NumberDecagonCircleHanja:    "decagon_circle_hanja",
	NumberSymbol:                "symbol",
	NumberUser:                  "user",
}

// String returns the name of the number shape.
func (s NumberShape) String() string {
	if name, ok := numberShapeNames[s]; ok {
		return name
	}
	return "shape_" + strconv.Itoa(int(s))
}

var (
	hangulSyllables = []rune("가나다라마바사아자차카타파하")
	hangulJamo      = []rune("ㄱㄴㄷㄹㅁㅂㅅㅇㅈㅊㅋㅌㅍㅎ")
	circledSyllable = []rune("㉮㉯㉰㉱㉲㉳㉴㉵㉶㉷㉸㉹㉺㉻")
	circledJamo     = []rune("㉠㉡㉢㉣㉤㉥㉦㉧㉨㉩㉪㉫㉬㉭")
	decagon         = []rune("갑을병정무기경신임계")
	decagonHanja    = []rune("甲乙丙丁戊己庚辛壬癸")
	ideographDigits = []rune("零一二三四五六七八九")
	phoneticDigits  = []string{"영", "일", "이", "삼", "사", "오", "육", "칠", "팔", "구"}
	symbolCycle     = []rune("●○■□")
)

// FormatNumber renders n (1-based) in the given number shape. Shapes with
// a bounded glyph set cycle through it; unknown shapes fall back to arabic.
func FormatNumber(shape NumberShape, n int) string {
	if n < 1 {
		return strconv.Itoa(n)
	}
	switch shape {
	case NumberCircledArabic:
		if n <= 20 {
			return string(rune('①' + n - 1))
		}
		return strconv.Itoa(n)
	case NumberRomanUpper:
		return toRoman(n)
	case NumberRomanLower:
		return strings.ToLower(toRoman(n))
	case NumberLatinUpper:
		return toLatin(n, 'A')
	case NumberLatinLower:
		return toLatin(n, 'a')
	case NumberCircledLatinUpper:
		return string(rune('Ⓐ' + (n-1)%26))
	case NumberCircledLatinLower:
		return string(rune('ⓐ' + (n-1)%26))
	case NumberHangulSyllable:
		return cycle(hangulSyllables, n)
	case NumberCircledHangulSyllable:
		return cycle(circledSyllable, n)
	case NumberHangulJamo:
		return cycle(hangulJamo, n)
	case NumberCircledHangulJamo:
		return cycle(circledJamo, n)
	case NumberHangulPhonetic:
		return spellDigits(n, func(d int) string { return phoneticDigits[d] })
	case NumberIdeograph:
		return spellDigits(n, func(d int) string { return string(ideographDigits[d]) })
	case NumberCircledIdeograph:
		if n <= 10 {
			return string(rune('㊀' + n - 1))
		}
		return spellDigits(n, func(d int) string { return string(ideographDigits[d]) })
	case NumberDecagonCircle:
		return cycle(decagon, n)
	case NumberDecagonCircleHanja:
		return cycle(decagonHanja, n)
	case NumberSymbol:
		return cycle(symbolCycle, n)
	default:
		return strconv.Itoa(n)
	}
}

// FormatLevel expands a numbering level format such as "^1.^2)" using
// the counters of each level (index 0 is level 1). Level references
// use the given shapes; a missing shape means arabic.
func FormatLevel(format string, counters []int, shapes []NumberShape) string {
	var b strings.Builder
	rs := []rune(format)
	for i := 0; i < len(rs); i++ {
		if rs[i] == '^' && i+1 < len(rs) && rs[i+1] >= '1' && rs[i+1] <= '7' {
			lvl := int(rs[i+1] - '1')
			i++
			n := 1
			if lvl < len(counters) {
				n = counters[lvl]
			}
			shape := NumberArabic
			if lvl < len(shapes) {
				shape = shapes[lvl]
			}
			b.WriteString(FormatNumber(shape, n))
			continue
		}
		b.WriteRune(rs[i])
	}
	return b.String()
}

func cycle(glyphs []rune, n int) string {
	return string(glyphs[(n-1)%len(glyphs)])
}

func toLatin(n int, base rune) string {
	// A..Z, AA..ZZ 처럼 같은 글자를 반복
	letter := base + rune((n-1)%26)
	return strings.Repeat(string(letter), (n-1)/26+1)
}

var romanTable = []struct {
	value int
	glyph string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func toRoman(n int) string {
	if n >= 4000 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.glyph)
			n -= r.value
		}
	}
	return b.String()
}

func spellDigits(n int, digit func(int) string) string {
	s := strconv.Itoa(n)
	var b strings.Builder
	for _, c := range s {
		b.WriteString(digit(int(c - '0')))
	}
	return b.String()
}
