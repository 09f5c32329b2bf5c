package expr

import (
	"strconv"
	"unicode"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
	tokInvalid
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) && unicode.IsSpace(rune(l.s[l.i])) {
		l.i++
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	pos := l.i
	switch l.s[l.i] {
	case '+':
		l.i++
		return token{kind: tokPlus, text: "+", pos: pos}
	case '-':
		l.i++
		return token{kind: tokMinus, text: "-", pos: pos}
	case '*':
		l.i++
		if l.i < len(l.s) && l.s[l.i] == '*' {
			l.i++
			return token{kind: tokCaret, text: "**", pos: pos}
		}
		return token{kind: tokStar, text: "*", pos: pos}
	case '/':
		l.i++
		return token{kind: tokSlash, text: "/", pos: pos}
	case '^':
		l.i++
		return token{kind: tokCaret, text: "^", pos: pos}
	case '(', '[':
		l.i++
		return token{kind: tokLParen, text: "(", pos: pos}
	case ')', ']':
		l.i++
		return token{kind: tokRParen, text: ")", pos: pos}
	case ',':
		l.i++
		return token{kind: tokComma, text: ",", pos: pos}
	}

	ch := rune(l.s[l.i])
	if isIdentStart(ch) {
		l.i++
		for l.i < len(l.s) && isIdentContinue(rune(l.s[l.i])) {
			l.i++
		}
		return token{kind: tokIdent, text: l.s[pos:l.i], pos: pos}
	}
	if ch == '.' || unicode.IsDigit(ch) {
		l.i = scanNumber(l.s, l.i)
		txt := l.s[pos:l.i]
		f, err := strconv.ParseFloat(txt, 64)
		if err != nil || l.i == pos {
			if l.i == pos {
				l.i++
			}
			return token{kind: tokInvalid, text: l.s[pos:l.i], pos: pos}
		}
		return token{kind: tokNumber, text: txt, num: f, pos: pos}
	}

	l.i++
	return token{kind: tokInvalid, text: string(ch), pos: pos}
}

func scanNumber(s string, i int) int {
	start := i
	for i < len(s) && unicode.IsDigit(rune(s[i])) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && unicode.IsDigit(rune(s[i])) {
			i++
		}
	}
	if i == start {
		return start
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && unicode.IsDigit(rune(s[k])) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isIdentStart(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && unicode.IsLetter(r))
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
