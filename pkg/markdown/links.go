package markdown

// Link is an inline link "[text](url)" on one line. StartCol is the rune
// column of the opening bracket and EndCol that of the closing parenthesis.
type Link struct {
	Text     string `json:"text"`
	URL      string `json:"url"`
	StartCol int    `json:"start_col"`
	EndCol   int    `json:"end_col"`
}

// DetectLinks finds the inline links on line. Parentheses inside the URL
// nest, so "[w](https://x/Pointer_(c))" is one link, and a backslash
// escapes the rune after it in both the text and the URL.
func DetectLinks(line string) []Link {
	runes := []rune(line)
	var links []Link
	for i := 0; i < len(runes); i++ {
		if runes[i] != '[' {
			continue
		}
		textEnd := closingBracket(runes, i+1)
		if textEnd < 0 || textEnd+1 >= len(runes) || runes[textEnd+1] != '(' {
			continue
		}
		urlEnd := closingParen(runes, textEnd+2)
		if urlEnd < 0 {
			continue
		}
		links = append(links, Link{
			Text:     string(runes[i+1 : textEnd]),
			URL:      string(runes[textEnd+2 : urlEnd]),
			StartCol: i,
			EndCol:   urlEnd,
		})
		i = urlEnd
	}
	return links
}

func closingBracket(runes []rune, from int) int {
	for i := from; i < len(runes); i++ {
		switch runes[i] {
		case ']':
			return i
		case '\\':
			i++
		}
	}
	return -1
}

func closingParen(runes []rune, from int) int {
	depth := 1
	for i := from; i < len(runes); i++ {
		switch runes[i] {
		case '(':
			depth++
		case ')':
			if depth--; depth == 0 {
				return i
			}
		case '\\':
			i++
		}
	}
	return -1
}

// MaskProtected masks inline code spans and then the links outside them,
// returning every masked span for [RestoreInlineCode]. Neither kind is
// ever read as diagram geometry or split as a table cell.
func MaskProtected(line string) (string, []InlineCodeSpan) {
	masked, spans := MaskInlineCode(line)
	links := DetectLinks(masked)
	if len(links) == 0 {
		return masked, spans
	}
	orig := []rune(line)
	runes := []rune(masked)
	for _, l := range links {
		spans = append(spans, InlineCodeSpan{
			StartCol: l.StartCol,
			EndCol:   l.EndCol,
			Content:  string(orig[l.StartCol : l.EndCol+1]),
		})
		for c := l.StartCol; c <= l.EndCol; c++ {
			runes[c] = ' '
		}
	}
	return string(runes), spans
}
