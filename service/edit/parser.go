package edit

// Parser for the conflict-marker edit block form:
//
//	<<<<<<< SEARCH
//	text to find
//	=======
//	replacement text
//	>>>>>>> REPLACE
//
// implemented with the github.com/viant/parsly tokenizer.

import (
	"fmt"
	"strings"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Block is one parsed search/replace pair.
type Block struct {
	Search  string
	Replace string
}

const (
	tSearchMarker = iota + 1
	tDivider
	tReplaceMarker
)

var (
	tokSearchMarker  = parsly.NewToken(tSearchMarker, "SearchMarker", matcher.NewFragment("<<<<<<< SEARCH"))
	tokDivider       = parsly.NewToken(tDivider, "Divider", matcher.NewFragment("======="))
	tokReplaceMarker = parsly.NewToken(tReplaceMarker, "ReplaceMarker", matcher.NewFragment(">>>>>>> REPLACE"))
)

// ParseBlock parses exactly one edit block; anything beyond the closing
// marker other than whitespace is an error.
func ParseBlock(blockText string) (*Block, error) {
	p := &parser{cursor: parsly.NewCursor("block", []byte(strings.TrimSpace(blockText)), 0)}
	return p.parse()
}

type parser struct {
	cursor *parsly.Cursor
}

func (p *parser) parse() (*Block, error) {
	cur := p.cursor

	if cur.MatchOne(tokSearchMarker).Code != tSearchMarker {
		return nil, cur.NewError(tokSearchMarker)
	}
	p.consumeLine()

	search, found := p.consumeSection("=======")
	if !found {
		return nil, cur.NewError(tokDivider)
	}
	if cur.MatchOne(tokDivider).Code != tDivider {
		return nil, cur.NewError(tokDivider)
	}
	p.consumeLine()

	replace, found := p.consumeSection(">>>>>>> REPLACE")
	if !found {
		return nil, cur.NewError(tokReplaceMarker)
	}
	if cur.MatchOne(tokReplaceMarker).Code != tReplaceMarker {
		return nil, cur.NewError(tokReplaceMarker)
	}
	p.consumeLine()

	p.skipWhitespace()
	if cur.HasMore() {
		return nil, fmt.Errorf("unexpected content after '>>>>>>> REPLACE'")
	}
	return &Block{Search: search, Replace: replace}, nil
}

// consumeSection consumes whole lines up to (not including) the line starting
// with the marker and returns them without the trailing newline.
func (p *parser) consumeSection(marker string) (string, bool) {
	var lines []string
	for p.cursor.HasMore() {
		if strings.HasPrefix(p.peekLine(), marker) {
			return strings.Join(lines, "\n"), true
		}
		lines = append(lines, p.consumeLine())
	}
	return "", false
}

func (p *parser) consumeLine() string {
	cur := p.cursor
	start := cur.Pos
	for cur.Pos < cur.InputSize {
		if cur.Input[cur.Pos] == '\n' {
			txt := string(cur.Input[start:cur.Pos])
			cur.Pos++
			return txt
		}
		cur.Pos++
	}
	return string(cur.Input[start:])
}

func (p *parser) peekLine() string {
	cur := p.cursor
	i := cur.Pos
	for i < cur.InputSize && cur.Input[i] != '\n' {
		i++
	}
	return string(cur.Input[cur.Pos:i])
}

func (p *parser) skipWhitespace() {
	cur := p.cursor
	for cur.Pos < cur.InputSize {
		switch cur.Input[cur.Pos] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			cur.Pos++
		default:
			return
		}
	}
}
