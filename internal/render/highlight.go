package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/pterm/pterm"
)

// TokenClass is the highlighting category of a JSON token.
type TokenClass string

const (
	ClassKey     TokenClass = "json-key"
	ClassString  TokenClass = "json-string"
	ClassNumber  TokenClass = "json-number"
	ClassBoolean TokenClass = "json-boolean"
	ClassNull    TokenClass = "json-null"
)

// Decorator wraps classified JSON tokens for presentation.
type Decorator interface {
	// Escape prepares the whole text before tokens are matched.
	Escape(s string) string
	// Decorate wraps one token.
	Decorate(class TokenClass, token string) string
}

var (
	reToken       = regexp.MustCompile(`("(\\u[a-zA-Z0-9]{4}|\\[^u]|[^\\"])*"(\s*:)?|\b(true|false|null)\b|-?\d+(?:\.\d*)?(?:[eE][+\-]?\d+)?)`)
	reKeySuffix   = regexp.MustCompile(`:$`)
	reBoolean     = regexp.MustCompile(`true|false`)
	reNullLiteral = regexp.MustCompile(`null`)
)

// Classify returns the class of a token matched by the highlighter.
// A quoted token ending in a colon is a key; any other quoted token is a string.
func Classify(token string) TokenClass {
	switch {
	case strings.HasPrefix(token, `"`):
		if reKeySuffix.MatchString(token) {
			return ClassKey
		}
		return ClassString
	case reBoolean.MatchString(token):
		return ClassBoolean
	case reNullLiteral.MatchString(token):
		return ClassNull
	default:
		return ClassNumber
	}
}

// Highlight decorates every token of an indented JSON text in a single pass.
func Highlight(text string, d Decorator) string {
	text = d.Escape(text)
	return reToken.ReplaceAllStringFunc(text, func(tok string) string {
		return d.Decorate(Classify(tok), tok)
	})
}

// HTMLDecorator produces <span class="json-..."> markup for a web page.
type HTMLDecorator struct{}

func (HTMLDecorator) Escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

func (HTMLDecorator) Decorate(class TokenClass, token string) string {
	return fmt.Sprintf(`<span class="%s">%s</span>`, html.EscapeString(string(class)), token)
}

// ANSIDecorator colors tokens for a terminal using pterm styles.
type ANSIDecorator struct {
	Styles map[TokenClass]*pterm.Style
}

// DefaultANSIDecorator mirrors the web palette on a terminal.
func DefaultANSIDecorator() ANSIDecorator {
	return ANSIDecorator{Styles: map[TokenClass]*pterm.Style{
		ClassKey:     pterm.NewStyle(pterm.FgLightBlue, pterm.Bold),
		ClassString:  pterm.NewStyle(pterm.FgGreen),
		ClassNumber:  pterm.NewStyle(pterm.FgYellow),
		ClassBoolean: pterm.NewStyle(pterm.FgMagenta),
		ClassNull:    pterm.NewStyle(pterm.FgGray),
	}}
}

func (ANSIDecorator) Escape(s string) string { return s }

func (a ANSIDecorator) Decorate(class TokenClass, token string) string {
	if st, ok := a.Styles[class]; ok && st != nil {
		return st.Sprint(token)
	}
	return token
}
