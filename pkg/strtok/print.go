package strtok

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	asciitree "github.com/thediveo/go-asciitree"
	"gopkg.in/yaml.v3"
)

type PrintOptions struct {
	TrimTokenOnOutput int
}

// PrintFunc writes the tokens of a session. Sessions whose tokens are out of
// sync with their string print nothing.
type PrintFunc func(s *Session, output io.Writer, options *PrintOptions) error

// TrimValue shortens a token to trimLength characters, ending in an ellipsis.
func TrimValue(value string, trimLength int) string {
	runes := []rune(value)
	if trimLength > 0 && len(runes) > trimLength {
		// Reserve space for Unicode ellipsis (1 character: "…")
		if trimLength >= 2 {
			return string(runes[:trimLength-1]) + "…"
		}
		return string(runes[:trimLength])
	}
	return value
}

func PickPrintFunc(format string) (PrintFunc, error) {
	switch strings.ToUpper(format) {
	case "TEXT":
		return PrintTokensText, nil
	case "INDEXED":
		return PrintTokensIndexed, nil
	case "JSON":
		return PrintTokensJSON, nil
	case "YAML":
		return PrintTokensYAML, nil
	case "ASCIITREE":
		return PrintTokensAsciiTree, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// PrintString writes the session's string, as far as its first terminator.
func PrintString(s *Session, output io.Writer) error {
	if err := s.check(); err != nil {
		return err
	}
	if !s.hasString {
		return nil
	}
	_, err := fmt.Fprintf(output, "string: %s\n", s.String())
	return err
}

func trimOf(options *PrintOptions) int {
	if options == nil {
		return 0
	}
	return options.TrimTokenOnOutput
}

// PrintTokensText writes one token per line.
func PrintTokensText(s *Session, output io.Writer, options *PrintOptions) error {
	if !s.InSync() {
		return nil
	}
	trim := trimOf(options)
	return s.Traverse(func(text string) error {
		_, err := fmt.Fprintln(output, TrimValue(text, trim))
		return err
	})
}

// PrintTokensIndexed writes each token prefixed with its index.
func PrintTokensIndexed(s *Session, output io.Writer, options *PrintOptions) error {
	if !s.InSync() {
		return nil
	}
	trim := trimOf(options)
	for i := 0; i < s.Count(); i++ {
		text, err := s.TokenAt(i)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(output, "str%d: %s\n", i, TrimValue(text, trim)); err != nil {
			return err
		}
	}
	return nil
}

type tokenDocument struct {
	Count  int      `json:"count" yaml:"count"`
	Tokens []string `json:"tokens" yaml:"tokens"`
}

func newTokenDocument(s *Session, options *PrintOptions) (*tokenDocument, error) {
	texts, err := s.Tokens()
	if err != nil {
		return nil, err
	}
	trim := trimOf(options)
	for i, text := range texts {
		texts[i] = TrimValue(text, trim)
	}
	return &tokenDocument{Count: len(texts), Tokens: texts}, nil
}

func PrintTokensJSON(s *Session, output io.Writer, options *PrintOptions) error {
	if !s.InSync() {
		return nil
	}
	doc, err := newTokenDocument(s, options)
	if err != nil {
		return err
	}
	return json.NewEncoder(output).Encode(doc)
}

func PrintTokensYAML(s *Session, output io.Writer, options *PrintOptions) error {
	if !s.InSync() {
		return nil
	}
	doc, err := newTokenDocument(s, options)
	if err != nil {
		return err
	}
	encoder := yaml.NewEncoder(output)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	return encoder.Close()
}

type AsciiNode struct {
	Label    string      `asciitree:"label"`
	Props    []string    `asciitree:"properties"`
	Children []AsciiNode `asciitree:"children"`
}

// convertToTree builds a tree with one child per token, carrying its index and
// byte span as properties.
func convertToTree(s *Session, options *PrintOptions) (AsciiNode, error) {
	trim := trimOf(options)
	var children []AsciiNode
	for i := 0; i < s.Count(); i++ {
		t, err := s.Token(i)
		if err != nil {
			return AsciiNode{}, err
		}
		text, err := t.Text()
		if err != nil {
			return AsciiNode{}, err
		}
		children = append(children, AsciiNode{
			Label: TrimValue(text, trim),
			Props: []string{
				fmt.Sprintf("index: %d", i),
				fmt.Sprintf("span: %d %d", t.Offset(), t.Offset()+t.Len()),
			},
		})
	}
	return AsciiNode{
		Label:    "tokens",
		Props:    []string{fmt.Sprintf("count: %d", s.Count())},
		Children: children,
	}, nil
}

func PrintTokensAsciiTree(s *Session, output io.Writer, options *PrintOptions) error {
	if !s.InSync() {
		return nil
	}
	tree, err := convertToTree(s, options)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, asciitree.RenderFancy(tree))
	return err
}
