// Package gastio loads a gast.Grammar from the TOML grammar-description
// format proglrc accepts on disk. Parsing the BNF-style surface syntax
// labels/categories are normally written in is a separate front-end
// concern this package does not take on: proglrc instead accepts an
// already-structured TOML document whose shape mirrors gast's own
// fields one-to-one, decoded with github.com/BurntSushi/toml. A handful
// of string conventions (a leading "[" marks a list category, a literal
// in quotes distinguishes a terminal item from a category reference)
// replace what a real grammar-file lexer would otherwise tokenize.
package gastio

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/DawidvC/proglr/internal/gast"
)

type rawToken struct {
	Name    string `toml:"name"`
	Literal string `toml:"literal"`
	Attr    string `toml:"attr"`
}

type rawDef struct {
	Type    string   `toml:"type"` // rule | separator | terminator | coercions
	Label   string   `toml:"label"`
	Cat     string   `toml:"cat"`
	Items   []string `toml:"items"`
	MinSize string   `toml:"minsize"` // empty | nonempty
	Sep     string   `toml:"sep"`
	Term    string   `toml:"term"`
	Ident   string   `toml:"ident"`
	Level   int      `toml:"level"`
}

type rawGrammar struct {
	Token []rawToken `toml:"token"`
	Def   []rawDef   `toml:"def"`
}

// LoadFile reads and decodes the TOML grammar description at path into a
// gast.Grammar.
func LoadFile(path string) (*gast.Grammar, error) {
	var raw rawGrammar
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("decode grammar file %q: %w", path, err)
	}
	return build(raw)
}

func build(raw rawGrammar) (*gast.Grammar, error) {
	g := &gast.Grammar{}

	for _, t := range raw.Token {
		switch {
		case t.Literal != "":
			g.TokenDecls = append(g.TokenDecls, gast.Keyword{Name: t.Name, Literal: t.Literal})
		case t.Attr != "":
			g.TokenDecls = append(g.TokenDecls, gast.AttrToken{Name: t.Name, Attr: t.Attr})
		default:
			g.TokenDecls = append(g.TokenDecls, gast.NoAttrToken{Name: t.Name})
		}
	}

	for _, d := range raw.Def {
		switch d.Type {
		case "rule":
			items := make([]gast.Item, 0, len(d.Items))
			for _, it := range d.Items {
				items = append(items, parseItem(it))
			}
			g.Definitions = append(g.Definitions, gast.Rule{
				Label: parseLabel(d.Label),
				Cat:   parseCategory(d.Cat),
				Items: items,
			})
		case "separator":
			g.Definitions = append(g.Definitions, gast.Separator{
				MinSize: parseMinSize(d.MinSize),
				Cat:     parseCategory(d.Cat),
				Sep:     d.Sep,
			})
		case "terminator":
			g.Definitions = append(g.Definitions, gast.Terminator{
				MinSize: parseMinSize(d.MinSize),
				Cat:     parseCategory(d.Cat),
				Term:    d.Term,
			})
		case "coercions":
			g.Definitions = append(g.Definitions, gast.Coercions{
				Ident: d.Ident,
				Level: d.Level,
			})
		default:
			return nil, fmt.Errorf("unknown definition type %q", d.Type)
		}
	}

	return g, nil
}

func parseMinSize(s string) gast.MinSize {
	if s == "empty" {
		return gast.MEmpty
	}
	return gast.MNonempty
}

// parseCategory strips matching outer "[" "]" pairs to determine list
// nesting level, e.g. "[[Exp]]" -> ListCat{ListCat{IdCat{"Exp"}}}.
func parseCategory(s string) gast.Category {
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return gast.ListCat{Cat: parseCategory(s[1 : len(s)-1])}
	}
	return gast.IdCat{Ident: s}
}

// parseItem treats a quoted string as a literal terminal and everything
// else as a category reference.
func parseItem(s string) gast.Item {
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		return gast.Terminal{Literal: s[1 : len(s)-1]}
	}
	return gast.NTerminal{Cat: parseCategory(s)}
}

// parseLabel recognizes the reserved list-macro/coercion label spellings
// and falls back to a user Named label otherwise.
func parseLabel(s string) gast.Label {
	switch s {
	case "_", "":
		return gast.LabelWild{}
	case "[]":
		return gast.LabelListE{}
	case "(:)":
		return gast.LabelListCons{}
	case "(:[])":
		return gast.LabelListOne{}
	default:
		return gast.LabelID{Ident: s}
	}
}
