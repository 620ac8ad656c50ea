package prefs

import (
	"fmt"
)

// IndentStyle is the indentation answer.
type IndentStyle string

const (
	IndentTab     IndentStyle = "tab"
	IndentSpaces2 IndentStyle = "2"
	IndentSpaces4 IndentStyle = "4"
)

// Valid reports whether s is one of the known indent styles.
func (s IndentStyle) Valid() bool {
	switch s {
	case IndentTab, IndentSpaces2, IndentSpaces4:
		return true
	}
	return false
}

// QuoteStyle is the quote answer.
type QuoteStyle string

const (
	QuotesSingle QuoteStyle = "single"
	QuotesDouble QuoteStyle = "double"
)

// Valid reports whether q is one of the known quote styles.
func (q QuoteStyle) Valid() bool {
	return q == QuotesSingle || q == QuotesDouble
}

// Options are the raw answers used to build a PreferenceSet.
type Options struct {
	Plugins   []string
	Indent    IndentStyle
	UseSemi   bool
	Quotes    QuoteStyle
	NoConsole bool
	Stylelint bool
	Prettier  bool
}

// PreferenceSet is the validated, read-only result of prompting.
type PreferenceSet struct {
	plugins   []string
	indent    IndentStyle
	useSemi   bool
	quotes    QuoteStyle
	noConsole bool
	stylelint bool
	prettier  bool
}

// NewPreferenceSet validates opts and freezes them. Plugin names must be
// unique and non-empty; their order is kept because it decides merge
// precedence.
func NewPreferenceSet(opts Options) (*PreferenceSet, error) {
	if !opts.Indent.Valid() {
		return nil, fmt.Errorf("invalid indent style %q: must be tab, 2 or 4", opts.Indent)
	}
	if !opts.Quotes.Valid() {
		return nil, fmt.Errorf("invalid quote style %q: must be single or double", opts.Quotes)
	}

	seen := make(map[string]bool, len(opts.Plugins))
	plugins := make([]string, 0, len(opts.Plugins))
	for _, p := range opts.Plugins {
		if p == "" {
			return nil, fmt.Errorf("empty plugin name")
		}
		if seen[p] {
			return nil, fmt.Errorf("plugin %q selected more than once", p)
		}
		seen[p] = true
		plugins = append(plugins, p)
	}

	return &PreferenceSet{
		plugins:   plugins,
		indent:    opts.Indent,
		useSemi:   opts.UseSemi,
		quotes:    opts.Quotes,
		noConsole: opts.NoConsole,
		stylelint: opts.Stylelint,
		prettier:  opts.Prettier,
	}, nil
}

// MustPreferenceSet is NewPreferenceSet for literals known to be valid.
func MustPreferenceSet(opts Options) *PreferenceSet {
	p, err := NewPreferenceSet(opts)
	if err != nil {
		panic(err)
	}
	return p
}

// Plugins returns the selected plugins in selection order.
func (p *PreferenceSet) Plugins() []string {
	out := make([]string, len(p.plugins))
	copy(out, p.plugins)
	return out
}

func (p *PreferenceSet) Indent() IndentStyle { return p.indent }
func (p *PreferenceSet) UseSemi() bool       { return p.useSemi }
func (p *PreferenceSet) Quotes() QuoteStyle  { return p.quotes }
func (p *PreferenceSet) NoConsole() bool     { return p.noConsole }
func (p *PreferenceSet) Stylelint() bool     { return p.stylelint }
func (p *PreferenceSet) Prettier() bool      { return p.prettier }

// Options returns a copy of the answers the set was built from.
func (p *PreferenceSet) Options() Options {
	return Options{
		Plugins:   p.Plugins(),
		Indent:    p.indent,
		UseSemi:   p.useSemi,
		Quotes:    p.quotes,
		NoConsole: p.noConsole,
		Stylelint: p.stylelint,
		Prettier:  p.prettier,
	}
}

// StyleRecord returns the subset of answers persisted for future runs.
func (p *PreferenceSet) StyleRecord() StyleRecord {
	return StyleRecord{Indent: p.indent, Semi: p.useSemi, Quotes: p.quotes}
}
