package prefs

import (
	"github.com/stylegen-labs/stylegen/internal/templates"
)

// Kind is the answer type of a question.
type Kind int

const (
	MultiSelect Kind = iota
	SingleSelect
	Confirm
)

// Question names, also used as answer keys.
const (
	QPlugins   = "plugins"
	QIndent    = "indent"
	QUseSemi   = "use_semi"
	QNoConsole = "no_console"
	QQuotes    = "quotes"
	QStylelint = "stylelint"
	QPrettier  = "prettier"
)

// Choice is one selectable value of a select question.
type Choice struct {
	Label   string
	Value   string
	Default bool
}

// Question is one entry of the fixed prompt sequence.
type Question struct {
	Name    string
	Kind    Kind
	Message string
	Choices []Choice
	Default bool // confirm questions only
}

// Questions returns the prompt sequence in the order it is asked. Plugin
// choices come from reg so every offered plugin has an overlay.
func Questions(reg *templates.Registry) []Question {
	plugins := make([]Choice, 0, len(reg.Names()))
	for _, p := range reg.Plugins() {
		plugins = append(plugins, Choice{Label: p.Name, Value: p.Name, Default: p.Default})
	}

	return []Question{
		{
			Name:    QPlugins,
			Kind:    MultiSelect,
			Message: "Which eslint plugins would you like to use?",
			Choices: plugins,
		},
		{
			Name:    QIndent,
			Kind:    SingleSelect,
			Message: "Which indent style would you like to use?",
			Choices: []Choice{
				{Label: "1 Tab", Value: string(IndentTab), Default: true},
				{Label: "4 spaces", Value: string(IndentSpaces4)},
				{Label: "2 spaces", Value: string(IndentSpaces2)},
			},
		},
		{
			Name:    QUseSemi,
			Kind:    Confirm,
			Message: "Do you want to use semicolons?",
			Default: false,
		},
		{
			Name:    QNoConsole,
			Kind:    Confirm,
			Message: "Do you want to forbid using Console (console.log, etc)?",
			Default: true,
		},
		{
			Name:    QQuotes,
			Kind:    SingleSelect,
			Message: "Which quotes would you like to use?",
			Choices: []Choice{
				{Label: "Single", Value: string(QuotesSingle), Default: true},
				{Label: "Double", Value: string(QuotesDouble)},
			},
		},
		{
			Name:    QStylelint,
			Kind:    Confirm,
			Message: "Would you like to set up stylelint?",
			Default: true,
		},
		{
			Name:    QPrettier,
			Kind:    Confirm,
			Message: "Would you like to set up prettier?",
			Default: true,
		},
	}
}

// defaultValues returns the values selected by default for a select question.
func (q Question) defaultValues() []string {
	var out []string
	for _, c := range q.Choices {
		if c.Default {
			out = append(out, c.Value)
		}
	}
	return out
}

// Answers maps question names to answers: []string for multi-select, string
// for single-select and bool for confirm.
type Answers map[string]any

// Defaults returns the answers a user gets by accepting every default.
func Defaults(reg *templates.Registry) (*PreferenceSet, error) {
	answers := make(Answers)
	for _, q := range Questions(reg) {
		switch q.Kind {
		case MultiSelect:
			answers[q.Name] = q.defaultValues()
		case SingleSelect:
			if d := q.defaultValues(); len(d) > 0 {
				answers[q.Name] = d[0]
			}
		case Confirm:
			answers[q.Name] = q.Default
		}
	}
	return answers.PreferenceSet()
}

// PreferenceSet converts collected answers into a validated PreferenceSet.
func (a Answers) PreferenceSet() (*PreferenceSet, error) {
	plugins, _ := a[QPlugins].([]string)
	indent, _ := a[QIndent].(string)
	quotes, _ := a[QQuotes].(string)
	return NewPreferenceSet(Options{
		Plugins:   plugins,
		Indent:    IndentStyle(indent),
		UseSemi:   a.bool(QUseSemi),
		Quotes:    QuoteStyle(quotes),
		NoConsole: a.bool(QNoConsole),
		Stylelint: a.bool(QStylelint),
		Prettier:  a.bool(QPrettier),
	})
}

func (a Answers) bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}
