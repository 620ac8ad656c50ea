package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"text/template"

	"github.com/stylegen-labs/stylegen/internal/jsondoc"
)

//go:embed files
var filesFS embed.FS

// Concern is one independently configurable tool area.
type Concern string

const (
	ESLint    Concern = "eslint"
	Stylelint Concern = "stylelint"
	Prettier  Concern = "prettier"
)

// Concerns lists every concern in composition order.
func Concerns() []Concern {
	return []Concern{ESLint, Stylelint, Prettier}
}

// OutputFile returns the file name, relative to the project root, that the
// concern's document is written to.
func (c Concern) OutputFile() string {
	switch c {
	case ESLint:
		return ".eslintrc.json"
	case Stylelint:
		return ".stylelintrc"
	case Prettier:
		return ".prettierrc"
	default:
		return ""
	}
}

// Data holds the template variables available to base templates. Every value
// is precomputed so the templates only substitute; they never branch.
type Data struct {
	Indent      any    // "tab" or a space count, as ESLint's indent rule expects
	Quotes      string // "single" or "double"
	Semi        bool
	SemiRule    string // "always" or "never"
	ConsoleRule string // "error" or "off"
	UseTabs     bool
	TabWidth    int
	SingleQuote bool
}

// NewData derives template variables from the user's answers. indent is
// "tab" or a decimal space count.
func NewData(indent string, semi bool, quotes string, noConsole bool) Data {
	d := Data{
		Indent:      indent,
		Quotes:      quotes,
		Semi:        semi,
		SemiRule:    "never",
		ConsoleRule: "off",
		UseTabs:     indent == "tab",
		TabWidth:    4,
		SingleQuote: quotes == "single",
	}
	if n, err := strconv.Atoi(indent); err == nil {
		d.Indent = n
		d.TabWidth = n
	}
	if semi {
		d.SemiRule = "always"
	}
	if noConsole {
		d.ConsoleRule = "error"
	}
	return d
}

var funcs = template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	},
}

// RenderBase executes the base template for a concern and parses the result.
func RenderBase(c Concern, data Data) (jsondoc.Document, error) {
	name := path.Join("files", string(c), "base.json.tmpl")
	raw, err := filesFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("base template for %s not found: %w", c, err)
	}

	tmpl, err := template.New(path.Base(name)).Funcs(funcs).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}

	doc, err := jsondoc.Parse(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("rendered %s template: %w", c, err)
	}
	return doc, nil
}
