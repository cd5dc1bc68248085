// Package checked loads a checked program, the interchange document the
// front end emits after binding and type checking. A document carries the
// declaration trees of every source file together with the type and symbol
// tables the trees refer to, and the loaded Program answers the
// types.Checker queries the code generator issues.
//
// Documents are YAML; JSON documents are accepted as well.
package checked

import "gopkg.in/yaml.v3"

// document is the top-level shape of a checked program.
type document struct {
	Files   []*fileDoc            `yaml:"files"`
	Types   map[string]*typeDoc   `yaml:"types"`
	Symbols map[string]*symbolDoc `yaml:"symbols"`
}

type fileDoc struct {
	Name       string     `yaml:"name"`
	Statements []*nodeDoc `yaml:"statements"`
}

// typeDoc describes one type. All references are ids into the document's
// type and symbol tables.
type typeDoc struct {
	Flags         []string  `yaml:"flags"`
	Name          string    `yaml:"name"`
	Symbol        string    `yaml:"symbol"`
	TypeArguments []string  `yaml:"typeArguments"`
	Properties    []string  `yaml:"properties"`
	NumberIndex   string    `yaml:"numberIndex"`
	Base          string    `yaml:"base"`
	Value         yaml.Node `yaml:"value"`
}

type symbolDoc struct {
	Name  string   `yaml:"name"`
	Flags []string `yaml:"flags"`
}

// nodeDoc is a tree node. Kind selects which of the remaining fields apply;
// kinds use the names printed by ast.Kind.
type nodeDoc struct {
	Kind      string `yaml:"kind"`
	Text      string `yaml:"text"`
	Line      int    `yaml:"line"`
	Column    int    `yaml:"column"`
	EndLine   int    `yaml:"endLine"`
	EndColumn int    `yaml:"endColumn"`

	// Checker annotations.
	Type     string `yaml:"type"`
	Symbol   string `yaml:"symbol"`
	Declares string `yaml:"declares"`
	Returns  string `yaml:"returns"`

	Name           string    `yaml:"name"`
	Operator       string    `yaml:"operator"`
	Value          yaml.Node `yaml:"value"`
	Const          bool      `yaml:"const"`
	Ambient        bool      `yaml:"ambient"`
	Readonly       bool      `yaml:"readonly"`
	Property       bool      `yaml:"property"`
	TypeParameters []string  `yaml:"typeParameters"`

	Statements   []*nodeDoc `yaml:"statements"`
	Members      []*nodeDoc `yaml:"members"`
	Parameters   []*nodeDoc `yaml:"parameters"`
	Declarations []*nodeDoc `yaml:"declarations"`
	Arguments    []*nodeDoc `yaml:"arguments"`

	Body        *nodeDoc `yaml:"body"`
	Expression  *nodeDoc `yaml:"expression"`
	Left        *nodeDoc `yaml:"left"`
	Right       *nodeDoc `yaml:"right"`
	Operand     *nodeDoc `yaml:"operand"`
	Initializer *nodeDoc `yaml:"initializer"`
	Condition   *nodeDoc `yaml:"condition"`
	Then        *nodeDoc `yaml:"then"`
	Else        *nodeDoc `yaml:"else"`
}
