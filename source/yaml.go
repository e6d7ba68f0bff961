package source

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/qsenc/internal/engine"
)

var (
	errAliasCycle  = errors.New("yaml: alias cycle")
	errAliasBudget = errors.New("yaml: document expands beyond node budget")
)

// yamlNodeBudget bounds the expanded tree of an n-byte document. Plain
// documents stay far below it; only alias fan-out gets close.
func yamlNodeBudget(n int) int { return 10000 + 100*n }

// YAML decodes the first document of a YAML stream. Mapping order is kept;
// aliases are expanded. An empty stream describes nothing. Self-referencing
// aliases and alias expansion past a size budget are parse errors.
func YAML(b []byte, opts ...Option) (*Document, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, buildError(err)
	}
	if doc.Kind == 0 {
		return &Document{}, nil
	}
	o := buildOptions(opts)
	w := &yamlWalker{
		dup:    o.dup,
		active: make(map[*yaml.Node]bool),
		budget: yamlNodeBudget(len(b)),
	}
	root, err := w.walk(&doc, "")
	if err != nil {
		return nil, buildError(err)
	}
	return &Document{root: root}, nil
}

// yamlWalker converts a yaml.Node tree. active holds the anchored nodes on
// the current path so an alias back into one of them is caught.
type yamlWalker struct {
	dup    eng.DuplicatePolicy
	active map[*yaml.Node]bool
	nodes  int
	budget int
}

func (w *yamlWalker) walk(n *yaml.Node, path string) (*eng.Node, error) {
	w.nodes++
	if w.nodes > w.budget {
		return nil, errAliasBudget
	}
	if n.Kind == yaml.AliasNode {
		if n.Alias == nil || w.active[n.Alias] {
			return nil, fmt.Errorf("%w at %s", errAliasCycle, pointerOrRoot(path))
		}
		return w.walk(n.Alias, path)
	}
	if n.Anchor != "" {
		w.active[n] = true
		defer delete(w.active, n)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &eng.Node{Kind: eng.NodeNull}, nil
		}
		return w.walk(n.Content[0], path)
	case yaml.MappingNode:
		return w.mapping(n, path)
	case yaml.SequenceNode:
		out := &eng.Node{Kind: eng.NodeArray}
		for i, c := range n.Content {
			v, err := w.walk(c, path+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			out.Elems = append(out.Elems, v)
		}
		return out, nil
	}
	return scalarFromYAML(n)
}

func (w *yamlWalker) mapping(n *yaml.Node, path string) (*eng.Node, error) {
	out := &eng.Node{Kind: eng.NodeObject}
	var seen map[string]struct{}
	if w.dup == eng.DupError {
		seen = make(map[string]struct{})
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind == yaml.AliasNode && k.Alias != nil {
			k = k.Alias
		}
		p := path + "/" + eng.EscapePointer(k.Value)
		if seen != nil {
			if _, ok := seen[k.Value]; ok {
				return nil, &eng.DuplicateKeyError{Path: p, Key: k.Value}
			}
			seen[k.Value] = struct{}{}
		}
		v, err := w.walk(n.Content[i+1], p)
		if err != nil {
			return nil, err
		}
		out.Fields = append(out.Fields, eng.Field{Key: k.Value, Value: v})
	}
	return out, nil
}

func scalarFromYAML(n *yaml.Node) (*eng.Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return &eng.Node{Kind: eng.NodeNull}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return &eng.Node{Kind: eng.NodeBool, Bool: b}, nil
	case "!!int", "!!float":
		return &eng.Node{Kind: eng.NodeNumber, Text: n.Value}, nil
	}
	return &eng.Node{Kind: eng.NodeString, Text: n.Value}, nil
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
