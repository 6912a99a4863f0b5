package segment

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// walkRust covers function items, struct/enum items, trait items, and
// Actix/Axum/Warp route attributes (spec §4.1's Rust rule: an attribute
// macro like `#[get("/x")]` immediately preceding a function item).
func (w *walker) walkRust(root *sitter.Node) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Kind() {
		case "function_item":
			w.rustFunction(n)
		case "struct_item":
			w.rustStruct(n)
		case "trait_item":
			w.rustTrait(n)
		}
		for _, c := range children(n) {
			walk(c)
		}
	}
	walk(root)
}

var actixVerbs = map[string]string{
	"get": "GET", "post": "POST", "put": "PUT", "delete": "DELETE", "patch": "PATCH",
}

func (w *walker) rustAttributes(n *sitter.Node) []string {
	var out []string
	prev := n.PrevSibling()
	for prev != nil && prev.Kind() == "attribute_item" {
		out = append([]string{w.text(prev)}, out...)
		prev = prev.PrevSibling()
	}
	return out
}

func (w *walker) rustParamNames(params *sitter.Node) []string {
	if params == nil {
		return nil
	}
	var out []string
	for _, p := range children(params) {
		if p.Kind() == "parameter" {
			if pat := p.ChildByFieldName("pattern"); pat != nil {
				out = append(out, w.text(pat))
			}
		}
	}
	return out
}

func (w *walker) rustFunction(n *sitter.Node) {
	name := w.text(n.ChildByFieldName("name"))
	params := w.rustParamNames(n.ChildByFieldName("parameters"))
	attrs := w.rustAttributes(n)

	for _, a := range attrs {
		lower := strings.ToLower(a)
		for token, verb := range actixVerbs {
			if strings.Contains(lower, "#["+token+"(") {
				route := decoratorArgStringOne(a)
				w.emit(n, types.SegmentRoute, types.StructuralMetadata{
					Name: name, HTTPVerb: verb, RoutePath: route, Decorators: attrs, Parameters: params,
				})
				return
			}
		}
	}

	w.emit(n, types.SegmentFunction, types.StructuralMetadata{Name: name, Parameters: params, Decorators: attrs})
}

func (w *walker) rustStruct(n *sitter.Node) {
	name := w.text(n.ChildByFieldName("name"))
	attrs := w.rustAttributes(n)

	kind := types.SegmentClass
	switch {
	case hasDecorator(attrs, "derive") && (strings.Contains(name, "Model") || strings.Contains(name, "Entity")):
		kind = types.SegmentModel
	case hasDecorator(attrs, "derive(Serialize") || hasDecorator(attrs, "derive(Deserialize"):
		kind = types.SegmentModel
	case strings.HasSuffix(name, "Middleware"):
		kind = types.SegmentMiddleware
	}

	w.emit(n, kind, types.StructuralMetadata{Name: name, Decorators: attrs})
}

func (w *walker) rustTrait(n *sitter.Node) {
	name := w.text(n.ChildByFieldName("name"))
	w.emit(n, types.SegmentInterface, types.StructuralMetadata{Name: name})
}
