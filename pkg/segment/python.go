package segment

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// walkPython covers function/class definitions, Flask/FastAPI/Django
// route decorators, and decorated classes (spec §4.1's Python rule:
// "decorator immediately preceding a function or class definition").
func (w *walker) walkPython(root *sitter.Node) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Kind() {
		case "function_definition":
			w.pyFunction(n)
		case "class_definition":
			w.pyClass(n)
		}
		for _, c := range children(n) {
			walk(c)
		}
	}
	walk(root)
}

func (w *walker) pyDecorators(n *sitter.Node) []string {
	parent := n.Parent()
	if parent == nil || parent.Kind() != "decorated_definition" {
		return nil
	}
	var out []string
	for _, c := range children(parent) {
		if c.Kind() == "decorator" {
			out = append(out, w.text(c))
		}
	}
	return out
}

var flaskFastAPIVerbs = map[string]string{
	"get": "GET", "post": "POST", "put": "PUT", "delete": "DELETE", "patch": "PATCH",
	"route": "GET",
}

func (w *walker) pyFunction(n *sitter.Node) {
	name := w.text(n.ChildByFieldName("name"))
	params := w.pyParamNames(n.ChildByFieldName("parameters"))
	decorators := w.pyDecorators(n)

	target := decoratorHost(n)

	for _, d := range decorators {
		verb, path, ok := parsePyRouteDecorator(d)
		if ok {
			w.emit(target, types.SegmentRoute, types.StructuralMetadata{
				Name: name, HTTPVerb: verb, RoutePath: path, Decorators: decorators, Parameters: params,
			})
			return
		}
	}

	w.emit(target, types.SegmentFunction, types.StructuralMetadata{Name: name, Parameters: params, Decorators: decorators})
}

// decoratorHost returns the decorated_definition wrapper when present so the
// emitted segment's byte range covers the decorators too, otherwise the
// bare node.
func decoratorHost(n *sitter.Node) *sitter.Node {
	if parent := n.Parent(); parent != nil && parent.Kind() == "decorated_definition" {
		return parent
	}
	return n
}

// parsePyRouteDecorator recognizes `@app.route('/x', methods=['POST'])` and
// `@router.get('/x')`-shaped decorators.
func parsePyRouteDecorator(decorator string) (verb, path string, ok bool) {
	lower := strings.ToLower(decorator)
	for token, v := range flaskFastAPIVerbs {
		if strings.Contains(lower, "."+token+"(") {
			verb = v
			path = decoratorArgStringOne(decorator)
			if strings.Contains(lower, "methods=") && strings.Contains(lower, "post") {
				verb = "POST"
			}
			return verb, path, true
		}
	}
	return "", "", false
}

func (w *walker) pyParamNames(params *sitter.Node) []string {
	if params == nil {
		return nil
	}
	var out []string
	for _, p := range children(params) {
		switch p.Kind() {
		case "identifier":
			out = append(out, w.text(p))
		case "typed_parameter", "default_parameter", "typed_default_parameter":
			if nameNode := p.Child(0); nameNode != nil {
				out = append(out, w.text(nameNode))
			}
		}
	}
	return out
}

func (w *walker) pyClass(n *sitter.Node) {
	name := w.text(n.ChildByFieldName("name"))
	decorators := w.pyDecorators(n)
	parent := ""
	if superclasses := n.ChildByFieldName("superclasses"); superclasses != nil {
		parent = w.text(superclasses)
	}

	kind := types.SegmentClass
	switch {
	case strings.Contains(parent, "Model"), strings.Contains(parent, "BaseModel"), strings.Contains(parent, "Base"):
		kind = types.SegmentModel
	case strings.HasSuffix(name, "Middleware"):
		kind = types.SegmentMiddleware
	case strings.HasSuffix(name, "Service"), strings.HasSuffix(name, "Repository"):
		kind = types.SegmentService
	}

	w.emit(decoratorHost(n), kind, types.StructuralMetadata{Name: name, Decorators: decorators, ParentClass: parent})
}
