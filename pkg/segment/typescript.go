package segment

import (
	"strings"
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

var httpVerbs = map[string]string{
	"get": "GET", "post": "POST", "put": "PUT", "patch": "PATCH", "delete": "DELETE",
}

// walkTypeScript covers TypeScript, TSX, and JavaScript: functions, classes
// (plain, decorated, and NestJS-style route-bearing classes), interfaces,
// and React components (spec §4.1's "component: uppercase function/const
// name whose body returns JSX").
func (w *walker) walkTypeScript(root *sitter.Node) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Kind() {
		case "function_declaration":
			w.tsFunctionOrComponent(n, funcNameNode(n))
		case "lexical_declaration", "variable_declaration":
			w.tsMaybeArrowComponent(n)
		case "class_declaration":
			w.tsClass(n)
		case "interface_declaration":
			w.tsInterface(n)
		}
		for _, c := range children(n) {
			walk(c)
		}
	}
	walk(root)
}

func funcNameNode(n *sitter.Node) *sitter.Node {
	return n.ChildByFieldName("name")
}

func (w *walker) tsFunctionOrComponent(n *sitter.Node, nameNode *sitter.Node) {
	name := w.text(nameNode)
	params := w.tsParamNames(n.ChildByFieldName("parameters"))
	ret := w.text(n.ChildByFieldName("return_type"))

	kind := types.SegmentFunction
	if isUpperCamel(name) && w.bodyReturnsJSX(n.ChildByFieldName("body")) {
		kind = types.SegmentComponent
	}
	if isRouteConventionPath(w.filePath) {
		kind = types.SegmentRoute
	}
	w.emit(n, kind, types.StructuralMetadata{Name: name, Parameters: params, ReturnType: ret})
}

// tsMaybeArrowComponent handles `const Foo = () => <div/>` and `const useFoo
// = () => {...}` shaped declarations.
func (w *walker) tsMaybeArrowComponent(n *sitter.Node) {
	for _, decl := range children(n) {
		if decl.Kind() != "variable_declarator" {
			continue
		}
		nameNode := decl.ChildByFieldName("name")
		valueNode := decl.ChildByFieldName("value")
		if nameNode == nil || valueNode == nil {
			continue
		}
		if valueNode.Kind() != "arrow_function" && valueNode.Kind() != "function_expression" {
			continue
		}
		name := w.text(nameNode)
		params := w.tsParamNames(valueNode.ChildByFieldName("parameters"))
		kind := types.SegmentUtility
		if isUpperCamel(name) && w.bodyReturnsJSX(valueNode.ChildByFieldName("body")) {
			kind = types.SegmentComponent
		} else if strings.HasPrefix(name, "use") && len(name) > 3 && unicode.IsUpper(rune(name[3])) {
			kind = types.SegmentUtility
		}
		if isRouteConventionPath(w.filePath) {
			kind = types.SegmentRoute
		}
		w.emit(n, kind, types.StructuralMetadata{Name: name, Parameters: params})
	}
}

func (w *walker) tsParamNames(params *sitter.Node) []string {
	if params == nil {
		return nil
	}
	var out []string
	for _, p := range children(params) {
		switch p.Kind() {
		case "required_parameter", "optional_parameter":
			if pat := p.ChildByFieldName("pattern"); pat != nil {
				out = append(out, w.text(pat))
			}
		case "identifier":
			out = append(out, w.text(p))
		}
	}
	return out
}

func (w *walker) bodyReturnsJSX(body *sitter.Node) bool {
	if body == nil {
		return false
	}
	found := false
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if found {
			return
		}
		switch n.Kind() {
		case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
			found = true
			return
		}
		for _, c := range children(n) {
			walk(c)
		}
	}
	walk(body)
	return found
}

// tsClass handles a class declaration, tagging it as a decorated class
// (NestJS controller/service/module), a route-bearing controller, or a
// plain class/model.
func (w *walker) tsClass(n *sitter.Node) {
	name := w.text(n.ChildByFieldName("name"))
	decorators := w.classDecorators(n)
	parent := ""
	if heritage := n.ChildByFieldName("heritage"); heritage != nil {
		parent = w.text(heritage)
	}

	kind := types.SegmentClass
	if hasDecorator(decorators, "Controller") {
		kind = types.SegmentService
		w.emitControllerRoutes(n, name, decorators)
	} else if hasDecorator(decorators, "Injectable") {
		kind = types.SegmentService
	} else if strings.HasSuffix(name, "Model") || strings.HasSuffix(name, "Entity") {
		kind = types.SegmentModel
	} else if strings.HasSuffix(name, "Middleware") {
		kind = types.SegmentMiddleware
	}

	w.emit(n, kind, types.StructuralMetadata{Name: name, Decorators: decorators, ParentClass: parent})
}

func (w *walker) classDecorators(n *sitter.Node) []string {
	var out []string
	prev := n.PrevSibling()
	for prev != nil && prev.Kind() == "decorator" {
		out = append([]string{w.text(prev)}, out...)
		prev = prev.PrevSibling()
	}
	return out
}

func hasDecorator(decorators []string, name string) bool {
	for _, d := range decorators {
		if strings.Contains(d, name) {
			return true
		}
	}
	return false
}

// emitControllerRoutes walks a @Controller class's methods, emitting a
// SegmentRoute for each method decorated with an HTTP-verb decorator
// (@Get, @Post, ...), per spec §4.1's decorator-based route convention.
func (w *walker) emitControllerRoutes(classNode *sitter.Node, className string, classDecorators []string) {
	basePath := decoratorArgString(classDecorators, "Controller")

	body := classNode.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, member := range children(body) {
		if member.Kind() != "method_definition" {
			continue
		}
		methodDecorators := w.classDecorators(member)
		for _, d := range methodDecorators {
			verb := decoratorVerb(d)
			if verb == "" {
				continue
			}
			route := joinRoutePath(basePath, decoratorArgStringOne(d))
			name := w.text(member.ChildByFieldName("name"))
			w.emit(member, types.SegmentRoute, types.StructuralMetadata{
				Name: className + "." + name, HTTPVerb: verb, RoutePath: route, Decorators: methodDecorators,
			})
		}
	}
}

func decoratorVerb(decorator string) string {
	lower := strings.ToLower(decorator)
	for token, verb := range httpVerbs {
		if strings.Contains(lower, "@"+token+"(") || strings.Contains(lower, "@"+token+"\n") {
			return verb
		}
	}
	return ""
}

func decoratorArgString(decorators []string, name string) string {
	for _, d := range decorators {
		if strings.Contains(d, name) {
			return decoratorArgStringOne(d)
		}
	}
	return ""
}

// decoratorArgStringOne extracts a single-quoted argument out of a decorator
// text like `@Controller('users')`.
func decoratorArgStringOne(decorator string) string {
	start := strings.IndexAny(decorator, "'\"`")
	if start == -1 {
		return ""
	}
	quote := decorator[start]
	end := strings.IndexByte(decorator[start+1:], quote)
	if end == -1 {
		return ""
	}
	return decorator[start+1 : start+1+end]
}

func joinRoutePath(base, sub string) string {
	base = strings.Trim(base, "/")
	sub = strings.Trim(sub, "/")
	switch {
	case base == "" && sub == "":
		return "/"
	case base == "":
		return "/" + sub
	case sub == "":
		return "/" + base
	default:
		return "/" + base + "/" + sub
	}
}

func (w *walker) tsInterface(n *sitter.Node) {
	name := w.text(n.ChildByFieldName("name"))
	w.emit(n, types.SegmentInterface, types.StructuralMetadata{Name: name})
}

// isRouteConventionPath reports whether filePath falls under one of the
// router-path conventions spec §4.1 names for exported handler functions:
// Next.js/Express-style api/**, pages/**, and app/** directories.
func isRouteConventionPath(filePath string) bool {
	normalized := strings.ReplaceAll(filePath, "\\", "/")
	for _, seg := range strings.Split(normalized, "/") {
		switch seg {
		case "api", "pages", "app":
			return true
		}
	}
	return false
}

func isUpperCamel(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}
