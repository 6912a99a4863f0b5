package segment

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// walkJava covers classes, interfaces, and methods, with Spring annotation
// handling for @RestController/@Service/@Repository classes and
// @GetMapping-family route methods (spec §4.1's Java decorated-class rule:
// "annotation" preceding a class or method declaration).
func (w *walker) walkJava(root *sitter.Node) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Kind() {
		case "class_declaration":
			w.javaClass(n)
		case "interface_declaration":
			w.javaInterface(n)
		}
		for _, c := range children(n) {
			walk(c)
		}
	}
	walk(root)
}

func (w *walker) javaAnnotationTexts(n *sitter.Node) []string {
	modifiers := n.ChildByFieldName("modifiers")
	if modifiers == nil {
		return nil
	}
	var out []string
	for _, c := range children(modifiers) {
		if c.Kind() == "marker_annotation" || c.Kind() == "annotation" {
			out = append(out, w.text(c))
		}
	}
	return out
}

func (w *walker) javaClass(n *sitter.Node) {
	name := w.text(n.ChildByFieldName("name"))
	annotations := w.javaAnnotationTexts(n)

	kind := types.SegmentClass
	switch {
	case hasDecorator(annotations, "RestController"), hasDecorator(annotations, "Controller"):
		kind = types.SegmentService
		w.emitSpringRoutes(n, name, annotations)
	case hasDecorator(annotations, "Service"), hasDecorator(annotations, "Repository"), hasDecorator(annotations, "Component"):
		kind = types.SegmentService
	case hasDecorator(annotations, "Entity"), strings.HasSuffix(name, "Entity"), strings.HasSuffix(name, "DTO"):
		kind = types.SegmentModel
	}

	w.emit(n, kind, types.StructuralMetadata{Name: name, Decorators: annotations})
}

func (w *walker) javaInterface(n *sitter.Node) {
	name := w.text(n.ChildByFieldName("name"))
	w.emit(n, types.SegmentInterface, types.StructuralMetadata{Name: name})
}

var springMappingVerbs = map[string]string{
	"GetMapping": "GET", "PostMapping": "POST", "PutMapping": "PUT",
	"DeleteMapping": "DELETE", "PatchMapping": "PATCH",
}

// emitSpringRoutes emits one route segment per method declared directly in
// a @RestController/@Controller body (spec §4.1: "methods inside a
// route-group become individual route segments"). A method carrying a
// recognized @XxxMapping sub-annotation gets its verb and sub-path from
// that annotation; a route-group method with no mapping sub-annotation
// still becomes a route segment, with its verb left as GET (Spring's own
// default handler-mapping behavior) rather than dropped.
func (w *walker) emitSpringRoutes(classNode *sitter.Node, className string, classAnnotations []string) {
	basePath := decoratorArgString(classAnnotations, "RequestMapping")

	body := classNode.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, member := range children(body) {
		if member.Kind() != "method_declaration" {
			continue
		}
		annotations := w.javaAnnotationTexts(member)
		name := w.text(member.ChildByFieldName("name"))
		verb, subPath := springRouteVerbAndPath(annotations)
		w.emit(member, types.SegmentRoute, types.StructuralMetadata{
			Name: className + "." + name, HTTPVerb: verb, RoutePath: joinRoutePath(basePath, subPath), Decorators: annotations,
		})
	}
}

// springRouteVerbAndPath finds the first recognized @XxxMapping annotation
// among a method's annotations and returns its verb and sub-path. If none
// match, it returns the Spring default verb GET and no sub-path.
func springRouteVerbAndPath(annotations []string) (verb, subPath string) {
	for _, a := range annotations {
		for token, v := range springMappingVerbs {
			if strings.Contains(a, token) {
				return v, decoratorArgStringOne(a)
			}
		}
	}
	return "GET", ""
}
