// Package framework detects web/application frameworks from dependency,
// import, file-structure, and content-pattern evidence (spec §4.4).
package framework

import (
	"regexp"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// Pattern is one framework's per-language detection table. Every field is a
// list of substrings/paths checked case-sensitively against the
// corresponding evidence source; a single match contributes that source's
// full per-source weight (deduplicated per framework, so ten matching
// imports never count more than one). ContentRegex is an optional fallback
// for content markers that a fixed substring can't express, checked only
// when none of ContentPatterns match.
type Pattern struct {
	Name             types.FrameworkName
	Language         types.Language
	DependencyTokens []string
	ImportTokens     []string
	FileStructure    []string
	ContentPatterns  []string
	ContentRegex     *regexp.Regexp
	Layer            types.ArchitectureLayer
}

// jsxElementPattern matches a bare JSX element tag (opening or
// self-closing), e.g. "<div/>" or "<Foo bar=\"baz\">" — the content signal a
// minimal React component carries even when it imports no React hook and
// uses no literal "jsx" token.
var jsxElementPattern = regexp.MustCompile(`<[A-Za-z][\w.]*(\s[^<>]*)?/?>`)

// Patterns is the closed per-framework detection table (spec's Open
// Question (a): these live as data, not scattered conditionals).
var Patterns = []Pattern{
	{
		Name: types.FrameworkReact, Language: types.LangTypeScript,
		DependencyTokens: []string{"react", "react-dom"},
		ImportTokens:     []string{"react", "react-dom"},
		FileStructure:    []string{"src/App.tsx", "src/index.tsx", "public/index.html"},
		ContentPatterns:  []string{"useState(", "useEffect(", "jsx"},
		ContentRegex:     jsxElementPattern,
		Layer:            types.LayerPresentation,
	},
	{
		Name: types.FrameworkNext, Language: types.LangTypeScript,
		DependencyTokens: []string{"next"},
		ImportTokens:     []string{"next/router", "next/image", "next/link"},
		FileStructure:    []string{"next.config.js", "next.config.mjs", "pages/_app.tsx", "app/layout.tsx"},
		ContentPatterns:  []string{"getServerSideProps", "getStaticProps"},
		Layer:            types.LayerPresentation,
	},
	{
		Name: types.FrameworkNest, Language: types.LangTypeScript,
		DependencyTokens: []string{"@nestjs/core", "@nestjs/common"},
		ImportTokens:     []string{"@nestjs/common", "@nestjs/core"},
		FileStructure:    []string{"src/main.ts", "src/app.module.ts"},
		ContentPatterns:  []string{"@Controller(", "@Injectable(", "@Module("},
		Layer:            types.LayerBusinessLogic,
	},
	{
		Name: types.FrameworkExpress, Language: types.LangTypeScript,
		DependencyTokens: []string{"express"},
		ImportTokens:     []string{"express"},
		FileStructure:    []string{"src/app.ts", "src/server.ts"},
		ContentPatterns:  []string{"app.get(", "app.post(", "express()"},
		Layer:            types.LayerBusinessLogic,
	},
	{
		Name: types.FrameworkVue, Language: types.LangTypeScript,
		DependencyTokens: []string{"vue"},
		ImportTokens:     []string{"vue"},
		FileStructure:    []string{"src/App.vue", "vue.config.js"},
		ContentPatterns:  []string{"defineComponent(", "<template>"},
		Layer:            types.LayerPresentation,
	},
	{
		Name: types.FrameworkAngular, Language: types.LangTypeScript,
		DependencyTokens: []string{"@angular/core"},
		ImportTokens:     []string{"@angular/core", "@angular/common"},
		FileStructure:    []string{"angular.json", "src/app/app.module.ts"},
		ContentPatterns:  []string{"@Component(", "@NgModule("},
		Layer:            types.LayerPresentation,
	},
	{
		Name: types.FrameworkSpring, Language: types.LangJava,
		DependencyTokens: []string{"spring-boot-starter", "spring-boot"},
		ImportTokens:     []string{"org.springframework"},
		FileStructure:    []string{"src/main/resources/application.yml", "src/main/resources/application.properties"},
		ContentPatterns:  []string{"@RestController", "@SpringBootApplication", "@Service"},
		Layer:            types.LayerBusinessLogic,
	},
	{
		Name: types.FrameworkQuarkus, Language: types.LangJava,
		DependencyTokens: []string{"quarkus"},
		ImportTokens:     []string{"io.quarkus"},
		FileStructure:    []string{"src/main/resources/application.properties"},
		ContentPatterns:  []string{"@ApplicationScoped", "@Path("},
		Layer:            types.LayerBusinessLogic,
	},
	{
		Name: types.FrameworkFlask, Language: types.LangPython,
		DependencyTokens: []string{"flask", "Flask"},
		ImportTokens:     []string{"flask"},
		FileStructure:    []string{"app.py", "wsgi.py"},
		ContentPatterns:  []string{"Flask(__name__)", "@app.route("},
		Layer:            types.LayerBusinessLogic,
	},
	{
		Name: types.FrameworkDjango, Language: types.LangPython,
		DependencyTokens: []string{"django", "Django"},
		ImportTokens:     []string{"django"},
		FileStructure:    []string{"manage.py", "settings.py", "wsgi.py"},
		ContentPatterns:  []string{"django.db.models", "urlpatterns"},
		Layer:            types.LayerBusinessLogic,
	},
	{
		Name: types.FrameworkFastAPI, Language: types.LangPython,
		DependencyTokens: []string{"fastapi"},
		ImportTokens:     []string{"fastapi"},
		FileStructure:    []string{"main.py"},
		ContentPatterns:  []string{"FastAPI()", "@app.get(", "@router.get("},
		Layer:            types.LayerBusinessLogic,
	},
	{
		Name: types.FrameworkActix, Language: types.LangRust,
		DependencyTokens: []string{"actix-web"},
		ImportTokens:     []string{"actix_web"},
		FileStructure:    []string{"src/main.rs"},
		ContentPatterns:  []string{"HttpServer::new", "#[get(", "#[post("},
		Layer:            types.LayerBusinessLogic,
	},
	{
		Name: types.FrameworkAxum, Language: types.LangRust,
		DependencyTokens: []string{"axum"},
		ImportTokens:     []string{"axum"},
		FileStructure:    []string{"src/main.rs"},
		ContentPatterns:  []string{"axum::Router", "Router::new()"},
		Layer:            types.LayerBusinessLogic,
	},
	{
		Name: types.FrameworkWarp, Language: types.LangRust,
		DependencyTokens: []string{"warp"},
		ImportTokens:     []string{"warp"},
		FileStructure:    []string{"src/main.rs"},
		ContentPatterns:  []string{"warp::Filter", "warp::serve"},
		Layer:            types.LayerBusinessLogic,
	},
	{
		Name: types.FrameworkDanet, Language: types.LangTypeScript,
		DependencyTokens: []string{"danet"},
		ImportTokens:     []string{"@danet/core"},
		FileStructure:    []string{"deno.json"},
		ContentPatterns:  []string{"@Controller(", "DanetApplication"},
		Layer:            types.LayerBusinessLogic,
	},
	{
		Name: types.FrameworkFresh, Language: types.LangTypeScript,
		DependencyTokens: []string{"$fresh"},
		ImportTokens:     []string{"$fresh/server.ts"},
		FileStructure:    []string{"fresh.gen.ts", "deno.json"},
		ContentPatterns:  []string{"defineRoute(", "defineApp("},
		Layer:            types.LayerPresentation,
	},
	{
		Name: types.FrameworkOak, Language: types.LangTypeScript,
		DependencyTokens: []string{"oak"},
		ImportTokens:     []string{"https://deno.land/x/oak"},
		FileStructure:    []string{"deno.json"},
		ContentPatterns:  []string{"new Application()", "router.get("},
		Layer:            types.LayerBusinessLogic,
	},
}
