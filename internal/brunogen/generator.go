package brunogen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"
)

// matches {id} and {id:[0-9]+} in mux paths
var muxParam = regexp.MustCompile(`\{([^}:]+)(:[^}]*)?\}`)

// Generator writes a Bruno collection describing the rcfm HTTP API
type Generator struct {
	outputDir string
	baseURL   string
	apiDir    string
	routes    []Route
	structs   map[string]StructInfo
}

// Route is one endpoint registered in RegisterRoutes
type Route struct {
	Method      string
	Path        string
	Handler     string
	Category    string
	PathParams  []string
	QueryParams []string
	RequestBody *StructInfo
}

// StructInfo is a request struct decoded by a handler
type StructInfo struct {
	Name   string
	Fields []FieldInfo
}

type FieldInfo struct {
	Name     string
	Type     string
	JSONTag  string
	Required bool
	Example  interface{}
}

// rawJSON is an example written into the body as is
type rawJSON string

func NewGenerator(outputDir, baseURL, apiDir string) *Generator {
	return &Generator{
		outputDir: outputDir,
		baseURL:   baseURL,
		apiDir:    apiDir,
		structs:   make(map[string]StructInfo),
	}
}

// Generate parses the API package and writes one .bru file per route, grouped by category
func (g *Generator) Generate() error {
	if err := g.parseRoutes(); err != nil {
		return fmt.Errorf("failed to parse routes: %w", err)
	}
	if err := g.parseStructs(); err != nil {
		return fmt.Errorf("failed to parse structs: %w", err)
	}

	if err := writeFile(g.outputDir, "bruno.json", brunoJSON); err != nil {
		return fmt.Errorf("failed to write collection: %w", err)
	}
	if err := writeFile(g.outputDir, "collection.bru", collectionBru); err != nil {
		return fmt.Errorf("failed to write collection: %w", err)
	}

	for category, routes := range g.byCategory() {
		if err := g.writeCategory(category, routes); err != nil {
			return fmt.Errorf("failed to write %s requests: %w", category, err)
		}
	}

	return nil
}

// Routes returns the routes found by the last Generate
func (g *Generator) Routes() []Route {
	return g.routes
}

func (g *Generator) byCategory() map[string][]Route {
	grouped := make(map[string][]Route)
	for _, route := range g.routes {
		grouped[route.Category] = append(grouped[route.Category], route)
	}
	return grouped
}

func (g *Generator) writeCategory(category string, routes []Route) error {
	dir := filepath.Join(g.outputDir, category)

	var folder strings.Builder
	if err := folderTemplate.Execute(&folder, category); err != nil {
		return err
	}
	if err := writeFile(dir, "folder.bru", folder.String()); err != nil {
		return err
	}

	for i, route := range routes {
		var request strings.Builder
		if err := requestTemplate.Execute(&request, g.requestData(route, i+1)); err != nil {
			return fmt.Errorf("failed to render %s: %w", route.Handler, err)
		}
		if err := writeFile(dir, route.Handler+".bru", request.String()); err != nil {
			return err
		}
	}

	return nil
}

type requestData struct {
	Name        string
	Seq         int
	Method      string
	URL         string
	PathParams  map[string]string
	QueryParams []string
	Body        string
}

func (g *Generator) requestData(route Route, seq int) requestData {
	data := requestData{
		Name:        route.Handler,
		Seq:         seq,
		Method:      strings.ToLower(route.Method),
		URL:         g.baseURL + "/api/v1" + muxParam.ReplaceAllString(route.Path, ":$1"),
		QueryParams: route.QueryParams,
	}

	if len(route.PathParams) > 0 {
		data.PathParams = make(map[string]string, len(route.PathParams))
		for _, param := range route.PathParams {
			data.PathParams[param] = pathParamExample(param)
		}
	}
	if route.RequestBody != nil {
		data.Body = jsonExample(route.RequestBody)
	}

	return data
}

// pathParamExample fills path parameters with something the API accepts
func pathParamExample(param string) string {
	if param == "name" {
		return "gdrive"
	}
	return "1"
}

// jsonExample renders the request struct as a JSON object in field order
func jsonExample(info *StructInfo) string {
	var fields []string
	for _, field := range info.Fields {
		if field.JSONTag == "" {
			continue
		}
		fields = append(fields, fmt.Sprintf("    %q: %s", field.JSONTag, jsonValue(field.Example)))
	}
	if len(fields) == 0 {
		return "  {}"
	}
	return "  {\n" + strings.Join(fields, ",\n") + "\n  }"
}

func jsonValue(example interface{}) string {
	if raw, ok := example.(rawJSON); ok {
		return string(raw)
	}
	encoded, err := json.Marshal(example)
	if err != nil {
		return `""`
	}
	return string(encoded)
}

// defaultExample is the zero value shown for fields without a named example
func defaultExample(typeName string) interface{} {
	switch {
	case typeName == "bool":
		return false
	case typeName == "int64", typeName == "*int64", typeName == "int":
		return 0
	case strings.HasPrefix(typeName, "[]"):
		return rawJSON("[]")
	default:
		return ""
	}
}

func writeFile(dir, name, content string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const brunoJSON = `{
  "version": "1",
  "name": "rcfm",
  "type": "collection",
  "ignore": ["node_modules", ".git"]
}
`

const collectionBru = `headers {
  Content-Type: application/json
}

auth {
  mode: none
}
`

var folderTemplate = template.Must(template.New("folder").Parse(`meta {
  name: {{.}}
  seq: 1
}

auth {
  mode: inherit
}
`))

var requestTemplate = template.Must(template.New("request").Funcs(template.FuncMap{
	"sortedKeys": sortedKeys,
}).Parse(`meta {
  name: {{.Name}}
  type: http
  seq: {{.Seq}}
}

{{.Method}} {
  url: {{.URL}}
  body: {{if .Body}}json{{else}}none{{end}}
  auth: inherit
}
{{if .PathParams}}
params:path {
{{range $param := sortedKeys .PathParams}}  {{$param}}: {{index $.PathParams $param}}
{{end}}}
{{end}}{{if .QueryParams}}
params:query {
{{range .QueryParams}}  ~{{.}}: 
{{end}}}
{{end}}{{if .Body}}
body:json {
{{.Body}}
}
{{end}}
settings {
  encodeUrl: true
}
`))
