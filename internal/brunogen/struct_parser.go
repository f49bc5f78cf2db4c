package brunogen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
)

// requestBodies maps handlers to the request struct they decode
var requestBodies = map[string]string{
	"CreateTransfer":  "CreateTransferRequest",
	"CopyToClipboard": "ClipboardRequest",
	"CutToClipboard":  "ClipboardRequest",
	"Paste":           "PasteRequest",
	"Mkdir":           "MkdirRequest",
	"DeleteFiles":     "DeleteFilesRequest",
	"RenameFile":      "RenameRequest",
}

// parseStructs extracts request structs from the API files
func (g *Generator) parseStructs() error {
	files, err := filepath.Glob(filepath.Join(g.apiDir, "*.go"))
	if err != nil {
		return err
	}

	types := make(map[string]*ast.StructType)
	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		if err := collectStructs(file, types); err != nil {
			return err
		}
	}

	for name, structType := range types {
		if strings.HasSuffix(name, "Request") {
			g.structs[name] = g.parseStruct(name, structType, types)
		}
	}

	g.mapRoutesToStructs()

	return nil
}

// collectStructs records every struct type declared in a file
func collectStructs(filePath string, types map[string]*ast.StructType) error {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filePath, nil, parser.SkipObjectResolution)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	for _, decl := range node.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if structType, ok := typeSpec.Type.(*ast.StructType); ok {
				types[typeSpec.Name.Name] = structType
			}
		}
	}

	return nil
}

// parseStruct extracts field information from a struct, inlining embedded structs
// declared in the same package
func (g *Generator) parseStruct(name string, structType *ast.StructType, types map[string]*ast.StructType) StructInfo {
	info := StructInfo{
		Name:   name,
		Fields: []FieldInfo{},
	}

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			if ident, ok := field.Type.(*ast.Ident); ok {
				if embedded, ok := types[ident.Name]; ok {
					info.Fields = append(info.Fields, g.parseStruct(ident.Name, embedded, types).Fields...)
				}
			}
			continue
		}

		fieldName := field.Names[0].Name
		typeName := g.typeToString(field.Type)
		jsonTag := g.extractJSONTag(field.Tag)

		info.Fields = append(info.Fields, FieldInfo{
			Name:     fieldName,
			Type:     typeName,
			JSONTag:  jsonTag,
			Required: !strings.Contains(g.getTagString(field.Tag), ",omitempty"),
			Example:  g.getExampleForField(jsonTag, typeName),
		})
	}

	return info
}

// typeToString converts an AST type expression to a string
func (g *Generator) typeToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.ArrayType:
		return "[]" + g.typeToString(t.Elt)
	case *ast.MapType:
		return "map[" + g.typeToString(t.Key) + "]" + g.typeToString(t.Value)
	case *ast.SelectorExpr:
		// models.File -> File
		return t.Sel.Name
	case *ast.StarExpr:
		return "*" + g.typeToString(t.X)
	default:
		return "interface{}"
	}
}

// extractJSONTag extracts the JSON tag name from a field tag
func (g *Generator) extractJSONTag(tag *ast.BasicLit) string {
	if tag == nil {
		return ""
	}

	tagStr := g.getTagString(tag)
	jsonTagStart := strings.Index(tagStr, `json:"`)
	if jsonTagStart == -1 {
		return ""
	}

	jsonTagStart += 6 // len(`json:"`)
	jsonTagEnd := strings.Index(tagStr[jsonTagStart:], `"`)
	if jsonTagEnd == -1 {
		return ""
	}

	parts := strings.Split(tagStr[jsonTagStart:jsonTagStart+jsonTagEnd], ",")
	if parts[0] == "-" {
		return ""
	}
	return parts[0]
}

// getTagString returns the string value of a tag
func (g *Generator) getTagString(tag *ast.BasicLit) string {
	if tag == nil {
		return ""
	}
	return strings.Trim(tag.Value, "`")
}

// getExampleForField picks an example value from the JSON name, falling back to the type
func (g *Generator) getExampleForField(jsonTag, typeName string) interface{} {
	switch jsonTag {
	case "source":
		if typeName == "string" {
			return "gdrive:movies/example.mkv"
		}
	case "destination":
		return "/data/downloads"
	case "path":
		return "/data/downloads/example"
	case "new_name":
		return "renamed.mkv"
	case "operation":
		return "copy"
	case "size":
		return 1073741824 // 1GB
	case "files":
		switch typeName {
		case "[]File":
			return rawJSON(`[
    {
      "location": {"remote": "gdrive"},
      "path": "movies/example.mkv",
      "name": "example.mkv",
      "size": 1073741824,
      "is_dir": false
    }
  ]`)
		case "[]FileRef":
			return rawJSON(`[
    {"path": "gdrive:movies/example.mkv"},
    {"path": "/data/downloads/old", "is_dir": true}
  ]`)
		}
	}

	return defaultExample(typeName)
}

// mapRoutesToStructs links routes to their request body structs
func (g *Generator) mapRoutesToStructs() {
	for i := range g.routes {
		route := &g.routes[i]

		structName, ok := requestBodies[route.Handler]
		if !ok {
			continue
		}
		if info, ok := g.structs[structName]; ok {
			route.RequestBody = &info
		}
	}
}
