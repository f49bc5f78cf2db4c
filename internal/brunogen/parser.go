package brunogen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
)

// parseRoutes extracts API routes from RegisterRoutes in handlers.go
func (g *Generator) parseRoutes() error {
	handlersFile := filepath.Join(g.apiDir, "handlers.go")

	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, handlersFile, nil, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("failed to parse handlers.go: %w", err)
	}

	// Find the RegisterRoutes method
	ast.Inspect(node, func(n ast.Node) bool {
		funcDecl, ok := n.(*ast.FuncDecl)
		if !ok || funcDecl.Name.Name != "RegisterRoutes" {
			return true
		}

		// api.HandleFunc("/path", h.Handler).Methods("POST") is one route; the inner
		// HandleFunc call is not visited again once the chain has been consumed.
		ast.Inspect(funcDecl.Body, func(node ast.Node) bool {
			callExpr, ok := node.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := callExpr.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			switch sel.Sel.Name {
			case "Methods":
				innerCall, ok := sel.X.(*ast.CallExpr)
				if !ok || len(callExpr.Args) == 0 {
					return true
				}
				if innerSel, ok := innerCall.Fun.(*ast.SelectorExpr); ok && innerSel.Sel.Name == "HandleFunc" {
					g.extractRouteWithMethod(innerCall, callExpr)
					return false
				}
			case "HandleFunc":
				if len(callExpr.Args) >= 2 {
					g.extractRoute(callExpr)
				}
			}

			return true
		})

		return false
	})

	return nil
}

// extractRoute extracts route info from a HandleFunc call
func (g *Generator) extractRoute(call *ast.CallExpr) {
	if len(call.Args) < 2 {
		return
	}

	// Extract path (first argument)
	pathLit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || pathLit.Kind != token.STRING {
		return
	}
	path := strings.Trim(pathLit.Value, `"`)

	// Extract handler name (second argument)
	var handlerName string
	switch h := call.Args[1].(type) {
	case *ast.SelectorExpr:
		handlerName = h.Sel.Name
	case *ast.Ident:
		handlerName = h.Name
	}

	route := Route{
		Method:      inferMethodFromHandler(handlerName),
		Path:        path,
		Handler:     handlerName,
		Category:    extractCategory(path),
		PathParams:  extractPathParams(path),
		QueryParams: queryParamsFor(handlerName),
	}

	g.routes = append(g.routes, route)
}

// extractRouteWithMethod extracts route with explicit method
func (g *Generator) extractRouteWithMethod(handleFuncCall *ast.CallExpr, methodsCall *ast.CallExpr) {
	if len(handleFuncCall.Args) < 2 || len(methodsCall.Args) < 1 {
		return
	}

	// Extract path
	pathLit, ok := handleFuncCall.Args[0].(*ast.BasicLit)
	if !ok || pathLit.Kind != token.STRING {
		return
	}
	path := strings.Trim(pathLit.Value, `"`)

	// Extract handler name
	var handlerName string
	switch h := handleFuncCall.Args[1].(type) {
	case *ast.SelectorExpr:
		handlerName = h.Sel.Name
	case *ast.Ident:
		handlerName = h.Name
	}

	// Extract method
	methodLit, ok := methodsCall.Args[0].(*ast.BasicLit)
	if !ok || methodLit.Kind != token.STRING {
		return
	}
	method := strings.Trim(methodLit.Value, `"`)

	route := Route{
		Method:      method,
		Path:        path,
		Handler:     handlerName,
		Category:    extractCategory(path),
		PathParams:  extractPathParams(path),
		QueryParams: queryParamsFor(handlerName),
	}

	g.routes = append(g.routes, route)
}

// extractPathParams finds path parameters in a route path
func extractPathParams(path string) []string {
	matches := muxParam.FindAllStringSubmatch(path, -1)
	var params []string
	for _, match := range matches {
		if len(match) > 1 {
			// Extract just the parameter name from patterns like {id:[0-9]+}
			paramName := strings.Split(match[1], ":")[0]
			params = append(params, paramName)
		}
	}
	return params
}

// extractCategory picks the collection folder from the first path segment
func extractCategory(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch parts[0] {
	case "transfers", "clipboard", "files", "remotes", "history":
		return parts[0]
	case "health", "status":
		return "system"
	default:
		return "misc"
	}
}

// queryParamsFor lists the optional query parameters a handler reads
func queryParamsFor(handlerName string) []string {
	switch handlerName {
	case "GetTransfers":
		return []string{"state"}
	case "ListFiles":
		return []string{"path"}
	case "GetHistory":
		return []string{"success", "limit", "offset"}
	default:
		return nil
	}
}

// inferMethodFromHandler guesses the HTTP method when a route has no Methods call
func inferMethodFromHandler(handlerName string) string {
	lower := strings.ToLower(handlerName)
	switch {
	case strings.HasPrefix(lower, "create"),
		strings.HasSuffix(lower, "toclipboard"),
		lower == "paste", lower == "mkdir",
		strings.HasPrefix(lower, "rename"):
		return "POST"
	case strings.HasPrefix(lower, "delete"):
		return "DELETE"
	case strings.HasPrefix(lower, "update"):
		return "PUT"
	default:
		return "GET"
	}
}
