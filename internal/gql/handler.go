// Package gql exposes the directory over GraphQL.
package gql

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/handler"

	"github.com/mcoot/staffdir/internal/middleware"
)

// NewHandler serves the schema over HTTP (GET and POST, JSON or
// application/graphql bodies). The caller's identity must already be in the
// request context; see api/middleware.OptionalAuth.
func NewHandler(schema *graphql.Schema, logger *slog.Logger) http.Handler {
	h := handler.New(&handler.Config{
		Schema:     schema,
		Pretty:     true,
		Playground: true,
		ResultCallbackFn: func(ctx context.Context, params *graphql.Params, result *graphql.Result, _ []byte) {
			logUntypedErrors(ctx, logger, params.OperationName, result.Errors)
		},
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if vars := readVariables(r); vars != nil {
			r = r.WithContext(WithRawVariables(r.Context(), vars))
		}
		h.ServeHTTP(w, r)
	})
}

type rawVariablesKey struct{}

// WithRawVariables records the variables exactly as the client sent them.
// Coercion drops variables and input fields set to null, so resolvers that
// need to tell null from absent read them from here.
func WithRawVariables(ctx context.Context, vars map[string]interface{}) context.Context {
	return context.WithValue(ctx, rawVariablesKey{}, vars)
}

func rawVariables(ctx context.Context) map[string]interface{} {
	vars, _ := ctx.Value(rawVariablesKey{}).(map[string]interface{})
	return vars
}

// readVariables extracts the variables of a query-string or JSON request,
// leaving the body readable for the GraphQL handler
func readVariables(r *http.Request) map[string]interface{} {
	var vars map[string]interface{}

	contentType, _, _ := strings.Cut(r.Header.Get("Content-Type"), ";")

	switch {
	case r.Method != http.MethodPost:
		encoded := r.URL.Query().Get("variables")
		if encoded == "" || json.Unmarshal([]byte(encoded), &vars) != nil {
			return nil
		}
	case contentType != handler.ContentTypeGraphQL && contentType != handler.ContentTypeFormURLEncoded:
		body, err := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))
		if err != nil {
			return nil
		}
		var req struct {
			Variables map[string]interface{} `json:"variables"`
		}
		if json.Unmarshal(body, &req) != nil {
			return nil
		}
		vars = req.Variables
	}
	return vars
}

// logUntypedErrors records errors without an extension code; those are
// unexpected failures rather than client mistakes
func logUntypedErrors(ctx context.Context, logger *slog.Logger, operation string, errs []gqlerrors.FormattedError) {
	for _, e := range errs {
		if _, typed := e.Extensions["code"]; typed {
			continue
		}
		logger.Warn("graphql error",
			slog.String("request_id", middleware.GetRequestID(ctx)),
			slog.String("operation", operation),
			slog.String("error", e.Message),
		)
	}
}
