package book

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/graphql-go/graphql"
	jsoniter "github.com/json-iterator/go"

	"bookquery/internal/httpx"
)

const (
	argAuthorIDs = "authorIds"
	argSearch    = "search"
	argLimit     = "limit"
)

var (
	errGraphQLQueryFailed   = errors.New("books could not be retrieved")
	errGraphQLDataIntegrity = errors.New("stored book data is inconsistent")
)

// NewGraphQLSchema builds the schema exposing
//
//	books(authorIds: [Int!], search: String, limit: Int): [Book!]!
func NewGraphQLSchema(service *Service) (graphql.Schema, error) {
	authorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Author",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	bookType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Book",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"title":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"author": &graphql.Field{Type: graphql.NewNonNull(authorType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"books": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(bookType))),
				Description: "Books with their authors, optionally filtered by author ids and a title substring",
				Args: graphql.FieldConfigArgument{
					argAuthorIDs: &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.Int))},
					argSearch:    &graphql.ArgumentConfig{Type: graphql.String},
					argLimit:     &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: booksResolver(service),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

func booksResolver(service *Service) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		books, err := service.Books(p.Context, filterFromArgs(p.Args))
		if err != nil {
			if errors.Is(err, ErrMalformedRow) {
				return nil, errGraphQLDataIntegrity
			}
			return nil, errGraphQLQueryFailed
		}
		return books, nil
	}
}

func filterFromArgs(args map[string]interface{}) Filter {
	var f Filter

	if ids, ok := args[argAuthorIDs].([]interface{}); ok {
		for _, id := range ids {
			if v, ok := id.(int); ok {
				f.AuthorIDs = append(f.AuthorIDs, int64(v))
			}
		}
	}
	if search, ok := args[argSearch].(string); ok {
		f.Search = search
	}
	if limit, ok := args[argLimit].(int); ok {
		f.Limit = limit
	}

	return f
}

type graphQLRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// GraphQLHandler serves GraphQL requests over GET (?query=) and POST (JSON body).
type GraphQLHandler struct {
	schema graphql.Schema
}

func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		httpx.JSONError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	req, err := decodeGraphQLRequest(r)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	if req.Query == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "query is required", nil)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})

	httpx.JSON(w, http.StatusOK, result)
}

func decodeGraphQLRequest(r *http.Request) (graphQLRequest, error) {
	var req graphQLRequest

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		req.Query = query.Get("query")
		req.OperationName = query.Get("operationName")
		if vars := query.Get("variables"); vars != "" {
			if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(vars, &req.Variables); err != nil {
				return req, fmt.Errorf("invalid variables: %w", err)
			}
		}
	default:
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("invalid request body: %w", err)
		}
	}

	return req, nil
}
