package graphql

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/validator"
	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/api/middleware"
	apierrors "github.com/feral-file/ff-raffle/internal/api/shared/errors"
	"github.com/feral-file/ff-raffle/internal/api/shared/executor"
	"github.com/feral-file/ff-raffle/internal/logger"
)

//go:embed schema.graphql
var schemaSource string

// Handler defines the interface for GraphQL API handlers
type Handler interface {
	// HandleGraphQL handles GraphQL queries and mutations
	// POST /graphql
	HandleGraphQL(c *gin.Context)
}

// request is a GraphQL-over-HTTP POST body
type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type response struct {
	Errors gqlerror.List `json:"errors,omitempty"`
	Data   interface{}   `json:"data"`
}

type gqlHandler struct {
	schema        *ast.Schema
	resolver      *resolver
	authenticator *middleware.Authenticator
	json          adapter.JSON
}

// NewHandler loads the raffle schema and serves it over the shared executor
func NewHandler(exec executor.Executor, authCfg middleware.AuthConfig, jsonAdapter adapter.JSON) (Handler, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSource})
	if err != nil {
		return nil, fmt.Errorf("failed to load graphql schema: %w", err)
	}

	authenticator, err := middleware.NewAuthenticator(authCfg)
	if err != nil {
		return nil, err
	}

	return &gqlHandler{
		schema:        schema,
		resolver:      &resolver{executor: exec},
		authenticator: authenticator,
		json:          jsonAdapter,
	}, nil
}

// HandleGraphQL processes GraphQL queries and mutations
func (h *gqlHandler) HandleGraphQL(c *gin.Context) {
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Errors: gqlerror.List{gqlerror.Errorf("invalid request body: %s", err)}})
		return
	}

	c.JSON(http.StatusOK, h.execute(c.Request.Context(), req, c.GetHeader("Authorization")))
}

func (h *gqlHandler) execute(ctx context.Context, req request, authHeader string) response {
	if strings.TrimSpace(req.Query) == "" {
		return response{Errors: gqlerror.List{gqlerror.Errorf("query is required")}}
	}

	doc, errs := gqlparser.LoadQueryWithRules(h.schema, req.Query, nil)
	if len(errs) > 0 {
		return response{Errors: errs}
	}

	op := doc.Operations.ForName(req.OperationName)
	if op == nil {
		return response{Errors: gqlerror.List{gqlerror.Errorf("operation %q not found", req.OperationName)}}
	}

	vars, err := validator.VariableValues(h.schema, op, req.Variables)
	if err != nil {
		var gqlErr *gqlerror.Error
		if !errors.As(err, &gqlErr) {
			gqlErr = gqlerror.Wrap(err)
		}
		return response{Errors: gqlerror.List{gqlErr}}
	}

	if op.Operation == ast.Mutation {
		if err := h.authenticate(ctx, op, authHeader); err != nil {
			return response{Errors: gqlerror.List{ErrorPresenter(ctx, err)}}
		}
	}

	x := &execution{
		schema: h.schema,
		doc:    doc,
		vars:   vars,
		json:   h.json,
	}
	data := x.run(ctx, h.resolver, op)

	return response{Errors: x.errors, Data: data}
}

// authenticate guards every mutation with the admin credentials of the REST routes
func (h *gqlHandler) authenticate(ctx context.Context, op *ast.OperationDefinition, authHeader string) error {
	result, err := h.authenticator.Authenticate(authHeader)
	if err != nil {
		logger.WarnCtx(ctx, "GraphQL mutation authentication failed",
			zap.Error(err),
			zap.String("operation", op.Name))
		return apierrors.NewUnauthorizedError("Authentication required for this mutation", err.Error())
	}

	logger.DebugCtx(ctx, "GraphQL mutation authenticated",
		zap.String("operation", op.Name),
		zap.String("auth_type", result.AuthType),
		zap.String("subject", result.Subject))
	return nil
}

// SetupRoutes configures the GraphQL route. A nil rateLimit leaves it unlimited.
func SetupRoutes(router *gin.Engine, handler Handler, rateLimit gin.HandlerFunc) {
	handlers := []gin.HandlerFunc{handler.HandleGraphQL}
	if rateLimit != nil {
		handlers = append([]gin.HandlerFunc{rateLimit}, handlers...)
	}
	router.POST("/graphql", handlers...)
}
