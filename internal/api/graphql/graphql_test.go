package graphql_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/api/graphql"
	"github.com/feral-file/ff-raffle/internal/api/middleware"
	"github.com/feral-file/ff-raffle/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-raffle/internal/api/shared/errors"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const adminKey = "admin-key"

type testGraphQLMocks struct {
	ctrl     *gomock.Controller
	executor *mocks.MockAPIExecutor
	router   *gin.Engine
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Path       []interface{}          `json:"path"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func setupTestGraphQL(t *testing.T) *testGraphQLMocks {
	ctrl := gomock.NewController(t)
	exec := mocks.NewMockAPIExecutor(ctrl)

	handler, err := graphql.NewHandler(exec, middleware.AuthConfig{APIKeys: []string{adminKey}}, adapter.NewJSON())
	require.NoError(t, err)

	router := gin.New()
	graphql.SetupRoutes(router, handler, nil)

	return &testGraphQLMocks{ctrl: ctrl, executor: exec, router: router}
}

func (tm *testGraphQLMocks) post(t *testing.T, query string, variables map[string]interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"query": query, "variables": variables})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) gqlResponse {
	t.Helper()
	var resp gqlResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGraphQL_RafflesKeepsSelectionOrder(t *testing.T) {
	tm := setupTestGraphQL(t)

	tm.executor.EXPECT().ListRaffles(gomock.Any()).Return(&dto.RaffleListResponse{
		Raffles: []dto.RaffleSummary{
			{ID: "r1", Type: "DAILY", Status: "ACTIVE", TotalTickets: 3},
			{ID: "r2", Type: "DAILY", Status: "PENDING"},
		},
	}, nil)

	w := tm.post(t, `{ raffles { status __typename id total_tickets } }`, nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		`{"data":{"raffles":[`+
			`{"status":"ACTIVE","__typename":"RaffleSummary","id":"r1","total_tickets":3},`+
			`{"status":"PENDING","__typename":"RaffleSummary","id":"r2","total_tickets":0}]}}`,
		w.Body.String())
}

func TestGraphQL_RaffleWithAliasFragmentAndSkip(t *testing.T) {
	tm := setupTestGraphQL(t)

	token := "0x00000000000000000000000000000000000000aa"
	tm.executor.EXPECT().GetRaffle(gomock.Any(), "r1").Return(&dto.RaffleResponse{
		ID:           "r1",
		Type:         "DAILY",
		Status:       "ACTIVE",
		TokenAddress: &token,
		Stats:        dto.RaffleStats{TotalTickets: 6, TotalParticipants: 2},
	}, nil)

	query := `
		query Detail($id: ID!, $hide: Boolean!) {
			current: raffle(id: $id) {
				...core
				stats { total_tickets }
				token_address @skip(if: $hide)
				draw { winners { rank } runners_up }
				stats { total_participants }
			}
		}
		fragment core on Raffle { id status next_raffle_id }`

	w := tm.post(t, query, map[string]interface{}{"id": "r1", "hide": true}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		`{"data":{"current":{"id":"r1","status":"ACTIVE","next_raffle_id":null,`+
			`"stats":{"total_tickets":6,"total_participants":2},`+
			`"draw":{"winners":[],"runners_up":[]}}}}`,
		w.Body.String())
}

func TestGraphQL_RaffleNotFound(t *testing.T) {
	tm := setupTestGraphQL(t)

	tm.executor.EXPECT().GetRaffle(gomock.Any(), "missing").
		Return(nil, apierrors.NewNotFoundError("Raffle not found", "raffle missing"))

	w := tm.post(t, `{ raffle(id: "missing") { id } }`, nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.JSONEq(t, `{"raffle":null}`, string(resp.Data))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Not found", resp.Errors[0].Message)
	assert.Equal(t, []interface{}{"raffle"}, resp.Errors[0].Path)
	assert.Equal(t, "not_found", resp.Errors[0].Extensions["code"])
	assert.Equal(t, "Raffle not found", resp.Errors[0].Extensions["message"])
}

func TestGraphQL_VerificationHasNoSecrets(t *testing.T) {
	tm := setupTestGraphQL(t)

	w := tm.post(t, `{ verification(raffle_id: "r1") { commit_hash random_value } }`, nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "null", string(resp.Data))
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Message, "random_value")
}

func TestGraphQL_InternalErrorIsMasked(t *testing.T) {
	tm := setupTestGraphQL(t)

	tm.executor.EXPECT().GetWinners(gomock.Any(), "r1").Return(nil, errors.New("dial tcp 10.0.0.3:5432: refused"))

	w := tm.post(t, `{ winners(raffle_id: "r1") { raffle_id } }`, nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
	resp := decode(t, w)
	assert.JSONEq(t, `{"winners":null}`, string(resp.Data))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Internal server error", resp.Errors[0].Message)
	assert.Equal(t, "internal_error", resp.Errors[0].Extensions["code"])
}

func TestGraphQL_NonNullRootErrorNullsData(t *testing.T) {
	tm := setupTestGraphQL(t)

	tm.executor.EXPECT().ListRaffles(gomock.Any()).
		Return(nil, apierrors.NewServiceUnavailableError("Raffles are unavailable"))

	w := tm.post(t, `{ raffles { id } }`, nil, nil)

	resp := decode(t, w)
	assert.Equal(t, "null", string(resp.Data))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "service_unavailable", resp.Errors[0].Extensions["code"])
	assert.Equal(t, []interface{}{"raffles"}, resp.Errors[0].Path)
}

func TestGraphQL_Mutation(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		tm := setupTestGraphQL(t)

		w := tm.post(t, `mutation { triggerReconcile(raffle_type: DAILY) { workflow_id } }`, nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		assert.Equal(t, "null", string(resp.Data))
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "unauthorized", resp.Errors[0].Extensions["code"])
	})

	t.Run("rejects an unknown key", func(t *testing.T) {
		tm := setupTestGraphQL(t)

		w := tm.post(t, `mutation { reissueJob(raffle_id: "r1", kind: "end") { key } }`, nil,
			map[string]string{"Authorization": "ApiKey wrong"})

		resp := decode(t, w)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "unauthorized", resp.Errors[0].Extensions["code"])
	})

	t.Run("trigger reconcile", func(t *testing.T) {
		tm := setupTestGraphQL(t)

		tm.executor.EXPECT().TriggerReconcile(gomock.Any(), "DAILY").Return(&dto.TriggerReconcileResponse{
			RaffleType: "DAILY",
			WorkflowID: "raffle-reconcile-DAILY",
		}, nil)

		w := tm.post(t, `mutation Reconcile($type: RaffleType!) { triggerReconcile(raffle_type: $type) { raffle_type workflow_id } }`,
			map[string]interface{}{"type": "DAILY"},
			map[string]string{"Authorization": "ApiKey " + adminKey})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t,
			`{"data":{"triggerReconcile":{"raffle_type":"DAILY","workflow_id":"raffle-reconcile-DAILY"}}}`,
			w.Body.String())
	})

	t.Run("reissue job conflict", func(t *testing.T) {
		tm := setupTestGraphQL(t)

		tm.executor.EXPECT().ReissueJob(gomock.Any(), "r1", "reveal").
			Return(nil, apierrors.NewConflictError("Job cannot be reissued", "raffle is ACTIVE"))

		w := tm.post(t, `mutation { reissueJob(raffle_id: "r1", kind: "reveal") { key } }`, nil,
			map[string]string{"Authorization": "ApiKey " + adminKey})

		resp := decode(t, w)
		assert.Equal(t, "null", string(resp.Data))
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "Job cannot be reissued", resp.Errors[0].Message)
		assert.Equal(t, "conflict", resp.Errors[0].Extensions["code"])
		assert.Equal(t, "raffle is ACTIVE", resp.Errors[0].Extensions["details"])
	})
}

func TestGraphQL_BadRequests(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		tm := setupTestGraphQL(t)

		w := tm.post(t, `{ raffles { id `, nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		assert.NotEmpty(t, resp.Errors)
	})

	t.Run("missing variable", func(t *testing.T) {
		tm := setupTestGraphQL(t)

		w := tm.post(t, `query ($id: ID!) { raffle(id: $id) { id } }`, nil, nil)

		resp := decode(t, w)
		assert.NotEmpty(t, resp.Errors)
		assert.Equal(t, "null", string(resp.Data))
	})

	t.Run("malformed body", func(t *testing.T) {
		tm := setupTestGraphQL(t)

		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		tm.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
