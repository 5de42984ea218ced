package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/donation-ledger/pkg/api"
	"github.com/chris/donation-ledger/pkg/ledger"
	ledgermocks "github.com/chris/donation-ledger/pkg/ledger/mocks"
	"github.com/chris/donation-ledger/pkg/middleware"
	"github.com/chris/donation-ledger/pkg/models"
	"github.com/chris/donation-ledger/pkg/storage/mocks"
)

func newRouter(l ledger.Ledger, store *mocks.ApiStore) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Actor)
	return Mount(router, NewApiHandler(l, store))
}

func TestRouting(t *testing.T) {
	actor := models.Actor{Id: "admin-1", Name: "Asha", Role: "Admin"}

	t.Run("Allocate Binds Path And Actor", func(t *testing.T) {
		l := ledgermocks.NewLedger(t)
		l.On("Allocate", mock.Anything, "don-1", []ledger.Target{{LeadId: "lead-1", Amount: 100}}, actor).
			Return(&models.Donation{Id: "don-1", Amount: 100, AllocatedTotal: 100, Status: models.ALLOCATED}, nil)
		router := newRouter(l, mocks.NewApiStore(t))

		body, _ := json.Marshal(api.AllocateRequest{Targets: []api.AllocationTarget{{LeadId: "lead-1", Amount: 100}}})
		req := httptest.NewRequest(http.MethodPost, "/donations/don-1/allocations", bytes.NewReader(body))
		req.Header.Set(middleware.HeaderUserId, actor.Id)
		req.Header.Set(middleware.HeaderUserName, actor.Name)
		req.Header.Set(middleware.HeaderUserRole, actor.Role)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Remove Allocation Binds Both Ids", func(t *testing.T) {
		l := ledgermocks.NewLedger(t)
		l.On("RemoveAllocation", mock.Anything, "don-1", "alloc-9", models.Actor{Id: "admin-1"}).
			Return(&models.Donation{Id: "don-1", Status: models.VERIFIED}, nil)
		router := newRouter(l, mocks.NewApiStore(t))

		req := httptest.NewRequest(http.MethodDelete, "/donations/don-1/allocations/alloc-9", nil)
		req.Header.Set(middleware.HeaderUserId, "admin-1")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Mutation Requires Actor", func(t *testing.T) {
		router := newRouter(ledgermocks.NewLedger(t), mocks.NewApiStore(t))

		req := httptest.NewRequest(http.MethodPost, "/donations/don-1/verify", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Query Parameters", func(t *testing.T) {
		store := mocks.NewApiStore(t)
		store.On("ListActivity", mock.Anything, int32(7)).Return([]models.ActivityLogEntry{}, nil)
		store.On("ListDonations", mock.Anything, models.PENDING_VERIFICATION).Return([]models.Donation{}, nil)
		router := newRouter(ledgermocks.NewLedger(t), store)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/activity?limit=7", nil))
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/donations?status=Pending%20verification", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Malformed Query Parameter", func(t *testing.T) {
		router := newRouter(ledgermocks.NewLedger(t), mocks.NewApiStore(t))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/activity?limit=many", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "limit")
	})

	t.Run("Malformed Mutation Parameter Is A Result", func(t *testing.T) {
		router := newRouter(ledgermocks.NewLedger(t), mocks.NewApiStore(t))

		req := httptest.NewRequest(http.MethodPost, "/reconcile?dryRun=abc", nil)
		req.Header.Set(middleware.HeaderUserId, "ops")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		var result ledger.Result
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "dryRun")
	})

	t.Run("Reconcile Dry Run", func(t *testing.T) {
		l := ledgermocks.NewLedger(t)
		l.On("Reconcile", mock.Anything, true, models.Actor{Id: "ops"}).Return([]ledger.Discrepancy{}, nil)
		router := newRouter(l, mocks.NewApiStore(t))

		req := httptest.NewRequest(http.MethodPost, "/reconcile?dryRun=true", nil)
		req.Header.Set(middleware.HeaderUserId, "ops")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var out api.ReconcileResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.True(t, out.DryRun)
		assert.Empty(t, out.Discrepancies)
	})
}
