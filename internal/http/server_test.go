package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sharkhome/internal/core"
	"sharkhome/internal/remote"
	"sharkhome/internal/services"
	"sharkhome/internal/storage"
	"sharkhome/internal/vocab"
)

type stubStore struct {
	state storage.State
	cfg   core.RemoteConfig
}

func (m *stubStore) Load(context.Context) (storage.State, error) { return m.state, nil }

func (m *stubStore) Save(_ context.Context, s storage.State) error {
	m.state = s
	return nil
}

func (m *stubStore) LoadRemoteConfig(context.Context) (core.RemoteConfig, error) {
	return m.cfg, nil
}

func (m *stubStore) SaveRemoteConfig(_ context.Context, cfg core.RemoteConfig) error {
	m.cfg = cfg
	return nil
}

func (m *stubStore) Close() error { return nil }

type stubSync struct {
	endpoint string
	token    string
}

func (s *stubSync) Configure(endpoint, token string) {
	s.endpoint = endpoint
	s.token = token
}

func (s *stubSync) Status() remote.Status { return remote.StatusIdle }

func newTestServer() (*Server, *stubStore, *stubSync) {
	store := &stubStore{}
	sync := &stubSync{}
	v := vocab.New(nil)
	shopping := services.NewShopping(store, v, services.NopPusher{})
	ledger := services.NewLedger(store, services.NopPusher{})
	recipes := services.NewRecipes(store)
	return NewServer(":0", shopping, ledger, recipes, v, store, sync), store, sync
}

func doJSON(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, req)
	return rr
}

func TestShoppingEndpoints(t *testing.T) {
	s, store, _ := newTestServer()

	rr := doJSON(t, s, http.MethodPost, "/api/shopping", `{"text":"mlijeko, kruh i jaja"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body %s", rr.Code, rr.Body.String())
	}
	var added []core.ShoppingItem
	if err := json.Unmarshal(rr.Body.Bytes(), &added); err != nil {
		t.Fatalf("decode added: %v", err)
	}
	if len(added) != 3 {
		t.Fatalf("added = %+v", added)
	}

	rr = doJSON(t, s, http.MethodGet, "/api/shopping", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}
	var listed []core.ShoppingItem
	if err := json.Unmarshal(rr.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("listed = %+v", listed)
	}

	rr = doJSON(t, s, http.MethodPost, "/api/shopping/"+string(listed[0].ID)+"/toggle", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("toggle status = %d", rr.Code)
	}
	if !store.state.ShoppingList[0].Completed {
		t.Error("toggle did not mark the item completed")
	}

	rr = doJSON(t, s, http.MethodDelete, "/api/shopping/"+string(listed[0].ID), "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}
	if len(store.state.ShoppingList) != 2 {
		t.Errorf("list after delete = %+v", store.state.ShoppingList)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	s, store, _ := newTestServer()

	rr := doJSON(t, s, http.MethodPost, "/api/expenses", `{"category":"Hrana","amount":"abc"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid amount status = %d", rr.Code)
	}
	rr = doJSON(t, s, http.MethodPost, "/api/expenses", `{"category":"","amount":"1,50"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty category status = %d", rr.Code)
	}
	if len(store.state.Expenses) != 0 {
		t.Errorf("invalid input persisted expenses: %+v", store.state.Expenses)
	}

	rr = doJSON(t, s, http.MethodPost, "/api/expenses", `{"category":"Hrana","description":"dućan","amount":"1,50"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("valid expense status = %d, body %s", rr.Code, rr.Body.String())
	}
	var created core.Expense
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.Amount.Cents != 150 {
		t.Errorf("amount = %d cents, want 150", created.Amount.Cents)
	}
}

func TestExpenseSummary(t *testing.T) {
	s, store, _ := newTestServer()
	store.state.Expenses = []core.Expense{
		{ID: "e1", Category: "Hrana", Amount: core.Money{Cents: 150}},
		{ID: "e2", Category: "Hrana", Amount: core.Money{Cents: 4120}},
	}

	rr := doJSON(t, s, http.MethodGet, "/api/expenses/summary", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("summary status = %d", rr.Code)
	}
	var totals map[string]core.Money
	if err := json.Unmarshal(rr.Body.Bytes(), &totals); err != nil {
		t.Fatalf("decode totals: %v", err)
	}
	if totals["Hrana"].Cents != 4270 {
		t.Errorf("Hrana = %d cents, want 4270", totals["Hrana"].Cents)
	}
}

func slipPayload() string {
	lines := make([]string, 16)
	lines[0] = "HUB3"
	lines[4] = "PERO PERIĆ"
	lines[10] = "EUR"
	lines[11] = "0000000001235"
	lines[13] = "HR1210010051863000160"
	lines[15] = "HR00 7269"
	return strings.Join(lines, "\n")
}

func TestScanSlip(t *testing.T) {
	s, store, _ := newTestServer()

	body, _ := json.Marshal(map[string]string{"payload": slipPayload()})
	rr := doJSON(t, s, http.MethodPost, "/api/scan", string(body))
	if rr.Code != http.StatusCreated {
		t.Fatalf("scan status = %d, body %s", rr.Code, rr.Body.String())
	}
	var created core.Expense
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.Category != services.SlipCategory {
		t.Errorf("category = %q", created.Category)
	}
	if created.Amount.Cents != 1235 {
		t.Errorf("amount = %d cents, want 1235", created.Amount.Cents)
	}
	if len(store.state.Expenses) != 1 {
		t.Errorf("expenses = %+v", store.state.Expenses)
	}
}

func TestScanSlipRejectsForeignPayload(t *testing.T) {
	s, store, _ := newTestServer()

	rr := doJSON(t, s, http.MethodPost, "/api/scan", `{"payload":"https://example.com/qr"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("foreign payload status = %d", rr.Code)
	}
	if len(store.state.Expenses) != 0 {
		t.Error("foreign payload persisted an expense")
	}
}

func TestRecipeEndpoints(t *testing.T) {
	s, store, _ := newTestServer()

	rr := doJSON(t, s, http.MethodPost, "/api/recipes", `{"name":"","ingredients":["brašno"]}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty name status = %d", rr.Code)
	}

	rr = doJSON(t, s, http.MethodPost, "/api/recipes", `{"name":"Palačinke","ingredients":["brašno","mlijeko"]}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rr.Code, rr.Body.String())
	}
	var created core.Recipe
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if len(created.Ingredients) != 2 {
		t.Errorf("ingredients = %+v", created.Ingredients)
	}

	rr = doJSON(t, s, http.MethodDelete, "/api/recipes/"+string(created.ID), "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}
	if len(store.state.Recipes) != 0 {
		t.Errorf("recipes = %+v", store.state.Recipes)
	}
}

func TestConfigEndpoints(t *testing.T) {
	s, store, sync := newTestServer()

	rr := doJSON(t, s, http.MethodPut, "/api/config", `{"endpoint":"ftp://x","token":""}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad scheme status = %d", rr.Code)
	}

	rr = doJSON(t, s, http.MethodPut, "/api/config", `{"endpoint":"https://script.example.com/exec","token":"tajna"}`)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("put config status = %d, body %s", rr.Code, rr.Body.String())
	}
	if store.cfg.Endpoint != "https://script.example.com/exec" || store.cfg.Token != "tajna" {
		t.Errorf("stored config = %+v", store.cfg)
	}
	if sync.endpoint != store.cfg.Endpoint || sync.token != store.cfg.Token {
		t.Errorf("running client not reconfigured: %+v", sync)
	}

	rr = doJSON(t, s, http.MethodGet, "/api/config", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get config status = %d", rr.Code)
	}
	var cfg core.RemoteConfig
	if err := json.Unmarshal(rr.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Endpoint != store.cfg.Endpoint {
		t.Errorf("config = %+v", cfg)
	}
}

func TestSyncStatus(t *testing.T) {
	s, _, _ := newTestServer()

	rr := doJSON(t, s, http.MethodGet, "/api/sync/status", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["status"] != "idle" {
		t.Errorf("status = %q, want idle", got["status"])
	}
}

func TestSuggestionsIncludeSeedCatalog(t *testing.T) {
	s, _, _ := newTestServer()

	rr := doJSON(t, s, http.MethodGet, "/api/suggestions", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var names []string
	if err := json.Unmarshal(rr.Body.Bytes(), &names); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("suggestions are empty")
	}
}

func TestHealthEndpoints(t *testing.T) {
	s, _, _ := newTestServer()

	for _, target := range []string{"/healthz", "/readyz"} {
		rr := doJSON(t, s, http.MethodGet, target, "")
		if rr.Code != http.StatusOK {
			t.Errorf("%s status = %d", target, rr.Code)
		}
	}
}
