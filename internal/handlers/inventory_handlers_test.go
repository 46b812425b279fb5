package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"jewel-backend/internal/memstore"
	"jewel-backend/internal/models"
	"jewel-backend/internal/services"
)

// testRouter wires the inventory handlers over a memstore, without the auth
// middleware, so the status-code mapping can be checked end to end.
func testRouter() *mux.Router {
	store := memstore.New()
	cs := store.CounterStore()
	bs := store.ContainerStore()
	ps := store.PieceStore()

	counterHandler := NewCounterHandler(services.NewCounterService(cs, bs))
	containerHandler := NewContainerHandler(services.NewContainerService(bs, cs, ps))
	pieceHandler := NewPieceHandler(services.NewPieceService(ps, bs))

	r := mux.NewRouter()
	r.HandleFunc("/api/counters", counterHandler.ListCounters).Methods(http.MethodGet)
	r.HandleFunc("/api/counters", counterHandler.CreateCounter).Methods(http.MethodPost)
	r.HandleFunc("/api/counters/{id}", counterHandler.UpdateCounter).Methods(http.MethodPut)
	r.HandleFunc("/api/counters/{id}", counterHandler.DeleteCounter).Methods(http.MethodDelete)

	r.HandleFunc("/api/boxes", containerHandler.ListContainers).Methods(http.MethodGet)
	r.HandleFunc("/api/boxes", containerHandler.CreateContainer).Methods(http.MethodPost)
	r.HandleFunc("/api/boxes/by-counter", containerHandler.ListByCounter).Methods(http.MethodGet)
	r.HandleFunc("/api/boxes/{id}", containerHandler.GetContainer).Methods(http.MethodGet)
	r.HandleFunc("/api/boxes/{id}", containerHandler.UpdateContainer).Methods(http.MethodPut)
	r.HandleFunc("/api/boxes/{id}", containerHandler.DeleteContainer).Methods(http.MethodDelete)

	r.HandleFunc("/api/pieces", pieceHandler.ListPieces).Methods(http.MethodGet)
	r.HandleFunc("/api/pieces", pieceHandler.CreatePiece).Methods(http.MethodPost)
	r.HandleFunc("/api/pieces/by-box", pieceHandler.ListByContainer).Methods(http.MethodGet)
	r.HandleFunc("/api/pieces/transfer", pieceHandler.TransferPiece).Methods(http.MethodPost)
	r.HandleFunc("/api/pieces/sell", pieceHandler.SellPiece).Methods(http.MethodPost)
	r.HandleFunc("/api/pieces/{id}", pieceHandler.UpdatePiece).Methods(http.MethodPut)
	r.HandleFunc("/api/pieces/{id}", pieceHandler.DeletePiece).Methods(http.MethodDelete)
	return r
}

func do(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestInventoryFlow(t *testing.T) {
	router := testRouter()

	rec := do(t, router, http.MethodPost, "/api/counters", models.CreateCounterRequest{Name: "Front"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create counter: status %d body %s", rec.Code, rec.Body)
	}
	var counter models.Counter
	decode(t, rec, &counter)

	rec = do(t, router, http.MethodPost, "/api/boxes", models.CreateContainerRequest{
		CounterID: counter.ID, Type: models.ContainerTypeBox, Identity: "B1", FixedWeight: 100,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create container: status %d body %s", rec.Code, rec.Body)
	}
	var b1 models.Container
	decode(t, rec, &b1)

	rec = do(t, router, http.MethodPost, "/api/boxes", models.CreateContainerRequest{
		CounterID: counter.ID, Type: models.ContainerTypeBox, Identity: "B2", FixedWeight: 50,
	})
	var b2 models.Container
	decode(t, rec, &b2)

	rec = do(t, router, http.MethodPost, "/api/pieces", models.CreatePieceRequest{
		BoxID: b1.ID, Barcode: "P1", Weight: 10, VWeight: 2,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create piece: status %d body %s", rec.Code, rec.Body)
	}
	var piece models.Piece
	decode(t, rec, &piece)
	if piece.CounterID != counter.ID {
		t.Errorf("piece counterId = %d, want %d", piece.CounterID, counter.ID)
	}

	rec = do(t, router, http.MethodGet, fmt.Sprintf("/api/boxes/%d", b1.ID), nil)
	var got models.Container
	decode(t, rec, &got)
	if got.TotalAll != 112 {
		t.Errorf("B1 totalAll = %v, want 112", got.TotalAll)
	}

	rec = do(t, router, http.MethodPost,
		fmt.Sprintf("/api/pieces/transfer?pieceId=%d&targetBoxId=%d", piece.ID, b2.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("transfer: status %d body %s", rec.Code, rec.Body)
	}

	rec = do(t, router, http.MethodPost, fmt.Sprintf("/api/pieces/sell?pieceId=%d", piece.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("sell: status %d body %s", rec.Code, rec.Body)
	}
	var sold models.Piece
	decode(t, rec, &sold)
	if sold.Status != models.PieceStatusSold {
		t.Errorf("status = %q, want SOLD", sold.Status)
	}

	// Selling again is a conflict.
	rec = do(t, router, http.MethodPost, fmt.Sprintf("/api/pieces/sell?pieceId=%d", piece.ID), nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("re-sell: status %d, want 409", rec.Code)
	}

	rec = do(t, router, http.MethodGet, fmt.Sprintf("/api/boxes/%d", b2.ID), nil)
	decode(t, rec, &got)
	if got.TotalAll != 50 || got.TotalPieces != 1 {
		t.Errorf("B2 after sell: totalAll = %v totalPieces = %d, want 50 / 1", got.TotalAll, got.TotalPieces)
	}
}

func TestStatusCodeMapping(t *testing.T) {
	router := testRouter()

	rec := do(t, router, http.MethodPost, "/api/counters", models.CreateCounterRequest{Name: ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank counter name: status %d, want 400", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/api/boxes/99", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing container: status %d, want 404", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/api/pieces/sell?pieceId=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric pieceId: status %d, want 400", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/api/counters", models.CreateCounterRequest{Name: "C"})
	var counter models.Counter
	decode(t, rec, &counter)
	rec = do(t, router, http.MethodPost, "/api/boxes", models.CreateContainerRequest{
		CounterID: counter.ID, Type: models.ContainerTypeBox, Identity: "B", FixedWeight: 1,
	})
	var box models.Container
	decode(t, rec, &box)

	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/api/counters/%d", counter.ID), nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("delete counter with container: status %d, want 409", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/api/boxes", models.CreateContainerRequest{
		CounterID: counter.ID, Type: "BAG", Identity: "X",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad container type: status %d, want 400", rec.Code)
	}
}

func TestEmptyListsAreArrays(t *testing.T) {
	router := testRouter()

	rec := do(t, router, http.MethodGet, "/api/counters", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list counters: status %d", rec.Code)
	}
	if body := bytes.TrimSpace(rec.Body.Bytes()); string(body) != "[]" {
		t.Errorf("empty list body = %s, want []", body)
	}
}
