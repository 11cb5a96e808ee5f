package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pet-shop/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, secretHeader, secretValue string) {
	r.Route("/purchases", func(pr chi.Router) {
		pr.Use(chimw.AllowContentType("application/json"))
		pr.Post("/", createPurchaseHandler(svc))
	})

	r.Route("/transactions", func(tr chi.Router) {
		tr.Use(middleware.SharedSecret(secretHeader, secretValue))
		tr.Get("/", listTransactionsHandler(svc))
	})
}

type purchaseRequest struct {
	Purchaser *string `json:"purchaser"`
	PetType   *string `json:"pet-type"`
	Store     *int    `json:"store"`
	PetName   *string `json:"pet-name"`
}

type transactionResponse struct {
	Purchaser  string `json:"purchaser"`
	PetType    string `json:"pet-type"`
	Store      int    `json:"store"`
	PetName    string `json:"pet-name"`
	PurchaseID string `json:"purchase-id"`
}

func createPurchaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req purchaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Malformed data")
			return
		}
		if req.Purchaser == nil || req.PetType == nil {
			writeError(w, http.StatusBadRequest, "Malformed data")
			return
		}

		t, err := svc.Purchase(r.Context(), PurchaseInput{
			Purchaser: *req.Purchaser,
			PetType:   *req.PetType,
			Store:     req.Store,
			PetName:   req.PetName,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "Malformed data")
			case errors.Is(err, ErrNoneAvailable):
				writeError(w, http.StatusBadRequest, "No pet of this type is available")
			default:
				writeJSON(w, http.StatusInternalServerError, map[string]string{
					"server error": "API call failed",
				})
			}
			return
		}

		writeJSON(w, http.StatusCreated, toTransactionResponse(t))
	}
}

func listTransactionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var f Filter
		f.Purchaser = queryValue(q, "purchaser")
		f.PetType = queryValue(q, "pet-type")
		f.PetName = queryValue(q, "pet-name")
		f.PurchaseID = queryValue(q, "purchase-id")

		// Un valor de store que no parsea como entero se ignora como
		// filtro, no se rechaza.
		if raw := queryValue(q, "store"); raw != nil {
			if n, err := strconv.Atoi(*raw); err == nil {
				f.Store = &n
			}
		}

		txs, err := svc.ListTransactions(r.Context(), f)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"server error": "API call failed",
			})
			return
		}

		out := make([]transactionResponse, 0, len(txs))
		for _, t := range txs {
			out = append(out, toTransactionResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toTransactionResponse(t Transaction) transactionResponse {
	return transactionResponse{
		Purchaser:  t.Purchaser,
		PetType:    t.PetType,
		Store:      t.Store,
		PetName:    t.PetName,
		PurchaseID: t.PurchaseID,
	}
}

func queryValue(q map[string][]string, key string) *string {
	vs, ok := q[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}

// writeJSON está duplicado a propósito entre los handlers de catalog y
// orders, igual que en otros módulos: todavía no amerita un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
