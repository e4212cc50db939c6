package http

import (
	"net/http"

	"points-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter wires the points API behind the auth middleware.
func NewRouter(handler *PointsHandler, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/points").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/balance", handler.GetBalance).Methods(http.MethodGet)
	api.HandleFunc("/records", handler.GetRecords).Methods(http.MethodGet)
	api.HandleFunc("/send-code", handler.SendCode).Methods(http.MethodPost)
	api.HandleFunc("/exchange", handler.Exchange).Methods(http.MethodPost)
	api.HandleFunc("/earn", handler.Earn).Methods(http.MethodPost)
	api.HandleFunc("/spend", handler.Spend).Methods(http.MethodPost)
	api.HandleFunc("/exchanges", handler.ListExchanges).Methods(http.MethodGet)

	return r
}
