package chi

import (
	"encoding/json"
	"net/http"
)

// healthResponse reports liveness of the relay and its queue backend
type healthResponse struct {
	Status         string `json:"status"`
	RedisConnected bool   `json:"redis_connected"`
}

// getHealth handles GET /health
func getHealth(queue Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "healthy", RedisConnected: true}
		if err := queue.Ping(r.Context()); err != nil {
			resp = healthResponse{Status: "unhealthy", RedisConnected: false}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
