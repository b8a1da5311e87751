package provider

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

// RouterConfig 开发用转盘服务器配置
type RouterConfig struct {
	AllowedOrigins []string
	Sectors        []int
}

// NewRouter 路由：
//   - POST /api/spin 由 p 决定中奖扇区
//   - GET /api/sectors
//   - GET /healthz
func NewRouter(p Provider, cfg RouterConfig) chi.Router {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/api", func(rr chi.Router) {
		rr.Post("/spin", spinHandler(p))
		rr.Get("/sectors", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string][]int{"sectors": cfg.Sectors})
		})
	})
	return r
}

func spinHandler(p Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := p.RequestSpinResult(r.Context())
		if err != nil {
			log.Printf("[SpinServer] provider failed: %v", err)
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		resp := SpinResponse{SpinID: uuid.NewString(), WinnerIndex: index}
		log.Printf("[SpinServer] spin %s → sector %d", resp.SpinID, index)
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[SpinServer] failed to write response: %v", err)
	}
}
