package httpserver

import "net/http"

// Server 把 /api/* 交给 Handler，其余路径走静态资源
type Server struct {
	mux *http.ServeMux
	api *Handler
}

func NewServer(h *Handler, desktopDir, mobileDir string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/api/", h)
	RegisterStaticRoutes(mux, desktopDir, mobileDir)
	return &Server{mux: mux, api: h}
}

func (s *Server) API() *Handler { return s.api }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
