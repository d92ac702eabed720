// Package server wires the SubStack HTTP server: the mux router, the
// stores handlers read from, and the middleware chain every request passes
// through.
//
// Endpoints are registered separately by the endpoints package:
//
//	s := server.NewServer(cfg, db, tokens, "0.0.0.0", "8000")
//	endpoints.RegisterAll(s)
//	err := s.Start()
package server
