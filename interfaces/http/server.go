package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/lugondev/bbs-signatures/interfaces/http/handlers"
	"github.com/lugondev/bbs-signatures/internal/holder"
	"github.com/lugondev/bbs-signatures/internal/issuer"
	"github.com/lugondev/bbs-signatures/internal/verifier"
)

// Server represents the HTTP server
type Server struct {
	issuerHandler   *handlers.IssuerHandler
	holderHandler   *handlers.HolderHandler
	verifierHandler *handlers.VerifierHandler
	healthHandler   *handlers.HealthHandler
	suiteHandler    *handlers.SuiteHandler
	log             zerolog.Logger
	port            string
}

// NewServer creates a new HTTP server
func NewServer(
	issuerUC *issuer.UseCase,
	holderUC *holder.UseCase,
	verifierUC *verifier.UseCase,
	log zerolog.Logger,
	port string,
) *Server {
	return &Server{
		issuerHandler:   handlers.NewIssuerHandler(issuerUC),
		holderHandler:   handlers.NewHolderHandler(holderUC),
		verifierHandler: handlers.NewVerifierHandler(verifierUC),
		healthHandler:   handlers.NewHealthHandler(),
		suiteHandler:    handlers.NewSuiteHandler(),
		log:             log,
		port:            port,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Health endpoint
	mux.HandleFunc("/health", s.healthHandler.Health)

	// Issuer endpoints
	mux.HandleFunc("/api/issuer/setup", s.issuerHandler.SetupIssuer)
	mux.HandleFunc("/api/issuer/credentials", s.issuerHandler.IssueCredential)
	mux.HandleFunc("/api/issuer/verify", s.issuerHandler.VerifyCredential)

	// Holder endpoints
	mux.HandleFunc("/api/holder/setup", s.holderHandler.SetupHolder)
	mux.HandleFunc("/api/holder/credentials", s.holderHandler.StoreCredential)
	mux.HandleFunc("/api/holder/credentials/list", s.holderHandler.ListCredentials)
	mux.HandleFunc("/api/holder/presentations", s.holderHandler.CreatePresentation)

	// Verifier endpoints
	mux.HandleFunc("/api/verifier/setup", s.verifierHandler.SetupVerifier)
	mux.HandleFunc("/api/verifier/verify", s.verifierHandler.VerifyPresentation)
	mux.HandleFunc("/api/verifier/verification-request", s.verifierHandler.CreateVerificationRequest)
	mux.HandleFunc("/api/verifier/presentations", s.verifierHandler.ListPresentations)

	// Cipher suite endpoint
	mux.HandleFunc("/api/bbs/suites", s.suiteHandler.ListSuites)

	addr := ":" + s.port
	s.log.Info().Str("addr", addr).Msg("BBS selective disclosure API listening")

	return http.ListenAndServe(addr, s.loggingMiddleware(mux))
}

// loggingMiddleware logs all incoming requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
