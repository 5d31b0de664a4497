package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	httpapi "github.com/lugondev/bbs-signatures/interfaces/http"
	"github.com/lugondev/bbs-signatures/internal/holder"
	"github.com/lugondev/bbs-signatures/internal/issuer"
	"github.com/lugondev/bbs-signatures/internal/verifier"
	"github.com/lugondev/bbs-signatures/pkg/bbs"
	"github.com/lugondev/bbs-signatures/pkg/did"
	"github.com/lugondev/bbs-signatures/pkg/vc"
)

func main() {
	port := flag.String("port", "8080", "listen port")
	suiteID := flag.String("suite", "sha-256", "BBS cipher suite (sha-256 or shake-256)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	suite, err := bbs.ParseSuite(*suiteID)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid cipher suite")
	}

	didRepo := did.NewInMemoryRepository()
	didService := did.NewService(suite, didRepo)
	credRepo := vc.NewInMemoryCredentialRepository()
	presRepo := vc.NewInMemoryPresentationRepository()
	vcService := vc.NewService(suite, credRepo, presRepo)

	issuerUC := issuer.NewUseCase(didService, didRepo, vcService)
	holderUC := holder.NewUseCase(didService, vcService, credRepo)
	verifierUC := verifier.NewUseCase(didService, didRepo, vcService, presRepo)

	server := httpapi.NewServer(issuerUC, holderUC, verifierUC, log, *port)
	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
