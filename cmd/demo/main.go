package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/lugondev/bbs-signatures/internal/holder"
	"github.com/lugondev/bbs-signatures/internal/issuer"
	"github.com/lugondev/bbs-signatures/internal/verifier"
	"github.com/lugondev/bbs-signatures/pkg/bbs"
	"github.com/lugondev/bbs-signatures/pkg/did"
	"github.com/lugondev/bbs-signatures/pkg/vc"
)

func main() {
	fmt.Println("BBS Selective Disclosure Demo")
	fmt.Println("=============================")

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	suite := bbs.BLS12381SHA256()
	didRepo := did.NewInMemoryRepository()
	didService := did.NewService(suite, didRepo)
	credRepo := vc.NewInMemoryCredentialRepository()
	presRepo := vc.NewInMemoryPresentationRepository()
	vcService := vc.NewService(suite, credRepo, presRepo)

	issuerUC := issuer.NewUseCase(didService, didRepo, vcService)
	holderUC := holder.NewUseCase(didService, vcService, credRepo)
	verifierUC := verifier.NewUseCase(didService, didRepo, vcService, presRepo)

	if err := runDemo(issuerUC, holderUC, verifierUC); err != nil {
		log.Fatal().Err(err).Msg("demo failed")
	}

	fmt.Println("\nDemo completed successfully.")
}

func runDemo(issuerUC *issuer.UseCase, holderUC *holder.UseCase, verifierUC *verifier.UseCase) error {
	// Step 1: Setup Issuer (Government ID Authority)
	fmt.Println("\nStep 1: Setting up issuer (government ID authority)")
	issuerSetup, err := issuerUC.SetupIssuer("example")
	if err != nil {
		return fmt.Errorf("failed to setup issuer: %w", err)
	}
	fmt.Printf("  issuer DID: %s\n", issuerSetup.DID.String())

	// Step 2: Setup Holder (Citizen)
	fmt.Println("\nStep 2: Setting up holder (citizen)")
	holderSetup, err := holderUC.SetupHolder("example")
	if err != nil {
		return fmt.Errorf("failed to setup holder: %w", err)
	}
	fmt.Printf("  holder DID: %s\n", holderSetup.DID.String())

	// Step 3: Setup Verifier (Cinema)
	fmt.Println("\nStep 3: Setting up verifier (cinema)")
	verifierSetup, err := verifierUC.SetupVerifier("example")
	if err != nil {
		return fmt.Errorf("failed to setup verifier: %w", err)
	}
	fmt.Printf("  verifier DID: %s\n", verifierSetup.DID.String())

	// Step 4: Issue a national ID credential
	fmt.Println("\nStep 4: Issuing national ID credential")
	claims := []vc.Claim{
		{Key: "name", Value: "Alice Example"},
		{Key: "dateOfBirth", Value: "1990-04-01"},
		{Key: "nationality", Value: "VN"},
		{Key: "address", Value: "12 Hidden Lane"},
		{Key: "idNumber", Value: "ID-4921-77"},
	}
	credential, err := issuerUC.IssueCredential(issuerSetup.DID.String(), holderSetup.DID.String(), claims)
	if err != nil {
		return fmt.Errorf("failed to issue credential: %w", err)
	}
	fmt.Printf("  credential ID: %s (%d signed messages)\n", credential.ID, credential.Proof.TotalMessages)

	// Step 5: Holder stores (and thereby verifies) the credential
	fmt.Println("\nStep 5: Holder verifies and stores the credential")
	if err := holderUC.StoreCredential(credential); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	fmt.Println("  credential signature verified")

	// Step 6: Verifier (cinema) requests proof of nationality only
	fmt.Println("\nStep 6: Verifier requests disclosure of nationality only")
	request, err := verifierUC.CreateVerificationRequest(verifier.CreateVerificationRequestParams{
		RequiredClaims: []string{"nationality"},
		TrustedIssuers: []string{issuerSetup.DID.String()},
	})
	if err != nil {
		return fmt.Errorf("failed to create verification request: %w", err)
	}
	fmt.Printf("  verifier nonce: %s\n", request.VerificationNonce)

	// Step 7: Holder creates a selective disclosure presentation
	fmt.Println("\nStep 7: Holder presents nationality, hiding all other attributes")
	presentation, err := holderUC.CreatePresentation(holder.PresentationRequest{
		HolderDID:     holderSetup.DID.String(),
		CredentialIDs: []string{credential.ID},
		SelectiveDisclosure: []vc.SelectiveDisclosureRequest{{
			CredentialID:       credential.ID,
			RevealedAttributes: []string{"nationality"},
		}},
		Nonce: request.VerificationNonce,
	})
	if err != nil {
		return fmt.Errorf("failed to create presentation: %w", err)
	}
	disclosed, _ := json.Marshal(presentation.VerifiableCredential[0].CredentialSubject)
	fmt.Printf("  disclosed subject: %s\n", disclosed)

	// Step 8: Verifier checks the proof
	fmt.Println("\nStep 8: Verifier checks the disclosure proof")
	result, err := verifierUC.VerifyPresentation(verifier.VerificationRequest{
		Presentation:      presentation,
		RequiredClaims:    request.RequiredClaims,
		TrustedIssuers:    request.TrustedIssuers,
		VerificationNonce: request.VerificationNonce,
	})
	if err != nil {
		return fmt.Errorf("failed to verify presentation: %w", err)
	}
	if !result.Valid {
		return fmt.Errorf("presentation rejected: %v", result.Errors)
	}
	fmt.Printf("  proof accepted; revealed claims: %v\n", result.RevealedClaims)

	return nil
}
