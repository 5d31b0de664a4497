package vc

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lugondev/bbs-signatures/pkg/bbs"
)

const (
	signatureProofType  = "BbsBlsSignature2020"
	disclosureProofType = "BbsBlsSignatureProof2020"
)

// issuerKeys holds what this service knows about an issuer. The private key
// is only present for issuers hosted locally.
type issuerKeys struct {
	publicKey  []byte
	privateKey []byte
}

// ServiceImpl implements CredentialService interface
type ServiceImpl struct {
	suite    *bbs.Suite
	credRepo CredentialRepository
	presRepo PresentationRepository
	keyStore map[string]issuerKeys // issuer DID -> keys
}

// NewService creates a new credential service on top of a BBS cipher suite
func NewService(suite *bbs.Suite, credRepo CredentialRepository, presRepo PresentationRepository) CredentialService {
	return &ServiceImpl{
		suite:    suite,
		credRepo: credRepo,
		presRepo: presRepo,
		keyStore: make(map[string]issuerKeys),
	}
}

// SetIssuerKeyPair registers the signing keys for a locally hosted issuer DID
func (s *ServiceImpl) SetIssuerKeyPair(issuerDID string, publicKey, privateKey []byte) {
	s.keyStore[issuerDID] = issuerKeys{publicKey: publicKey, privateKey: privateKey}
}

// RegisterIssuerPublicKey registers the public key of a remote issuer so
// credentials and proofs from it can be verified
func (s *ServiceImpl) RegisterIssuerPublicKey(issuerDID string, publicKey []byte) {
	if existing, ok := s.keyStore[issuerDID]; ok && existing.privateKey != nil {
		return
	}
	s.keyStore[issuerDID] = issuerKeys{publicKey: publicKey}
}

// encodeClaim produces the signed message bytes for one claim. The key
// prefix keeps equal values under different keys distinct.
func encodeClaim(key string, value interface{}) ([]byte, error) {
	valueBytes, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal claim value: %w", err)
	}
	msg := make([]byte, 0, len(key)+1+len(valueBytes))
	msg = append(msg, key...)
	msg = append(msg, ':')
	msg = append(msg, valueBytes...)
	return msg, nil
}

// credentialMessages rebuilds the ordered signed message list of a
// credential from its subject and recorded claim key order.
func credentialMessages(subject map[string]interface{}, claimKeys []string) ([][]byte, error) {
	messages := make([][]byte, 0, len(claimKeys))
	for _, key := range claimKeys {
		value, ok := subject[key]
		if !ok {
			return nil, fmt.Errorf("credential subject is missing claim %q", key)
		}
		msg, err := encodeClaim(key, value)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// IssueCredential creates a verifiable credential whose ordered claim list
// is signed with BBS. The subject id is signed as message 0, so every
// derived proof stays bound to the subject.
func (s *ServiceImpl) IssueCredential(issuerDID string, subjectDID string, claims []Claim) (*VerifiableCredential, error) {
	keys, exists := s.keyStore[issuerDID]
	if !exists || keys.privateKey == nil {
		return nil, fmt.Errorf("no signing key for issuer DID: %s", issuerDID)
	}

	credentialSubject := map[string]interface{}{"id": subjectDID}
	claimKeys := []string{"id"}
	for _, claim := range claims {
		if claim.Key == "id" {
			return nil, fmt.Errorf("claim key %q is reserved", claim.Key)
		}
		credentialSubject[claim.Key] = claim.Value
		claimKeys = append(claimKeys, claim.Key)
	}

	messages, err := credentialMessages(credentialSubject, claimKeys)
	if err != nil {
		return nil, err
	}

	signature, err := s.suite.Sign(keys.privateKey, keys.publicKey, []byte(issuerDID), messages...)
	if err != nil {
		return nil, fmt.Errorf("failed to sign credential: %w", err)
	}

	now := time.Now()
	return &VerifiableCredential{
		Context: []string{
			"https://www.w3.org/2018/credentials/v1",
			"https://w3id.org/security/bbs/v1",
		},
		ID:                uuid.New().String(),
		Type:              []string{"VerifiableCredential"},
		Issuer:            issuerDID,
		IssuanceDate:      now,
		CredentialSubject: credentialSubject,
		Proof: &Proof{
			Type:               signatureProofType,
			Created:            now,
			VerificationMethod: issuerDID + "#bbs-key-1",
			ProofPurpose:       "assertionMethod",
			ProofValue:         base64.StdEncoding.EncodeToString(signature),
			SignedClaimKeys:    claimKeys,
			TotalMessages:      len(claimKeys),
		},
	}, nil
}

// VerifyCredential verifies the BBS signature of a verifiable credential
// against the registered issuer public key
func (s *ServiceImpl) VerifyCredential(vc *VerifiableCredential) error {
	if vc == nil {
		return fmt.Errorf("credential is nil")
	}
	if vc.Proof == nil || vc.Proof.Type != signatureProofType {
		return fmt.Errorf("credential has no BBS signature proof")
	}

	keys, exists := s.keyStore[vc.Issuer]
	if !exists {
		return fmt.Errorf("unknown issuer DID: %s", vc.Issuer)
	}

	signature, err := base64.StdEncoding.DecodeString(vc.Proof.ProofValue)
	if err != nil {
		return fmt.Errorf("failed to decode proof value: %w", err)
	}
	messages, err := credentialMessages(vc.CredentialSubject, vc.Proof.SignedClaimKeys)
	if err != nil {
		return err
	}

	if err := s.suite.Verify(keys.publicKey, signature, []byte(vc.Issuer), messages...); err != nil {
		return fmt.Errorf("credential signature invalid: %w", err)
	}
	return nil
}

// CreatePresentation creates a verifiable presentation carrying one derived
// credential per disclosure request
func (s *ServiceImpl) CreatePresentation(holderDID string, credentials []*VerifiableCredential, disclosureRequests []SelectiveDisclosureRequest) (*VerifiablePresentation, error) {
	if len(credentials) != len(disclosureRequests) {
		return nil, fmt.Errorf("mismatch between credentials and disclosure requests")
	}

	derived := make([]*DerivedCredential, 0, len(credentials))
	for i, credential := range credentials {
		dc, err := s.deriveCredential(credential, disclosureRequests[i])
		if err != nil {
			return nil, fmt.Errorf("failed to create selective disclosure: %w", err)
		}
		derived = append(derived, dc)
	}

	now := time.Now()
	return &VerifiablePresentation{
		Context: []string{
			"https://www.w3.org/2018/credentials/v1",
			"https://w3id.org/security/bbs/v1",
		},
		ID:                   uuid.New().String(),
		Type:                 []string{"VerifiablePresentation"},
		Holder:               holderDID,
		VerifiableCredential: derived,
		Proof: &Proof{
			Type:               disclosureProofType,
			Created:            now,
			VerificationMethod: holderDID + "#bbs-key-1",
			ProofPurpose:       "authentication",
		},
	}, nil
}

// deriveCredential builds the derived credential for one disclosure request:
// the requested attributes stay in the subject, everything else is replaced
// by a BBS proof over the original signature.
func (s *ServiceImpl) deriveCredential(credential *VerifiableCredential, request SelectiveDisclosureRequest) (*DerivedCredential, error) {
	if credential.Proof == nil || credential.Proof.Type != signatureProofType {
		return nil, fmt.Errorf("credential %s has no BBS signature proof", credential.ID)
	}
	keys, exists := s.keyStore[credential.Issuer]
	if !exists {
		return nil, fmt.Errorf("unknown issuer DID: %s", credential.Issuer)
	}

	signature, err := base64.StdEncoding.DecodeString(credential.Proof.ProofValue)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signature: %w", err)
	}
	claimKeys := credential.Proof.SignedClaimKeys
	messages, err := credentialMessages(credential.CredentialSubject, claimKeys)
	if err != nil {
		return nil, err
	}

	// The subject id (message 0) is always disclosed.
	requested := map[string]bool{"id": true}
	for _, attr := range request.RevealedAttributes {
		requested[attr] = true
	}
	disclosedIndexes := make([]int, 0, len(requested))
	disclosedSubject := make(map[string]interface{})
	for idx, key := range claimKeys {
		if !requested[key] {
			continue
		}
		disclosedIndexes = append(disclosedIndexes, idx)
		disclosedSubject[key] = credential.CredentialSubject[key]
	}

	nonce := request.Nonce
	if nonce == "" {
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			return nil, fmt.Errorf("failed to generate nonce: %w", err)
		}
		nonce = fmt.Sprintf("%x", raw)
	}

	proof, err := s.suite.ProofGen(keys.publicKey, signature, []byte(credential.Issuer), []byte(nonce), disclosedIndexes, messages...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate disclosure proof: %w", err)
	}

	disclosedKeys := make([]string, len(disclosedIndexes))
	for i, idx := range disclosedIndexes {
		disclosedKeys[i] = claimKeys[idx]
	}

	return &DerivedCredential{
		Context:           credential.Context,
		ID:                credential.ID,
		Type:              credential.Type,
		Issuer:            credential.Issuer,
		IssuanceDate:      credential.IssuanceDate,
		CredentialSubject: disclosedSubject,
		Proof: &Proof{
			Type:               disclosureProofType,
			Created:            time.Now(),
			VerificationMethod: credential.Proof.VerificationMethod,
			ProofPurpose:       "assertionMethod",
			ProofValue:         base64.StdEncoding.EncodeToString(proof),
			Nonce:              nonce,
			SignedClaimKeys:    disclosedKeys,
			RevealedIndexes:    disclosedIndexes,
			TotalMessages:      credential.Proof.TotalMessages,
		},
	}, nil
}

// VerifyPresentation verifies every derived credential in a presentation
func (s *ServiceImpl) VerifyPresentation(vp *VerifiablePresentation) error {
	if vp == nil {
		return fmt.Errorf("presentation is nil")
	}
	if vp.Proof == nil {
		return fmt.Errorf("presentation has no proof")
	}
	if len(vp.VerifiableCredential) == 0 {
		return fmt.Errorf("presentation carries no credentials")
	}

	for _, dc := range vp.VerifiableCredential {
		if err := s.verifyDerivedCredential(dc); err != nil {
			return fmt.Errorf("credential %s: %w", dc.ID, err)
		}
	}
	return nil
}

func (s *ServiceImpl) verifyDerivedCredential(dc *DerivedCredential) error {
	if dc.Proof == nil || dc.Proof.Type != disclosureProofType {
		return fmt.Errorf("missing disclosure proof")
	}
	keys, exists := s.keyStore[dc.Issuer]
	if !exists {
		return fmt.Errorf("unknown issuer DID: %s", dc.Issuer)
	}
	if len(dc.Proof.SignedClaimKeys) != len(dc.Proof.RevealedIndexes) {
		return fmt.Errorf("malformed disclosure proof metadata")
	}

	proof, err := base64.StdEncoding.DecodeString(dc.Proof.ProofValue)
	if err != nil {
		return fmt.Errorf("failed to decode proof value: %w", err)
	}
	disclosedMessages, err := credentialMessages(dc.CredentialSubject, dc.Proof.SignedClaimKeys)
	if err != nil {
		return err
	}

	err = s.suite.ProofVerify(keys.publicKey, proof, dc.Proof.TotalMessages,
		[]byte(dc.Issuer), []byte(dc.Proof.Nonce), dc.Proof.RevealedIndexes, disclosedMessages...)
	if err != nil {
		return fmt.Errorf("disclosure proof invalid: %w", err)
	}
	return nil
}

// InMemoryCredentialRepository implements CredentialRepository interface
type InMemoryCredentialRepository struct {
	credentials map[string]*VerifiableCredential
}

// NewInMemoryCredentialRepository creates a new in-memory credential repository
func NewInMemoryCredentialRepository() CredentialRepository {
	return &InMemoryCredentialRepository{
		credentials: make(map[string]*VerifiableCredential),
	}
}

// Store stores a verifiable credential
func (r *InMemoryCredentialRepository) Store(vc *VerifiableCredential) error {
	if vc == nil {
		return fmt.Errorf("credential is nil")
	}
	r.credentials[vc.ID] = vc
	return nil
}

// Retrieve retrieves a verifiable credential by ID
func (r *InMemoryCredentialRepository) Retrieve(id string) (*VerifiableCredential, error) {
	vc, exists := r.credentials[id]
	if !exists {
		return nil, fmt.Errorf("credential not found: %s", id)
	}
	return vc, nil
}

// List lists all credentials for a holder DID
func (r *InMemoryCredentialRepository) List(holderDID string) ([]*VerifiableCredential, error) {
	var credentials []*VerifiableCredential
	for _, vc := range r.credentials {
		if subjectID, ok := vc.CredentialSubject["id"].(string); ok && subjectID == holderDID {
			credentials = append(credentials, vc)
		}
	}
	return credentials, nil
}

// InMemoryPresentationRepository implements PresentationRepository interface
type InMemoryPresentationRepository struct {
	presentations map[string]*VerifiablePresentation
}

// NewInMemoryPresentationRepository creates a new in-memory presentation repository
func NewInMemoryPresentationRepository() PresentationRepository {
	return &InMemoryPresentationRepository{
		presentations: make(map[string]*VerifiablePresentation),
	}
}

// Store stores a verifiable presentation
func (r *InMemoryPresentationRepository) Store(vp *VerifiablePresentation) error {
	if vp == nil {
		return fmt.Errorf("presentation is nil")
	}
	r.presentations[vp.ID] = vp
	return nil
}

// Retrieve retrieves a verifiable presentation by ID
func (r *InMemoryPresentationRepository) Retrieve(id string) (*VerifiablePresentation, error) {
	vp, exists := r.presentations[id]
	if !exists {
		return nil, fmt.Errorf("presentation not found: %s", id)
	}
	return vp, nil
}

// List lists all presentations for a holder DID; an empty DID lists all
func (r *InMemoryPresentationRepository) List(holderDID string) ([]*VerifiablePresentation, error) {
	var presentations []*VerifiablePresentation
	for _, vp := range r.presentations {
		if holderDID == "" || vp.Holder == holderDID {
			presentations = append(presentations, vp)
		}
	}
	return presentations, nil
}
