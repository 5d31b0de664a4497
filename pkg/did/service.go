package did

import (
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcutil/base58"

	"github.com/lugondev/bbs-signatures/pkg/bbs"
)

// multicodec prefix for a BLS12-381 G2 public key, varint-encoded.
var blsG2Multicodec = []byte{0xeb, 0x01}

// ServiceImpl implements DIDService interface
type ServiceImpl struct {
	suite      *bbs.Suite
	repository DIDRepository
}

// NewService creates a new DID service issuing BBS BLS12-381 keys
func NewService(suite *bbs.Suite, repo DIDRepository) DIDService {
	return &ServiceImpl{
		suite:      suite,
		repository: repo,
	}
}

// GenerateDID generates a new DID with a BBS key pair. The identifier is the
// multibase base58btc encoding of the multicodec-prefixed public key, as in
// did:key.
func (s *ServiceImpl) GenerateDID(method string) (*DID, *bbs.KeyPair, error) {
	keyPair, err := s.suite.GenerateKeyPair()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate key pair: %w", err)
	}

	did := &DID{
		Method:     method,
		Identifier: encodeMultibase(keyPair.PublicKey),
	}

	return did, keyPair, nil
}

// CreateDIDDocument creates a DID document for the given DID and key pair
func (s *ServiceImpl) CreateDIDDocument(did *DID, keyPair *bbs.KeyPair) (*DIDDocument, error) {
	now := time.Now()
	keyID := did.String() + "#bbs-key-1"

	verificationMethod := VerificationMethod{
		ID:                 keyID,
		Type:               "Bls12381G2Key2020",
		Controller:         did.String(),
		PublicKeyMultibase: encodeMultibase(keyPair.PublicKey),
	}

	doc := &DIDDocument{
		Context: []string{
			"https://www.w3.org/ns/did/v1",
			"https://w3id.org/security/suites/bls12381-2020/v1",
		},
		ID:                 did.String(),
		VerificationMethod: []VerificationMethod{verificationMethod},
		Authentication:     []string{keyID},
		AssertionMethod:    []string{keyID},
		Created:            now,
		Updated:            now,
	}

	return doc, nil
}

// ResolveDID resolves a DID to its DID Document
func (s *ServiceImpl) ResolveDID(didString string) (*DIDDocument, error) {
	return s.repository.Resolve(didString)
}

// VerifyDIDDocument verifies the integrity of a DID Document
func (s *ServiceImpl) VerifyDIDDocument(doc *DIDDocument) error {
	if doc == nil {
		return fmt.Errorf("DID document is nil")
	}

	if doc.ID == "" {
		return fmt.Errorf("DID document ID is empty")
	}

	if len(doc.VerificationMethod) == 0 {
		return fmt.Errorf("DID document must have at least one verification method")
	}

	for _, vm := range doc.VerificationMethod {
		if vm.Type == "Bls12381G2Key2020" {
			if _, err := decodeMultibase(vm.PublicKeyMultibase); err != nil {
				return fmt.Errorf("invalid public key in verification method %s: %w", vm.ID, err)
			}
		}
	}

	// Verify that authentication methods reference valid verification methods
	for _, authMethod := range doc.Authentication {
		found := false
		for _, vm := range doc.VerificationMethod {
			if vm.ID == authMethod {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("authentication method %s not found in verification methods", authMethod)
		}
	}

	return nil
}

// PublicKeyFromDocument extracts the BBS public key from the document's
// first Bls12381G2Key2020 verification method.
func (s *ServiceImpl) PublicKeyFromDocument(doc *DIDDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("DID document is nil")
	}
	for _, vm := range doc.VerificationMethod {
		if vm.Type != "Bls12381G2Key2020" {
			continue
		}
		return decodeMultibase(vm.PublicKeyMultibase)
	}
	return nil, fmt.Errorf("no BBS verification method in document %s", doc.ID)
}

func encodeMultibase(publicKey []byte) string {
	payload := append(append([]byte(nil), blsG2Multicodec...), publicKey...)
	return "z" + base58.Encode(payload)
}

func decodeMultibase(encoded string) ([]byte, error) {
	if !strings.HasPrefix(encoded, "z") {
		return nil, fmt.Errorf("unsupported multibase prefix")
	}
	payload := base58.Decode(encoded[1:])
	if len(payload) != len(blsG2Multicodec)+bbs.PublicKeyLen {
		return nil, fmt.Errorf("invalid key length %d", len(payload))
	}
	if payload[0] != blsG2Multicodec[0] || payload[1] != blsG2Multicodec[1] {
		return nil, fmt.Errorf("unexpected multicodec prefix")
	}
	return payload[len(blsG2Multicodec):], nil
}

// InMemoryRepository implements DIDRepository interface for testing
type InMemoryRepository struct {
	documents map[string]*DIDDocument
}

// NewInMemoryRepository creates a new in-memory DID repository
func NewInMemoryRepository() DIDRepository {
	return &InMemoryRepository{
		documents: make(map[string]*DIDDocument),
	}
}

// Create stores a DID document
func (r *InMemoryRepository) Create(doc *DIDDocument) error {
	if doc == nil {
		return fmt.Errorf("DID document is nil")
	}
	r.documents[doc.ID] = doc
	return nil
}

// Resolve retrieves a DID document by DID
func (r *InMemoryRepository) Resolve(did string) (*DIDDocument, error) {
	doc, exists := r.documents[did]
	if !exists {
		return nil, fmt.Errorf("DID document not found: %s", did)
	}
	return doc, nil
}

// Update updates an existing DID document
func (r *InMemoryRepository) Update(did string, doc *DIDDocument) error {
	if _, exists := r.documents[did]; !exists {
		return fmt.Errorf("DID document not found: %s", did)
	}
	doc.Updated = time.Now()
	r.documents[did] = doc
	return nil
}

// Deactivate removes a DID document
func (r *InMemoryRepository) Deactivate(did string) error {
	delete(r.documents, did)
	return nil
}
