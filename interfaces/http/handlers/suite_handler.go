package handlers

import (
	"net/http"
	"time"

	"github.com/lugondev/bbs-signatures/interfaces/http/dto"
	"github.com/lugondev/bbs-signatures/pkg/bbs"
)

// SuiteHandler exposes the supported BBS cipher suites
type SuiteHandler struct{}

// NewSuiteHandler creates a new suite handler
func NewSuiteHandler() *SuiteHandler {
	return &SuiteHandler{}
}

// ListSuites handles GET /api/bbs/suites. Each suite runs a small
// sign/verify/proof round trip so the endpoint doubles as a self-test.
func (h *SuiteHandler) ListSuites(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)

	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodGet {
		writeErrorResponse(w, "Method not allowed", http.StatusMethodNotAllowed, "")
		return
	}

	infos := make([]dto.SuiteInfo, 0, len(bbs.Suites()))
	for _, suite := range bbs.Suites() {
		start := time.Now()
		ok := selfTest(suite)
		infos = append(infos, dto.SuiteInfo{
			ID:                 suite.ID(),
			SecretKeyLength:    bbs.SecretKeyLen,
			PublicKeyLength:    bbs.PublicKeyLen,
			SignatureLength:    bbs.SignatureLen,
			ProofBaseLength:    bbs.ProofBaseLen,
			SelfTestSucceeded:  ok,
			SelfTestDurationMS: time.Since(start).Milliseconds(),
		})
	}

	writeSuccessResponse(w, infos)
}

func selfTest(suite *bbs.Suite) bool {
	kp, err := suite.GenerateKeyPair()
	if err != nil {
		return false
	}
	messages := [][]byte{[]byte("self-test-1"), []byte("self-test-2")}
	sig, err := suite.Sign(kp.PrivateKey, kp.PublicKey, nil, messages...)
	if err != nil {
		return false
	}
	if err := suite.Verify(kp.PublicKey, sig, nil, messages...); err != nil {
		return false
	}
	proof, err := suite.ProofGen(kp.PublicKey, sig, nil, []byte("self-test"), []int{0}, messages...)
	if err != nil {
		return false
	}
	return suite.ProofVerify(kp.PublicKey, proof, len(messages), nil, []byte("self-test"), []int{0}, messages[0]) == nil
}
