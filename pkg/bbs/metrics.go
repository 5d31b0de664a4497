package bbs

import (
	"time"

	"github.com/rs/zerolog"
)

// Metrics tracks per-operation timings and a running success rate for an
// instrumented suite.
type Metrics struct {
	KeyGenerationTime time.Duration `json:"key_generation_time"`
	SigningTime       time.Duration `json:"signing_time"`
	VerificationTime  time.Duration `json:"verification_time"`
	ProofCreationTime time.Duration `json:"proof_creation_time"`
	ProofVerifyTime   time.Duration `json:"proof_verify_time"`
	TotalOperations   int64         `json:"total_operations"`
	SuccessRate       float64       `json:"success_rate"`
}

// Instrumented wraps a Suite with timing metrics and structured logging.
// Only durations, message counts and outcomes are logged — never key
// material, messages, or derived scalars. Not safe for concurrent use;
// wrap per goroutine.
type Instrumented struct {
	suite   *Suite
	log     zerolog.Logger
	metrics Metrics
}

// NewInstrumented returns an instrumented view of the suite logging to the
// given logger.
func NewInstrumented(suite *Suite, log zerolog.Logger) *Instrumented {
	return &Instrumented{
		suite: suite,
		log:   log.With().Str("suite", suite.ID()).Logger(),
	}
}

// Suite returns the wrapped suite.
func (w *Instrumented) Suite() *Suite {
	return w.suite
}

// Metrics returns a snapshot of the collected metrics.
func (w *Instrumented) Metrics() Metrics {
	return w.metrics
}

// GenerateKeyPair generates a key pair with metrics tracking.
func (w *Instrumented) GenerateKeyPair() (*KeyPair, error) {
	start := time.Now()
	kp, err := w.suite.GenerateKeyPair()
	w.metrics.KeyGenerationTime = time.Since(start)
	w.record("keygen", w.metrics.KeyGenerationTime, err)
	return kp, err
}

// Sign signs with metrics tracking.
func (w *Instrumented) Sign(sk, pk, header []byte, messages ...[]byte) ([]byte, error) {
	start := time.Now()
	sig, err := w.suite.Sign(sk, pk, header, messages...)
	w.metrics.SigningTime = time.Since(start)
	w.recordN("sign", w.metrics.SigningTime, len(messages), err)
	return sig, err
}

// Verify verifies with metrics tracking.
func (w *Instrumented) Verify(pk, signature, header []byte, messages ...[]byte) error {
	start := time.Now()
	err := w.suite.Verify(pk, signature, header, messages...)
	w.metrics.VerificationTime = time.Since(start)
	w.recordN("verify", w.metrics.VerificationTime, len(messages), err)
	return err
}

// ProofGen creates a proof with metrics tracking.
func (w *Instrumented) ProofGen(pk, signature, header, presentationHeader []byte, disclosedIndexes []int, messages ...[]byte) ([]byte, error) {
	start := time.Now()
	proof, err := w.suite.ProofGen(pk, signature, header, presentationHeader, disclosedIndexes, messages...)
	w.metrics.ProofCreationTime = time.Since(start)
	w.log.Debug().
		Dur("took", w.metrics.ProofCreationTime).
		Int("messages", len(messages)).
		Int("disclosed", len(disclosedIndexes)).
		Bool("ok", err == nil).
		Msg("proof_gen")
	w.count(err)
	return proof, err
}

// ProofVerify verifies a proof with metrics tracking.
func (w *Instrumented) ProofVerify(pk, proof []byte, numMessages int, header, presentationHeader []byte, disclosedIndexes []int, disclosedMessages ...[]byte) error {
	start := time.Now()
	err := w.suite.ProofVerify(pk, proof, numMessages, header, presentationHeader, disclosedIndexes, disclosedMessages...)
	w.metrics.ProofVerifyTime = time.Since(start)
	w.recordN("proof_verify", w.metrics.ProofVerifyTime, numMessages, err)
	return err
}

func (w *Instrumented) record(op string, took time.Duration, err error) {
	w.log.Debug().Dur("took", took).Bool("ok", err == nil).Msg(op)
	w.count(err)
}

func (w *Instrumented) recordN(op string, took time.Duration, messages int, err error) {
	w.log.Debug().Dur("took", took).Int("messages", messages).Bool("ok", err == nil).Msg(op)
	w.count(err)
}

func (w *Instrumented) count(err error) {
	w.metrics.TotalOperations++
	success := 0.0
	if err == nil {
		success = 1.0
	}
	prev := w.metrics.SuccessRate * float64(w.metrics.TotalOperations-1)
	w.metrics.SuccessRate = (prev + success) / float64(w.metrics.TotalOperations)
}
