package payment

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/enfantsenjoie/eejsite/app/models"
)

// fakeDonationRepo is an in-memory DonationRepository keyed by reference.
type fakeDonationRepo struct {
	mu        sync.Mutex
	donations map[string]*models.Donation
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{donations: make(map[string]*models.Donation)}
}

func (f *fakeDonationRepo) Create(d *models.Donation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.donations[d.Reference]; exists {
		return fmt.Errorf("duplicate reference %s", d.Reference)
	}
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	f.donations[d.Reference] = &cp
	return nil
}

func (f *fakeDonationRepo) GetByReference(reference string) (*models.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.donations[reference]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDonationRepo) Reconcile(reference, status, externalTransactionID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.donations[reference]
	if !ok {
		return 0, nil
	}
	d.Status = status
	d.ExternalTransactionID = externalTransactionID
	d.UpdatedAt = time.Now()
	return 1, nil
}

func (f *fakeDonationRepo) ListRecent(limit int) ([]models.Donation, error) { return nil, nil }

func (f *fakeDonationRepo) Count() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.donations)), nil
}

func (f *fakeDonationRepo) CountByStatus(status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, d := range f.donations {
		if d.Status == status {
			n++
		}
	}
	return n, nil
}

func testConfig() Config {
	return Config{
		PublicKey:     "pk_sandbox_x",
		SecretKey:     "sk_sandbox_x",
		Mode:          ModeSandbox,
		WebhookSecret: "wh_test_secret",
	}
}

func seedPending(t *testing.T, repo *fakeDonationRepo, reference string) {
	t.Helper()
	err := repo.Create(&models.Donation{
		Reference: reference,
		Amount:    1000,
		Currency:  "XOF",
		Status:    models.DonationStatusPending,
	})
	if err != nil {
		t.Fatalf("seed donation: %v", err)
	}
}

func TestStartCheckout_Defaults(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(testConfig(), repo)

	session, err := svc.StartCheckout("", "", "", "", "/succes", "/annule")
	assert.NoError(t, err)
	assert.Equal(t, int64(DefaultAmount), session.Amount)
	assert.Equal(t, DefaultCurrency, session.Currency)
	assert.Len(t, session.Reference, 20) // 10 random bytes, hex encoded
	assert.Equal(t, "pk_sandbox_x", session.PublicKey)
	assert.Equal(t, ModeSandbox, session.Environment)

	stored, err := repo.GetByReference(session.Reference)
	assert.NoError(t, err)
	assert.Equal(t, models.DonationStatusPending, stored.Status)
}

func TestStartCheckout_FloorsAmountAtMinimum(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(testConfig(), repo)

	session, err := svc.StartCheckout("50", "XOF", "", "", "/s", "/c")
	assert.NoError(t, err)
	assert.Equal(t, int64(100), session.Amount)

	stored, err := repo.GetByReference(session.Reference)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), stored.Amount)
}

func TestStartCheckout_NonNumericAmountFallsBack(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(testConfig(), repo)

	session, err := svc.StartCheckout("abc", "", "", "", "/s", "/c")
	assert.NoError(t, err)
	assert.Equal(t, int64(DefaultAmount), session.Amount)
}

func TestStartCheckout_UniqueReferences(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(testConfig(), repo)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		session, err := svc.StartCheckout("5000", "XOF", "", "", "/s", "/c")
		assert.NoError(t, err)
		if _, dup := seen[session.Reference]; dup {
			t.Fatalf("duplicate reference %s", session.Reference)
		}
		seen[session.Reference] = struct{}{}
	}
}

func TestHandleWebhook_AppliesApprovedStatus(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(testConfig(), repo)
	seedPending(t, repo, "abc123")

	body := []byte(`{"data":{"object":{"eej_ref":"abc123","status":"approved","id":"tx_1"}}}`)
	outcome, err := svc.HandleWebhook(body, signBody(body, "wh_test_secret"))

	assert.NoError(t, err)
	assert.True(t, outcome.Applied)

	stored, _ := repo.GetByReference("abc123")
	assert.Equal(t, models.DonationStatusPaid, stored.Status)
	assert.Equal(t, "tx_1", stored.ExternalTransactionID)
}

func TestHandleWebhook_InvalidSignatureDoesNotMutate(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(testConfig(), repo)
	seedPending(t, repo, "abc123")

	body := []byte(`{"data":{"object":{"eej_ref":"abc123","status":"approved","id":"tx_1"}}}`)
	_, err := svc.HandleWebhook(body, "deadbeef")

	assert.ErrorIs(t, err, ErrInvalidSignature)

	stored, _ := repo.GetByReference("abc123")
	assert.Equal(t, models.DonationStatusPending, stored.Status)
	assert.Empty(t, stored.ExternalTransactionID)
}

func TestHandleWebhook_MissingSignatureRejected(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(testConfig(), repo)
	seedPending(t, repo, "abc123")

	body := []byte(`{"eej_ref":"abc123","status":"approved"}`)
	_, err := svc.HandleWebhook(body, "")

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHandleWebhook_StatusMappingTable(t *testing.T) {
	tests := []struct {
		external string
		want     string
		applied  bool
	}{
		{external: "approved", want: models.DonationStatusPaid, applied: true},
		{external: "paid", want: models.DonationStatusPaid, applied: true},
		{external: "canceled", want: models.DonationStatusCanceled, applied: true},
		{external: "failed", want: models.DonationStatusFailed, applied: true},
		{external: "processing", want: models.DonationStatusPending, applied: false},
		{external: "transferred", want: models.DonationStatusPending, applied: false},
		{external: "", want: models.DonationStatusPending, applied: false},
	}

	for _, tt := range tests {
		t.Run("status "+tt.external, func(t *testing.T) {
			repo := newFakeDonationRepo()
			svc := NewService(testConfig(), repo)
			seedPending(t, repo, "ref-1")

			body := []byte(fmt.Sprintf(`{"transaction":{"eej_ref":"ref-1","status":%q,"id":"tx_9"}}`, tt.external))
			outcome, err := svc.HandleWebhook(body, signBody(body, "wh_test_secret"))

			assert.NoError(t, err)
			assert.Equal(t, tt.applied, outcome.Applied)

			stored, _ := repo.GetByReference("ref-1")
			assert.Equal(t, tt.want, stored.Status)
		})
	}
}

func TestHandleWebhook_Idempotent(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(testConfig(), repo)
	seedPending(t, repo, "abc123")

	body := []byte(`{"data":{"object":{"eej_ref":"abc123","status":"approved","id":"tx_1"}}}`)
	sig := signBody(body, "wh_test_secret")

	for i := 0; i < 2; i++ {
		outcome, err := svc.HandleWebhook(body, sig)
		assert.NoError(t, err)
		assert.True(t, outcome.Applied)
	}

	stored, _ := repo.GetByReference("abc123")
	assert.Equal(t, models.DonationStatusPaid, stored.Status)
	assert.Equal(t, "tx_1", stored.ExternalTransactionID)
}

func TestHandleWebhook_MissingReference(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(testConfig(), repo)

	body := []byte(`{"transaction":{"status":"approved","id":"tx_1"}}`)
	_, err := svc.HandleWebhook(body, signBody(body, "wh_test_secret"))

	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestHandleWebhook_UnknownDonation(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(testConfig(), repo)

	body := []byte(`{"eej_ref":"no-such-ref","status":"approved","id":"tx_1"}`)
	_, err := svc.HandleWebhook(body, signBody(body, "wh_test_secret"))

	assert.ErrorIs(t, err, ErrUnknownDonation)
}

func TestHandleWebhook_DiagnosticModeSwallowsLookupFailures(t *testing.T) {
	cfg := testConfig()
	cfg.DisableVerify = true
	repo := newFakeDonationRepo()
	svc := NewService(cfg, repo)

	// No signature, no reference: still acknowledged so the processor's
	// retry loop is never blocked during manual testing.
	outcome, err := svc.HandleWebhook([]byte(`{"status":"approved"}`), "")
	assert.NoError(t, err)
	assert.False(t, outcome.Applied)

	// Unknown donation is acknowledged too.
	outcome, err = svc.HandleWebhook([]byte(`{"eej_ref":"ghost","status":"approved"}`), "")
	assert.NoError(t, err)
	assert.False(t, outcome.Applied)
}

func TestHandleWebhook_MalformedPayloadIsPayloadError(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(testConfig(), repo)

	body := []byte(`{broken`)
	_, err := svc.HandleWebhook(body, signBody(body, "wh_test_secret"))

	// A correctly signed but malformed body is a payload error, never a
	// signature-layer error.
	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.False(t, errors.Is(err, ErrInvalidSignature))
}

func TestHandleWebhook_ConcurrentDuplicateDeliveries(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := NewService(testConfig(), repo)
	seedPending(t, repo, "abc123")

	body := []byte(`{"data":{"object":{"eej_ref":"abc123","status":"approved","id":"tx_1"}}}`)
	sig := signBody(body, "wh_test_secret")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.HandleWebhook(body, sig)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, _ := repo.GetByReference("abc123")
	assert.Equal(t, models.DonationStatusPaid, stored.Status)
	assert.Equal(t, "tx_1", stored.ExternalTransactionID)
}

func TestConfigValidate_RefusesDisabledVerifyInLiveMode(t *testing.T) {
	cfg := Config{Mode: ModeLive, DisableVerify: true, WebhookSecret: "s"}
	assert.ErrorIs(t, cfg.Validate(), ErrVerifyDisabledInLive)

	cfg = Config{Mode: ModeSandbox, DisableVerify: true}
	assert.NoError(t, cfg.Validate())

	cfg = Config{Mode: ModeLive, WebhookSecret: "s"}
	assert.NoError(t, cfg.Validate())
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "", MaskKey("", 6))
	assert.Equal(t, "pk_san…xAVc", MaskKey("pk_sandbox_EX4uz1Sj2YF_WBeKlai_xAVc", 6))
	assert.Equal(t, "s…", MaskKey("short", 6))
}
