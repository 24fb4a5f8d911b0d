package payment

import (
	"errors"
	"strings"

	"github.com/enfantsenjoie/eejsite/internal/pkg/env"
)

// Processor modes.
const (
	ModeSandbox = "sandbox"
	ModeLive    = "live"
)

// ErrVerifyDisabledInLive is returned by Config.Validate when webhook
// signature verification is disabled while the processor runs in live
// mode. The app refuses to start in that state.
var ErrVerifyDisabledInLive = errors.New("webhook signature verification disabled in live mode")

// Config carries the FedaPay processor configuration. The sandbox
// fallbacks mirror the reference deployment and exist so the checkout
// flow works out of the box on a dev machine; production deployments must
// override all of them.
type Config struct {
	PublicKey     string
	SecretKey     string
	Mode          string
	WebhookSecret string
	// DisableVerify skips webhook signature verification. Diagnostic use
	// only, never valid in live mode.
	DisableVerify bool
}

// LoadConfig reads the processor configuration from the environment.
func LoadConfig() Config {
	disable := strings.ToLower(strings.TrimSpace(env.GetEnv("FEDAPAY_WEBHOOK_DISABLE_VERIFY", "")))
	return Config{
		PublicKey:     env.GetEnv("FEDAPAY_PUBLIC_KEY", "pk_sandbox_EX4uz1Sj2YF_WBeKlai_xAVc"),
		SecretKey:     env.GetEnv("FEDAPAY_SECRET_KEY", "sk_sandbox_Nbv3pxyYc0u8VDLOo3G4-jQD"),
		Mode:          env.GetEnv("FEDAPAY_MODE", ModeSandbox),
		WebhookSecret: env.GetEnv("FEDAPAY_WEBHOOK_SECRET", "wh_sandbox__K5qQY-4K_Qv43NW_3QTvZHp"),
		DisableVerify: disable == "1" || disable == "true" || disable == "yes",
	}
}

// Validate rejects configurations that must never reach production.
func (c Config) Validate() error {
	if c.Mode == ModeLive && c.DisableVerify {
		return ErrVerifyDisabledInLive
	}
	return nil
}

// VerificationActive reports whether incoming webhooks must carry a valid
// signature: a secret is configured and verification is not disabled.
func (c Config) VerificationActive() bool {
	return c.WebhookSecret != "" && !c.DisableVerify
}

// MaskKey shows only the first few and last few characters of a credential
// for the staff debug page.
func MaskKey(s string, show int) string {
	if s == "" {
		return ""
	}
	if len(s) <= show+4 {
		return s[:1] + "…"
	}
	return s[:show] + "…" + s[len(s)-4:]
}
