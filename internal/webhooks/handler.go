package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/ObraVista/OV-Backend/internal/contracts"
	"github.com/ObraVista/OV-Backend/internal/db"
)

// BankPaymentWebhook receives settlement confirmations from the bank
// integration. The raw event is stored for audit, then the referenced
// payment is marked completed, which recomputes the contract balance.
func BankPaymentWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MiB
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "payload too large or unreadable", http.StatusRequestEntityTooLarge)
		return
	}
	defer r.Body.Close()

	sig := r.Header.Get("Bank-Signature")
	eventID := r.Header.Get("Bank-Event-Id")
	if eventID == "" {
		http.Error(w, "missing event id", http.StatusBadRequest)
		return
	}

	secret := os.Getenv("BANK_WEBHOOK_SECRET")
	if secret == "" {
		http.Error(w, "server misconfigured", http.StatusInternalServerError)
		return
	}
	if !verifySignature(sig, eventID, raw, secret) {
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var event struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
	}
	if err := json.Unmarshal(raw, &event); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if event.Reference == "" {
		http.Error(w, "missing reference", http.StatusBadRequest)
		return
	}

	if err := db.DB.Exec(`
    insert into inbox.payment_events
        (event_id, payload, reference, status)
    values
        (?, ?::jsonb, ?, ?)
    on conflict (event_id) do nothing
`, eventID, string(raw), event.Reference, event.Status).Error; err != nil {
		http.Error(w, "db insert failed", http.StatusInternalServerError)
		return
	}

	if event.Status == "settled" {
		if err := contracts.CompletePaymentByReference(event.Reference); err != nil {
			// Event is recorded; settlement can be replayed later.
			http.Error(w, "payment not settled: "+err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"ok":true}`))
}

func verifySignature(sig, eventID string, raw []byte, secret string) bool {
	if !strings.HasPrefix(sig, "sha256=") {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(raw)
	mac.Write([]byte(eventID))
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(sig), []byte(expected))
}
