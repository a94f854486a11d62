package handlers

import (
	"net/http"

	"prepmate/interview/internal/llm"
	"prepmate/interview/internal/questionbank"
	"prepmate/interview/internal/utils"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"`  // "ready" | "not_ready"
	Service string                    `json:"service"` // Service name
	Checks  map[string]ReadinessCheck `json:"checks"`  // Individual check results
}

type HealthHandler struct {
	provider llm.Provider
	bank     *questionbank.Bank
}

func NewHealthHandler(provider llm.Provider, bank *questionbank.Bank) *HealthHandler {
	return &HealthHandler{provider: provider, bank: bank}
}

// liveness: the process is up
func (h *HealthHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readiness: dependencies are usable
func (h *HealthHandler) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]ReadinessCheck)
	ready := true

	if h.bank != nil && h.bank.Size() > 0 {
		checks["catalog"] = ReadinessCheck{Status: "ok"}
	} else {
		checks["catalog"] = ReadinessCheck{Status: "failed", Message: "question catalog is empty"}
		ready = false
	}

	// the oracle is advisory, so a missing provider degrades but stays ready
	if h.provider != nil {
		checks["oracle"] = ReadinessCheck{Status: "ok", Message: h.provider.GetProviderName()}
	} else {
		checks["oracle"] = ReadinessCheck{Status: "ok", Message: "disabled, deterministic fallback only"}
	}

	status := "ready"
	code := http.StatusOK
	if !ready {
		status = "not_ready"
		code = http.StatusServiceUnavailable
	}

	utils.JSON(w, code, ReadinessResponse{
		Status:  status,
		Service: "interview",
		Checks:  checks,
	})
}
