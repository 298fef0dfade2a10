package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/smartpos/smartposgo/internal/models"
	"github.com/smartpos/smartposgo/internal/pos"
)

// getSettings returns the store profile, falling back to defaults
func (r *Router) getSettings(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, pos.StoreSettingsFor(r.store))
}

// updateSettings replaces the store profile blob
func (r *Router) updateSettings(w http.ResponseWriter, req *http.Request) {
	var settings models.StoreSettings
	if err := json.NewDecoder(req.Body).Decode(&settings); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if settings.TaxRate < 0 || settings.TaxRate > 100 {
		respondError(w, http.StatusBadRequest, "Tax rate must be between 0 and 100")
		return
	}
	if err := r.store.PutSetting(models.SettingStoreInfo, settings); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
