package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phone-directory-api/internal/dto"
	"github.com/phone-directory-api/internal/service"
)

type SettingsHandler struct {
	settingsService service.SettingsService
	validator       *validator.Validate
	logger          *slog.Logger
}

func NewSettingsHandler(settingsService service.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		validator:       validator.New(),
		logger:          logger,
	}
}

// Get лениво создаёт строку настроек при первом чтении
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r, h.logger)
	if !ok {
		return
	}

	settings, err := h.settingsService.Get(r.Context(), actor)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, settings)
}

// Update сливает переданные поля в текущие настройки
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r, h.logger)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "validation error", validationDetails(err))
		return
	}

	settings, err := h.settingsService.Update(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, settings)
}
