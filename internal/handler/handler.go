package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phone-directory-api/internal/authz"
	"github.com/phone-directory-api/internal/domain"
	"github.com/phone-directory-api/internal/dto"
	"github.com/phone-directory-api/internal/middleware"
)

// requireActor достаёт актора из контекста; без него запрос отклоняется 401
func requireActor(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (authz.Actor, bool) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		respondError(logger, w, http.StatusUnauthorized, "authentication required", "")
		return nil, false
	}
	return actor, true
}

// validationDetails собирает сообщение с именами полей, не прошедших проверку
func validationDetails(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}

// handleServiceError переводит бизнес-ошибки в HTTP статусы
func handleServiceError(logger *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOrganizationNotFound):
		respondError(logger, w, http.StatusNotFound, "organization not found", "")
	case errors.Is(err, domain.ErrDepartmentNotFound):
		respondError(logger, w, http.StatusNotFound, "department not found", "")
	case errors.Is(err, domain.ErrEmployeeNotFound):
		respondError(logger, w, http.StatusNotFound, "employee not found", "")
	case errors.Is(err, domain.ErrUserNotFound):
		respondError(logger, w, http.StatusNotFound, "user not found", "")
	case errors.Is(err, domain.ErrOrganizationNotEmpty):
		respondError(logger, w, http.StatusConflict, "organization still has departments or employees", "")
	case errors.Is(err, domain.ErrDepartmentOrganizationMismatch):
		respondError(logger, w, http.StatusConflict, "department belongs to a different organization", "")
	case errors.Is(err, domain.ErrInvalidReference):
		respondError(logger, w, http.StatusConflict, "referenced entity does not exist", "")
	case errors.Is(err, domain.ErrDuplicateUsername):
		respondError(logger, w, http.StatusConflict, "username already taken", "")
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(logger, w, http.StatusUnauthorized, "invalid username or password", "")
	case errors.Is(err, domain.ErrUnauthenticated):
		respondError(logger, w, http.StatusUnauthorized, "authentication required", "")
	case errors.Is(err, domain.ErrForbidden):
		respondError(logger, w, http.StatusForbidden, "operation not permitted", "")
	default:
		logger.Error("internal error", slog.Any("error", err))
		respondError(logger, w, http.StatusInternalServerError, "internal server error", "")
	}
}

func respondJSON(logger *slog.Logger, w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func respondError(logger *slog.Logger, w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
