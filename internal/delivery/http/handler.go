package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"ProfcomService/internal/models"
	"ProfcomService/internal/service"
	"ProfcomService/pkg/apperrors"
	"ProfcomService/pkg/server"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CallerIDHeader заголовок с идентификатором вызывающего пользователя
const CallerIDHeader = "X-User-ID"

// callerIDQueryParam используется, если заголовок не передан
const callerIDQueryParam = "caller_id"

// internalErrorMessage отдается клиенту вместо текста непредвиденной ошибки
const internalErrorMessage = "internal server error"

var errEmptyBody = fmt.Errorf("empty request body: %w", apperrors.ErrInvalidArgument)

// Handler обрабатывает HTTP запросы к сервису профкома
type Handler struct {
	profiles service.ProfileServiceInterface
	guides   service.GuideServiceInterface
	contacts service.ContactServiceInterface
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler создает новый обработчик HTTP запросов
func NewHandler(
	profiles service.ProfileServiceInterface,
	guides service.GuideServiceInterface,
	contacts service.ContactServiceInterface,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		profiles: profiles,
		guides:   guides,
		contacts: contacts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Register регистрирует нового участника
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.profiles.Register(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, user)
}

// Login находит пользователя по user_name
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	user, err := h.profiles.Login(r.Context(), r.URL.Query().Get("user_name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, user)
}

// GetProfile возвращает пользователя по идентификатору
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.profiles.GetProfile(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, user)
}

// GetContact возвращает контактную информацию пользователя
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	contact, err := h.profiles.GetContact(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, contact)
}

// UpdateProfile частично обновляет профиль пользователя
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	callerID, err := parseCallerID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	targetID, err := pathID(r, "user_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var patch models.ProfilePatch
	if err := h.decode(r, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.profiles.UpdateProfile(r.Context(), callerID, targetID, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, user)
}

// DeleteProfile удаляет пользователя вместе с контактной информацией
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	callerID, err := parseCallerID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	targetID, err := pathID(r, "user_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.profiles.DeleteProfile(r.Context(), callerID, targetID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.StatusResponse{Status: "deleted"})
}

// ListGuides возвращает все гайды
func (h *Handler) ListGuides(w http.ResponseWriter, r *http.Request) {
	guides, err := h.guides.ListGuides(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, guides)
}

// CreateGuide создает гайд
func (h *Handler) CreateGuide(w http.ResponseWriter, r *http.Request) {
	callerID, err := parseCallerID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.GuideRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	guide, err := h.guides.CreateGuide(r.Context(), callerID, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, guide)
}

// UpdateGuide частично обновляет гайд
func (h *Handler) UpdateGuide(w http.ResponseWriter, r *http.Request) {
	callerID, err := parseCallerID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	guideID, err := pathID(r, "guide_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var patch models.GuidePatch
	if err := h.decode(r, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}

	guide, err := h.guides.UpdateGuide(r.Context(), callerID, guideID, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, guide)
}

// ListContacts возвращает все контакты
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.ListContacts(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, contacts)
}

// FilterContacts возвращает контакты, подходящие под фильтр; пустое тело означает пустой фильтр
func (h *Handler) FilterContacts(w http.ResponseWriter, r *http.Request) {
	callerID, err := parseCallerID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var filter models.ContactFilter
	if err := h.decode(r, &filter); err != nil && !errors.Is(err, errEmptyBody) {
		h.writeError(w, r, err)
		return
	}

	contacts, err := h.contacts.FilterContacts(r.Context(), callerID, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, contacts)
}

// decode читает JSON тело, отклоняя неизвестные поля, и проверяет теги validate
func (h *Handler) decode(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("decode request body: %v: %w", err, apperrors.ErrInvalidArgument)
	}

	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("validate request: %v: %w", err, apperrors.ErrInvalidArgument)
	}

	return nil
}

// parseCallerID читает идентификатор вызывающего; отсутствие идентификатора дает 0
func parseCallerID(r *http.Request) (uint, error) {
	raw := r.Header.Get(CallerIDHeader)
	if raw == "" {
		raw = r.URL.Query().Get(callerIDQueryParam)
	}
	if raw == "" {
		return 0, nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("caller id %q: %w", raw, apperrors.ErrInvalidArgument)
	}
	return uint(id), nil
}

func pathID(r *http.Request, param string) (uint, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", param, raw, apperrors.ErrInvalidArgument)
	}
	return uint(id), nil
}

// statusFor сопоставляет ошибку сервиса с кодом HTTP
func statusFor(err error) int {
	switch {
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsUnauthorized(err):
		return http.StatusUnauthorized
	case apperrors.IsForbidden(err):
		return http.StatusForbidden
	case apperrors.IsInvalidArgument(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// Текст ошибки хранилища остается только в логе
		server.WithRequestID(r.Context(), h.logger).Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		message = internalErrorMessage
	}

	h.writeJSON(w, r, status, models.ErrorResponse{Error: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		server.WithRequestID(r.Context(), h.logger).Warn("Failed to write response", zap.Error(err))
	}
}
