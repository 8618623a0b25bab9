package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ProfcomService/internal/models"
	"ProfcomService/internal/service/mocks"
	"ProfcomService/pkg/apperrors"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type testEnv struct {
	profiles *mocks.MockProfileServiceInterface
	guides   *mocks.MockGuideServiceInterface
	contacts *mocks.MockContactServiceInterface
	router   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	env := &testEnv{
		profiles: mocks.NewMockProfileServiceInterface(ctrl),
		guides:   mocks.NewMockGuideServiceInterface(ctrl),
		contacts: mocks.NewMockContactServiceInterface(ctrl),
	}
	handler := NewHandler(env.profiles, env.guides, env.contacts, zap.NewNop())
	env.router = NewRouter(handler, zap.NewNop())
	return env
}

func (e *testEnv) do(method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(dst); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}

const registerBody = `{
	"contact": {"fio": "Иванов Иван", "kkr_name": "Ваня", "group_number": "305", "location": "Общежитие 1",
		"blocks": "soc", "phone": "+79990001122", "vk": "", "tg": "@ivan", "email": "ivan@example.com",
		"budget": true, "in_profcom": false},
	"user_in": {"user_name": "Ivan", "kkr_score": 10, "group_number": "305", "blocks": "soc"}
}`

func TestHandler_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t)
		env.profiles.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
				if *req.User.UserName != "Ivan" || *req.Contact.Email != "ivan@example.com" || !*req.Contact.Budget {
					t.Errorf("Unexpected request: %+v", req)
				}
				return &models.User{UserID: 1, UserName: "Ivan", GroupNumber: "305"}, nil
			})

		w := env.do(http.MethodPost, "/register", registerBody, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var user models.User
		decodeBody(t, w, &user)
		if user.UserID != 1 || user.UserName != "Ivan" {
			t.Errorf("Unexpected user: %+v", user)
		}
	})

	t.Run("UnknownField", func(t *testing.T) {
		env := newTestEnv(t)
		body := strings.Replace(registerBody, `"vk": ""`, `"nickname": "x"`, 1)

		w := env.do(http.MethodPost, "/register", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		env := newTestEnv(t)
		body := strings.Replace(registerBody, "ivan@example.com", "not-an-email", 1)

		w := env.do(http.MethodPost, "/register", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("MissingRequiredField", func(t *testing.T) {
		env := newTestEnv(t)
		body := strings.Replace(registerBody, `"user_name": "Ivan", `, "", 1)

		w := env.do(http.MethodPost, "/register", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("MissingBoolean", func(t *testing.T) {
		env := newTestEnv(t)
		body := strings.Replace(registerBody, `, "in_profcom": false`, "", 1)

		w := env.do(http.MethodPost, "/register", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 when in_profcom is absent, got %d", w.Code)
		}
	})

	t.Run("MissingScore", func(t *testing.T) {
		env := newTestEnv(t)
		body := strings.Replace(registerBody, `"kkr_score": 10, `, "", 1)

		w := env.do(http.MethodPost, "/register", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 when kkr_score is absent, got %d", w.Code)
		}
	})

	t.Run("LegacyUserKey", func(t *testing.T) {
		env := newTestEnv(t)
		body := strings.Replace(registerBody, `"user_in"`, `"user"`, 1)

		w := env.do(http.MethodPost, "/register", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for unknown key user, got %d", w.Code)
		}
	})

	t.Run("EmptyStringsAccepted", func(t *testing.T) {
		env := newTestEnv(t)
		env.profiles.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
				if *req.Contact.Phone != "" || *req.Contact.Location != "" || *req.User.KKRScore != 0 {
					t.Errorf("Unexpected request: %+v", req)
				}
				return &models.User{UserID: 1, UserName: "Ivan"}, nil
			})

		body := strings.Replace(registerBody, `"+79990001122"`, `""`, 1)
		body = strings.Replace(body, `"Общежитие 1"`, `""`, 1)
		body = strings.Replace(body, `"kkr_score": 10`, `"kkr_score": 0`, 1)

		w := env.do(http.MethodPost, "/register", body, nil)
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("StorageError", func(t *testing.T) {
		env := newTestEnv(t)
		env.profiles.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		w := env.do(http.MethodPost, "/register", registerBody, nil)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}

		if strings.Contains(w.Body.String(), "connection refused") {
			t.Error("Storage error text must not reach the client")
		}
		var resp models.ErrorResponse
		decodeBody(t, w, &resp)
		if resp.Error != internalErrorMessage {
			t.Errorf("Expected generic message, got %q", resp.Error)
		}
	})
}

func TestHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t)
		env.profiles.EXPECT().Login(gomock.Any(), "Ivan").Return(&models.User{UserID: 1, UserName: "Ivan"}, nil)

		w := env.do(http.MethodGet, "/login?user_name=Ivan", "", nil)
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		env := newTestEnv(t)
		env.profiles.EXPECT().Login(gomock.Any(), "Nobody").
			Return(nil, fmt.Errorf("get user by name Nobody: %w", apperrors.ErrNotFound))

		w := env.do(http.MethodGet, "/login?user_name=Nobody", "", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestHandler_GetProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t)
		env.profiles.EXPECT().GetProfile(gomock.Any(), uint(7)).Return(&models.User{UserID: 7}, nil)

		w := env.do(http.MethodGet, "/profile/7", "", nil)
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("InvalidID", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodGet, "/profile/abc", "", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("Contact", func(t *testing.T) {
		env := newTestEnv(t)
		env.profiles.EXPECT().GetContact(gomock.Any(), uint(7)).
			Return(&models.ContactInfo{UserID: 7, Phone: "+79990001122"}, nil)

		w := env.do(http.MethodGet, "/profile/7/contact", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var contact models.ContactInfo
		decodeBody(t, w, &contact)
		if contact.Phone != "+79990001122" {
			t.Errorf("Unexpected contact: %+v", contact)
		}
	})
}

func TestHandler_UpdateProfile(t *testing.T) {
	t.Run("CallerFromHeader", func(t *testing.T) {
		env := newTestEnv(t)
		env.profiles.EXPECT().
			UpdateProfile(gomock.Any(), uint(1), uint(2), gomock.Any()).
			DoAndReturn(func(ctx context.Context, callerID, targetID uint, patch models.ProfilePatch) (*models.User, error) {
				if patch.Phone == nil || *patch.Phone != "+70000000000" {
					t.Errorf("Expected phone in patch, got %+v", patch)
				}
				if patch.FIO != nil {
					t.Error("Absent fields must stay nil")
				}
				return &models.User{UserID: 2}, nil
			})

		w := env.do(http.MethodPatch, "/profile/2", `{"phone": "+70000000000"}`, map[string]string{CallerIDHeader: "1"})
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("CallerFromQuery", func(t *testing.T) {
		env := newTestEnv(t)
		env.profiles.EXPECT().UpdateProfile(gomock.Any(), uint(3), uint(3), gomock.Any()).Return(&models.User{UserID: 3}, nil)

		w := env.do(http.MethodPatch, "/profile/3?caller_id=3", `{"budget": false}`, nil)
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("Forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		env.profiles.EXPECT().UpdateProfile(gomock.Any(), uint(1), uint(2), gomock.Any()).
			Return(nil, fmt.Errorf("update profile 2: %w", apperrors.ErrForbidden))

		w := env.do(http.MethodPatch, "/profile/2", `{"phone": "1"}`, map[string]string{CallerIDHeader: "1"})
		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", w.Code)
		}
	})

	t.Run("MalformedCallerID", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodPatch, "/profile/2", `{"phone": "1"}`, map[string]string{CallerIDHeader: "admin"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodPatch, "/profile/2", `{"email": "broken"}`, map[string]string{CallerIDHeader: "1"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestHandler_DeleteProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t)
		env.profiles.EXPECT().DeleteProfile(gomock.Any(), uint(1), uint(2)).Return(nil)

		w := env.do(http.MethodDelete, "/profile/2", "", map[string]string{CallerIDHeader: "1"})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var resp models.StatusResponse
		decodeBody(t, w, &resp)
		if resp.Status != "deleted" {
			t.Errorf("Expected status deleted, got %q", resp.Status)
		}
	})

	t.Run("NoCaller", func(t *testing.T) {
		env := newTestEnv(t)
		env.profiles.EXPECT().DeleteProfile(gomock.Any(), uint(0), uint(2)).
			Return(fmt.Errorf("resolve caller 0: %w", apperrors.ErrUnauthorized))

		w := env.do(http.MethodDelete, "/profile/2", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}

func TestHandler_Guides(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		env := newTestEnv(t)
		env.guides.EXPECT().ListGuides(gomock.Any()).Return([]models.Guide{{GuideID: 1, Title: "Стипендия"}}, nil)

		w := env.do(http.MethodGet, "/guides", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var guides []models.Guide
		decodeBody(t, w, &guides)
		if len(guides) != 1 || guides[0].OriginalLink != nil {
			t.Errorf("Unexpected guides: %+v", guides)
		}
	})

	t.Run("Create", func(t *testing.T) {
		env := newTestEnv(t)
		env.guides.EXPECT().
			CreateGuide(gomock.Any(), uint(1), gomock.Any()).
			DoAndReturn(func(ctx context.Context, callerID uint, req *models.GuideRequest) (*models.Guide, error) {
				if req.OriginalLink == nil || *req.OriginalLink != "https://vk.com/profcom" {
					t.Errorf("Expected original link, got %+v", req.OriginalLink)
				}
				return &models.Guide{GuideID: 1, Title: req.Title}, nil
			})

		body := `{"title": "Стипендия", "owner_block": "Соцблок", "text": "Как получить", "original_link": "https://vk.com/profcom"}`
		w := env.do(http.MethodPost, "/guides", body, map[string]string{CallerIDHeader: "1"})
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("CreateMissingTitle", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodPost, "/guides", `{"owner_block": "x", "text": "y"}`, map[string]string{CallerIDHeader: "1"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("UpdateNotFound", func(t *testing.T) {
		env := newTestEnv(t)
		env.guides.EXPECT().UpdateGuide(gomock.Any(), uint(1), uint(9), gomock.Any()).
			Return(nil, fmt.Errorf("get guide 9: %w", apperrors.ErrNotFound))

		w := env.do(http.MethodPatch, "/guides/9", `{"text": "new"}`, map[string]string{CallerIDHeader: "1"})
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestHandler_Contacts(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		env := newTestEnv(t)
		env.contacts.EXPECT().ListContacts(gomock.Any()).Return([]models.ContactInfo{{UserID: 1}, {UserID: 2}}, nil)

		w := env.do(http.MethodGet, "/contacts", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var contacts []models.ContactInfo
		decodeBody(t, w, &contacts)
		if len(contacts) != 2 {
			t.Errorf("Expected 2 contacts, got %d", len(contacts))
		}
	})

	t.Run("FilterEmptyBody", func(t *testing.T) {
		env := newTestEnv(t)
		env.contacts.EXPECT().FilterContacts(gomock.Any(), uint(1), models.ContactFilter{}).Return([]models.ContactInfo{}, nil)

		w := env.do(http.MethodPost, "/contacts/filter", "", map[string]string{CallerIDHeader: "1"})
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("FilterByGroup", func(t *testing.T) {
		env := newTestEnv(t)
		env.contacts.EXPECT().
			FilterContacts(gomock.Any(), uint(1), gomock.Any()).
			DoAndReturn(func(ctx context.Context, callerID uint, filter models.ContactFilter) ([]models.ContactInfo, error) {
				if filter.GroupNumber == nil || *filter.GroupNumber != "305" || filter.Budget != nil {
					t.Errorf("Unexpected filter: %+v", filter)
				}
				return []models.ContactInfo{{UserID: 1, GroupNumber: "305"}}, nil
			})

		w := env.do(http.MethodPost, "/contacts/filter", `{"group_number": "305"}`, map[string]string{CallerIDHeader: "1"})
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("FilterForbidden", func(t *testing.T) {
		env := newTestEnv(t)
		env.contacts.EXPECT().FilterContacts(gomock.Any(), uint(5), gomock.Any()).
			Return(nil, fmt.Errorf("filter contacts: %w", apperrors.ErrForbidden))

		w := env.do(http.MethodPost, "/contacts/filter", `{}`, map[string]string{CallerIDHeader: "5"})
		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", w.Code)
		}
	})
}

func TestHandler_RequestIDHeader(t *testing.T) {
	env := newTestEnv(t)
	env.guides.EXPECT().ListGuides(gomock.Any()).Return(nil, nil)

	w := env.do(http.MethodGet, "/guides", "", map[string]string{"X-Request-ID": "req-42"})
	if got := w.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("Expected request ID to be echoed, got %q", got)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrInvalidArgument, http.StatusBadRequest},
		{errEmptyBody, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusFor(fmt.Errorf("wrapped: %w", tc.err)); got != tc.want {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
